package api

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// BuildSchemas отдает JSON Schema протокола для генераторов клиентского
// кода. Ключ - имя сообщения.
func BuildSchemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schemas := map[string]*jsonschema.Schema{
		"ClientCommand":  reflector.ReflectFromType(reflect.TypeOf(ClientCommand{})),
		"ServerResponse": reflector.ReflectFromType(reflect.TypeOf(ServerResponse{})),
	}
	for name, schema := range schemas {
		schema.Version = ""
		schema.Title = name
	}
	return schemas
}
