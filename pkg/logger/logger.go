package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log - глобальный экземпляр логгера для всего приложения.
// До вызова Init работает с настройками по умолчанию, чтобы пакеты
// можно было использовать в тестах без полной инициализации.
var Log = logrus.New()

// Init настраивает глобальный логгер из переменных окружения.
// Вызывается один раз при старте приложения в main.go.
func Init() {
	// Уровень логирования: по умолчанию "info", для отладки - "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// Форматтер: "json" - для продакшена и сбора логов,
	// "text" - для удобной разработки.
	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}
