package engine

import (
	"encoding/json"
	"testing"

	"rogue-server/internal/domain"
	"rogue-server/pkg/api"
)

func testConfig() Config {
	cfg := NewConfig()
	cfg.GridWidth = 32
	cfg.GridHeight = 32
	cfg.Seed = 17
	return cfg
}

func TestSessionInit(t *testing.T) {
	s := NewSession(testConfig(), nil)
	resp := s.HandleCommand(api.ClientCommand{Action: api.ActionInit})
	if resp.Type != "INIT" {
		t.Fatalf("response type: %q", resp.Type)
	}
	if resp.Grid == nil || resp.Grid.Width != 32 {
		t.Fatalf("grid meta: %+v", resp.Grid)
	}
	if resp.Player == nil {
		t.Fatal("no player snapshot")
	}
	if len(resp.Map) == 0 {
		t.Fatal("empty map snapshot")
	}
	if len(resp.Logs) == 0 {
		t.Fatal("welcome message not delivered")
	}

	// Повторный INIT снова отдает журнал с начала.
	again := s.HandleCommand(api.ClientCommand{Action: api.ActionInit})
	if len(again.Logs) < len(resp.Logs) {
		t.Fatalf("re-init lost log entries: %d < %d", len(again.Logs), len(resp.Logs))
	}
}

func TestSessionMove(t *testing.T) {
	s := NewSession(testConfig(), nil)
	resp := s.HandleCommand(api.ClientCommand{
		Action:  api.ActionMove,
		Payload: json.RawMessage(`{"dx":1,"dy":0}`),
	})
	if resp.Type != "UPDATE" {
		t.Fatalf("response type: %q (%s)", resp.Type, resp.Error)
	}
}

func TestSessionRejectsBadPayloads(t *testing.T) {
	s := NewSession(testConfig(), nil)
	cases := []api.ClientCommand{
		{Action: api.ActionMove},                                               // нет payload
		{Action: api.ActionMove, Payload: json.RawMessage(`{"dx":1,"dy":1}`)},  // диагональ
		{Action: api.ActionMove, Payload: json.RawMessage(`{"dx":0,"dy":0}`)},  // нулевой вектор
		{Action: api.ActionMove, Payload: json.RawMessage(`{"dx":5,"dy":0}`)},  // слишком длинный шаг
		{Action: api.ActionUse, Payload: json.RawMessage(`{"slot":-1}`)},       // отрицательный слот
		{Action: api.ActionLevelUp, Payload: json.RawMessage(`{"choice":"x"}`)}, // неизвестный выбор
	}
	for _, cmd := range cases {
		if resp := s.HandleCommand(cmd); resp.Type != "ERROR" {
			t.Errorf("command %q with payload %s accepted", cmd.Action, cmd.Payload)
		}
	}
}

func TestSessionUnknownAction(t *testing.T) {
	s := NewSession(testConfig(), nil)
	resp := s.HandleCommand(api.ClientCommand{Action: "DANCE"})
	if resp.Type != "ERROR" {
		t.Fatalf("unknown action accepted: %+v", resp)
	}
}

func TestSessionAimWithoutPendingItem(t *testing.T) {
	s := NewSession(testConfig(), nil)
	resp := s.HandleCommand(api.ClientCommand{
		Action:  api.ActionAim,
		Payload: json.RawMessage(`{"x":3,"y":3}`),
	})
	if resp.Type != "ERROR" {
		t.Fatalf("aim without pending item accepted: %+v", resp)
	}
}

func TestSessionAimOutOfGridTarget(t *testing.T) {
	s := NewSession(testConfig(), nil)
	state := s.State()

	// Кладем свиток игроку в инвентарь, минуя подбор с пола.
	scroll := state.World.Allocator.Alloc()
	state.World.Components.Item.Insert(scroll, domain.ItemFireballScroll)
	state.World.Components.Tile.Insert(scroll, domain.NewItemTile(domain.ItemFireballScroll))
	inventory := state.PlayerInventory()
	if err := inventory.Insert(scroll); err != nil {
		t.Fatal(err)
	}

	resp := s.HandleCommand(api.ClientCommand{
		Action:  api.ActionUse,
		Payload: json.RawMessage(`{"slot":0}`),
	})
	if !resp.Aiming {
		t.Fatalf("scroll did not enter aim mode: %+v", resp)
	}

	// Координата с клиента приходит как есть: цель за картой должна
	// тихо отклоняться, а не ронять сервер.
	resp = s.HandleCommand(api.ClientCommand{
		Action:  api.ActionAim,
		Payload: json.RawMessage(`{"x":1000,"y":1}`),
	})
	if resp.Type != "UPDATE" {
		t.Fatalf("response type: %q (%s)", resp.Type, resp.Error)
	}
	if _, err := inventory.Get(0); err != nil {
		t.Fatal("scroll consumed by rejected aim")
	}
	if state.World.HasProjectiles() {
		t.Fatal("projectile launched at out-of-grid target")
	}
}

func TestSessionNewGame(t *testing.T) {
	s := NewSession(testConfig(), nil)
	s.HandleCommand(api.ClientCommand{Action: api.ActionWait})
	resp := s.HandleCommand(api.ClientCommand{Action: api.ActionNewGame})
	if resp.Type != "INIT" {
		t.Fatalf("response type: %q", resp.Type)
	}
	if len(resp.Logs) == 0 {
		t.Fatal("new game did not replay the log from scratch")
	}
}

func TestSessionSaveWithoutSaver(t *testing.T) {
	s := NewSession(testConfig(), nil)
	resp := s.HandleCommand(api.ClientCommand{Action: api.ActionSave})
	if resp.Type != "ERROR" {
		t.Fatalf("save without saver accepted: %+v", resp)
	}
}
