package engine

import (
	"encoding/json"
	"testing"

	"rogue-server/internal/domain"
	"rogue-server/internal/systems"
)

var testSize = domain.Size{Width: 32, Height: 32}

func TestNewGameDeterministic(t *testing.T) {
	a := NewGameState(testSize, 42, systems.AlgorithmShadowcast)
	b := NewGameState(testSize, 42, systems.AlgorithmShadowcast)

	aj, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	bj, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(aj) != string(bj) {
		t.Fatal("same seed produced different worlds")
	}

	c := NewGameState(testSize, 43, systems.AlgorithmShadowcast)
	cj, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	if string(aj) == string(cj) {
		t.Fatal("different seeds produced identical worlds")
	}
}

func TestDeterministicReplay(t *testing.T) {
	play := func(g *GameState) {
		for i := 0; i < 5; i++ {
			g.MaybeMovePlayer(domain.East)
			g.MaybeMovePlayer(domain.South)
			g.WaitPlayer()
		}
	}
	a := NewGameState(testSize, 7, systems.AlgorithmShadowcast)
	b := NewGameState(testSize, 7, systems.AlgorithmShadowcast)
	play(a)
	play(b)

	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	if string(aj) != string(bj) {
		t.Fatal("replay of the same inputs diverged")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	g := NewGameState(testSize, 11, systems.AlgorithmShadowcast)
	g.MaybeMovePlayer(domain.East)
	g.WaitPlayer()

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	restored := &GameState{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatal(err)
	}

	again, err := json.Marshal(restored)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(again) {
		t.Fatal("state changed across save/load round trip")
	}

	// Продолжение после загрузки воспроизводится бит в бит.
	g.WaitPlayer()
	restored.WaitPlayer()
	gj, _ := json.Marshal(g)
	rj, _ := json.Marshal(restored)
	if string(gj) != string(rj) {
		t.Fatal("rng stream diverged after load")
	}
}

func TestWaitAdvancesTurn(t *testing.T) {
	g := NewGameState(testSize, 3, systems.AlgorithmShadowcast)
	before := g.Visibility.Count
	g.WaitPlayer()
	if g.Visibility.Count != before+1 {
		t.Fatalf("turn counter: %d -> %d", before, g.Visibility.Count)
	}
}

func TestDescendPreservesPlayer(t *testing.T) {
	g := NewGameState(testSize, 21, systems.AlgorithmShadowcast)

	if g.MaybePlayerDescend() {
		t.Fatal("descended without standing on stairs")
	}

	// Телепортируем игрока на лестницу, выселив возможного жильца.
	stairs := g.World.Components.Stairs.Entities()
	if len(stairs) != 1 {
		t.Fatalf("expected exactly one stairs entity, got %d", len(stairs))
	}
	coord, _ := g.World.CoordOf(stairs[0])
	if occupant := g.World.Spatial.LayersAtChecked(coord).Character; occupant != domain.NilEntity && occupant != g.Player {
		g.World.RemoveEntity(occupant)
	}
	if err := g.World.Spatial.UpdateCoord(g.Player, coord); err != nil {
		t.Fatal(err)
	}

	hp := domain.HitPoints{Current: 13, Max: 20}
	g.World.Components.HitPoints.Insert(g.Player, hp)

	if !g.MaybePlayerDescend() {
		t.Fatal("failed to descend from stairs")
	}
	if g.DungeonLevel != 1 {
		t.Fatalf("dungeon level: %d", g.DungeonLevel)
	}
	if !g.IsPlayerAlive() {
		t.Fatal("player lost on descent")
	}
	if got := g.PlayerHitPoints(); got != hp {
		t.Fatalf("hp lost on descent: %+v", got)
	}
	if g.PlayerInventory() == nil {
		t.Fatal("inventory lost on descent")
	}
	// Новый уровень получает свою лестницу и свежую карту разведки.
	if len(g.World.Components.Stairs.Entities()) != 1 {
		t.Fatal("new level has no stairs")
	}
	last := g.MessageLog[len(g.MessageLog)-1]
	if last.Kind != domain.MsgPlayerDescends {
		t.Fatalf("expected descend message, got %v", last.Kind)
	}
}

func TestDeadPlayerIgnoresCommands(t *testing.T) {
	g := NewGameState(testSize, 5, systems.AlgorithmShadowcast)
	if err := g.World.Spatial.UpdateLayer(g.Player, domain.LayerObject); err != nil {
		t.Fatal(err)
	}
	if g.IsPlayerAlive() {
		t.Fatal("corpse counted as alive")
	}

	before := g.Visibility.Count
	g.MaybeMovePlayer(domain.East)
	g.WaitPlayer()
	if g.MaybePlayerGetItem() {
		t.Fatal("dead player picked up an item")
	}
	if g.MaybePlayerDescend() {
		t.Fatal("dead player descended")
	}
	if g.Visibility.Count != before {
		t.Fatal("dead player still spends turns")
	}
}

func TestDrainMessages(t *testing.T) {
	g := NewGameState(testSize, 9, systems.AlgorithmShadowcast)
	all := g.DrainMessages(0)
	if len(all) == 0 || all[0].Kind != domain.MsgWelcome {
		t.Fatalf("expected welcome message, got %v", all)
	}
	if rest := g.DrainMessages(len(g.MessageLog)); len(rest) != 0 {
		t.Fatalf("expected empty tail, got %d messages", len(rest))
	}
	if bad := g.DrainMessages(len(g.MessageLog) + 1); bad != nil {
		t.Fatal("out-of-range drain returned messages")
	}
}
