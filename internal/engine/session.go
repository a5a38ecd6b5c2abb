package engine

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"rogue-server/internal/domain"
	"rogue-server/internal/systems"
	"rogue-server/pkg/api"
	"rogue-server/pkg/logger"
)

// Saver абстрагирует хранилище сохранений, чтобы движок не зависел от
// формата файла.
type Saver interface {
	Save(state *GameState) error
	Load() (*GameState, error)
}

const noAim = -1

// Session связывает одного клиента с игровой сессией: хранит GameState,
// состояние прицеливания и счетчик доставленных сообщений журнала.
// Session не потокобезопасна: команды одного клиента обрабатываются
// последовательно его соединением.
type Session struct {
	cfg   Config
	state *GameState
	saver Saver

	// aimSlot - слот инвентаря, ждущий координату цели. noAim - не ждем.
	aimSlot int

	// sentMessages - сколько записей журнала клиент уже получил.
	sentMessages int
}

// NewSession поднимает сессию: загружает сохранение, если Saver его
// находит, иначе начинает новую партию.
func NewSession(cfg Config, saver Saver) *Session {
	s := &Session{cfg: cfg, saver: saver, aimSlot: noAim}
	if saver != nil {
		if state, err := saver.Load(); err == nil {
			s.state = state
			logger.Log.WithField("component", "session").Info("Saved game loaded")
			return s
		} else {
			logger.Log.WithFields(logrus.Fields{
				"component": "session",
				"reason":    err.Error(),
			}).Info("No saved game, starting fresh")
		}
	}
	s.state = s.newGame()
	return s
}

func (s *Session) newGame() *GameState {
	algorithm := systems.AlgorithmShadowcast
	if s.cfg.Omniscient {
		algorithm = systems.AlgorithmOmniscient
	}
	return NewGameState(s.cfg.GridSize(), s.cfg.Seed, algorithm)
}

// State отдает игровое состояние сессии. Для отладочных ручек.
func (s *Session) State() *GameState {
	return s.state
}

// HandleCommand обрабатывает одну команду клиента и возвращает снимок
// мира. Неизвестные и невалидные команды получают Type == "ERROR" и
// состояние не меняют.
func (s *Session) HandleCommand(cmd api.ClientCommand) api.ServerResponse {
	response := api.ServerResponse{Type: "UPDATE"}

	switch cmd.Action {
	case api.ActionInit:
		response.Type = "INIT"
		// Отправляем журнал с самого начала: клиент только что подключился.
		s.sentMessages = 0

	case api.ActionMove:
		var p api.DirectionPayload
		if err := unmarshalPayload(cmd.Payload, &p); err != nil {
			return errorResponse(err)
		}
		s.cancelAim()
		s.state.MaybeMovePlayer(directionFromDelta(p.Dx, p.Dy))

	case api.ActionWait:
		s.cancelAim()
		s.state.WaitPlayer()

	case api.ActionGet:
		s.cancelAim()
		s.state.MaybePlayerGetItem()

	case api.ActionUse:
		var p api.SlotPayload
		if err := unmarshalPayload(cmd.Payload, &p); err != nil {
			return errorResponse(err)
		}
		s.cancelAim()
		usage, ok := s.state.MaybePlayerUseItem(p.Slot)
		if ok && usage == domain.UsageAim {
			s.aimSlot = p.Slot
		}

	case api.ActionAim:
		var p api.PositionPayload
		if err := unmarshalPayload(cmd.Payload, &p); err != nil {
			return errorResponse(err)
		}
		if s.aimSlot == noAim {
			return errorResponse(fmt.Errorf("нет предмета, ожидающего цель"))
		}
		slot := s.aimSlot
		s.aimSlot = noAim
		s.state.MaybePlayerUseItemAim(slot, domain.Coord{X: p.X, Y: p.Y})

	case api.ActionCancel:
		s.cancelAim()

	case api.ActionDrop:
		var p api.SlotPayload
		if err := unmarshalPayload(cmd.Payload, &p); err != nil {
			return errorResponse(err)
		}
		s.cancelAim()
		s.state.MaybePlayerDropItem(p.Slot)

	case api.ActionDescend:
		s.cancelAim()
		s.state.MaybePlayerDescend()

	case api.ActionExamine:
		var p api.PositionPayload
		if err := unmarshalPayload(cmd.Payload, &p); err != nil {
			return errorResponse(err)
		}
		response.Examine = s.state.BuildExamine(domain.Coord{X: p.X, Y: p.Y})

	case api.ActionLevelUp:
		var p api.LevelUpPayload
		if err := unmarshalPayload(cmd.Payload, &p); err != nil {
			return errorResponse(err)
		}
		s.state.LevelUpPlayer(levelUpFromChoice(p.Choice))

	case api.ActionSave:
		if s.saver == nil {
			return errorResponse(fmt.Errorf("сохранения отключены"))
		}
		if err := s.saver.Save(s.state); err != nil {
			logger.Log.WithError(err).Error("Save failed")
			return errorResponse(fmt.Errorf("не удалось сохранить игру"))
		}

	case api.ActionNewGame:
		s.cancelAim()
		s.state = s.newGame()
		s.sentMessages = 0
		response.Type = "INIT"

	default:
		return errorResponse(fmt.Errorf("неизвестное действие %q", cmd.Action))
	}

	s.fillSnapshot(&response)
	return response
}

func (s *Session) cancelAim() {
	s.aimSlot = noAim
}

func (s *Session) fillSnapshot(response *api.ServerResponse) {
	size := s.state.World.Size()
	response.Grid = &api.GridMeta{Width: size.Width, Height: size.Height}
	response.Map = s.state.BuildMap()
	response.Player = s.state.BuildPlayer()
	response.DungeonLevel = s.state.DungeonLevel
	response.Aiming = s.aimSlot != noAim
	response.GameOver = !s.state.IsPlayerAlive()

	messages := s.state.DrainMessages(s.sentMessages)
	s.sentMessages += len(messages)
	response.Logs = BuildLogs(messages)
}

func unmarshalPayload(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("пустой payload")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("некорректный payload: %w", err)
	}
	if v, ok := dst.(api.Validator); ok {
		return v.Validate()
	}
	return nil
}

func errorResponse(err error) api.ServerResponse {
	return api.ServerResponse{Type: "ERROR", Error: err.Error()}
}

func directionFromDelta(dx, dy int) domain.CardinalDirection {
	switch {
	case dx > 0:
		return domain.East
	case dx < 0:
		return domain.West
	case dy > 0:
		return domain.South
	default:
		return domain.North
	}
}

func levelUpFromChoice(choice string) domain.LevelUp {
	switch choice {
	case "strength":
		return domain.LevelUpStrength
	case "dexterity":
		return domain.LevelUpDexterity
	case "intelligence":
		return domain.LevelUpIntelligence
	default:
		return domain.LevelUpHealth
	}
}
