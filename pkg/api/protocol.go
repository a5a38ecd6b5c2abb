package api

import "encoding/json"

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - корневой объект всех сообщений от клиента.
type ClientCommand struct {
	// Action - название действия. Структура Payload зависит от него.
	Action string `json:"action"`

	// Payload - JSON-объект с данными действия.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Известные действия.
const (
	ActionInit    = "INIT"
	ActionMove    = "MOVE"
	ActionWait    = "WAIT"
	ActionGet     = "GET"
	ActionUse     = "USE"
	ActionAim     = "AIM"
	ActionCancel  = "CANCEL_AIM"
	ActionDrop    = "DROP"
	ActionDescend = "DESCEND"
	ActionExamine = "EXAMINE"
	ActionLevelUp = "LEVEL_UP"
	ActionSave    = "SAVE"
	ActionNewGame = "NEW_GAME"
)

// --- Payloads ---

// DirectionPayload - для MOVE. Ровно одна ось, шаг единичный.
type DirectionPayload struct {
	Dx int `json:"dx"`
	Dy int `json:"dy"`
}

// SlotPayload - для USE и DROP: индекс слота инвентаря.
type SlotPayload struct {
	Slot int `json:"slot"`
}

// PositionPayload - для AIM и EXAMINE: точка на карте.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LevelUpPayload - для LEVEL_UP.
// Choice: "strength" | "dexterity" | "intelligence" | "health".
type LevelUpPayload struct {
	Choice string `json:"choice"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse - полный снимок мира, видимого клиенту.
// Отправляется после каждой обработанной команды.
type ServerResponse struct {
	// Type: "INIT" при первой отрисовке, "UPDATE" далее, "ERROR" при
	// отклоненной команде.
	Type string `json:"type"`

	// Error - текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`

	// Grid - размеры карты, чтобы клиент подготовил сетку рендеринга.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map - все исследованные тайлы.
	Map []TileView `json:"map,omitempty"`

	// Player - состояние подконтрольного персонажа.
	Player *PlayerView `json:"player,omitempty"`

	// DungeonLevel - текущая глубина.
	DungeonLevel int `json:"dungeonLevel"`

	// Aiming - true, когда сервер ждет координату цели (AIM/CANCEL_AIM).
	Aiming bool `json:"aiming,omitempty"`

	// Examine - результат EXAMINE, если запрашивался.
	Examine *ExamineView `json:"examine,omitempty"`

	// Logs - новые сообщения с прошлого ответа.
	Logs []LogEntry `json:"logs,omitempty"`

	// GameOver - игрок мертв, принимаются только INIT и NEW_GAME.
	GameOver bool `json:"gameOver,omitempty"`
}

// GridMeta содержит общие размеры карты.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView - DTO одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol и Color - визуальное представление верхнего тайла клетки.
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// IsWall - true для непроходимого препятствия.
	IsWall bool `json:"isWall"`

	// IsVisible - тайл в текущем поле зрения, рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored - тайл когда-либо был виден. Туман войны:
	// IsExplored без IsVisible рендерится тускло.
	IsExplored bool `json:"isExplored"`
}

// PlayerView - DTO состояния игрока.
type PlayerView struct {
	X int `json:"x"`
	Y int `json:"y"`

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`

	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Intelligence int `json:"intelligence"`

	IsDead bool `json:"isDead"`

	Inventory []InventorySlotView `json:"inventory"`
}

// InventorySlotView - один слот инвентаря.
type InventorySlotView struct {
	Slot int `json:"slot"`

	// Empty - слот пуст, остальные поля не имеют смысла.
	Empty bool `json:"empty,omitempty"`

	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	Color  string `json:"color,omitempty"`

	// Equipped - предмет надет (оружие в руке или броня на теле).
	Equipped bool `json:"equipped,omitempty"`
}

// ExamineView - описание клетки под курсором осмотра.
type ExamineView struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Name string `json:"name"`
}

// LogEntry - одна запись игрового журнала.
type LogEntry struct {
	Text string `json:"text"`
	Type string `json:"type"` // INFO, COMBAT, ITEM, ERROR
}
