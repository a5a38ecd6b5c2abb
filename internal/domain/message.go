package domain

import "fmt"

// MessageKind - вид записи журнала сообщений.
type MessageKind uint8

const (
	MsgWelcome MessageKind = iota
	MsgPlayerAttacksNpc
	MsgNpcAttacksPlayer
	MsgPlayerKillsNpc
	MsgNpcKillsPlayer
	MsgPlayerDodges
	MsgNpcDodges
	MsgNpcDies
	MsgPlayerGets
	MsgPlayerInventoryIsFull
	MsgNoItemUnderPlayer
	MsgNoItemInInventorySlot
	MsgNoSpaceToDropItem
	MsgPlayerDrops
	MsgPlayerHeals
	MsgPlayerLaunchesProjectile
	MsgNpcBecomesConfused
	MsgNpcIsNoLongerConfused
	MsgPlayerDescends
)

// LogMessage - одна запись журнала. Поля-нагрузки имеют смысл в
// зависимости от Kind.
type LogMessage struct {
	Kind       MessageKind    `json:"kind"`
	Npc        NpcType        `json:"npc,omitempty"`
	Item       ItemType       `json:"item,omitempty"`
	Projectile ProjectileType `json:"projectile,omitempty"`
}

// Text - русский текст сообщения для клиента.
func (m LogMessage) Text() string {
	switch m.Kind {
	case MsgWelcome:
		return "Добро пожаловать в подземелье!"
	case MsgPlayerAttacksNpc:
		return fmt.Sprintf("Вы атакуете: %s.", m.Npc.Name())
	case MsgNpcAttacksPlayer:
		return fmt.Sprintf("Вас атакует %s.", m.Npc.Name())
	case MsgPlayerKillsNpc:
		return fmt.Sprintf("Вы убиваете: %s.", m.Npc.Name())
	case MsgNpcKillsPlayer:
		return fmt.Sprintf("%s УБИВАЕТ ВАС!", m.Npc.Name())
	case MsgPlayerDodges:
		return fmt.Sprintf("Вы уклоняетесь от удара: %s промахивается.", m.Npc.Name())
	case MsgNpcDodges:
		return fmt.Sprintf("Вы промахиваетесь: %s уклоняется.", m.Npc.Name())
	case MsgNpcDies:
		return fmt.Sprintf("Существо погибает: %s.", m.Npc.Name())
	case MsgPlayerGets:
		return fmt.Sprintf("Вы подбираете: %s.", m.Item.Name())
	case MsgPlayerInventoryIsFull:
		return "Инвентарь полон!"
	case MsgNoItemUnderPlayer:
		return "Здесь нечего подбирать!"
	case MsgNoItemInInventorySlot:
		return "В этом слоте нет предмета."
	case MsgNoSpaceToDropItem:
		return "Здесь нет места, чтобы бросить предмет."
	case MsgPlayerDrops:
		return fmt.Sprintf("Вы бросаете: %s.", m.Item.Name())
	case MsgPlayerHeals:
		return "Вы чувствуете себя лучше."
	case MsgPlayerLaunchesProjectile:
		return fmt.Sprintf("Вы запускаете: %s.", m.Projectile.Name())
	case MsgNpcBecomesConfused:
		return fmt.Sprintf("Существо приходит в смятение: %s.", m.Npc.Name())
	case MsgNpcIsNoLongerConfused:
		return fmt.Sprintf("Смятение проходит: %s.", m.Npc.Name())
	case MsgPlayerDescends:
		return "Вы спускаетесь глубже в подземелье."
	}
	return ""
}

// MessageLog - журнал сообщений за всю игру.
type MessageLog []LogMessage

func (l *MessageLog) Append(m LogMessage) {
	*l = append(*l, m)
}
