package api

import "errors"

// Validator - интерфейс, который реализуют DTO с проверяемыми полями.
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx != 0 && p.Dy != 0 {
		return errors.New("diagonal movement is not allowed")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p SlotPayload) Validate() error {
	if p.Slot < 0 {
		return errors.New("slot index cannot be negative")
	}
	return nil
}

func (p LevelUpPayload) Validate() error {
	switch p.Choice {
	case "strength", "dexterity", "intelligence", "health":
		return nil
	}
	return errors.New("unknown level-up choice")
}
