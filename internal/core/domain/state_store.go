package domain

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrStoreUnavailable  = errors.New("state store unavailable")
	ErrResetNotConfirmed = errors.New("reset requires explicit confirmation")
)

// StoredData is a decoded durable slot. Older or partial documents simply
// leave fields at their zero value.
type StoredData struct {
	Habits    []Habit `json:"habits"`
	History   History `json:"history"`
	Streak    int     `json:"streak"`
	MaxStreak int     `json:"maxStreak"`
	LastDate  DayKey  `json:"lastDate"`
}

type StateStore interface {
	// Load returns nil without error when the slot was never written or does
	// not hold a valid document.
	Load(ctx context.Context) (*StoredData, error)

	// Save replaces the whole slot with data.
	Save(ctx context.Context, data *AppData) error

	// Clear removes the slot entirely.
	Clear(ctx context.Context) error
}

// DecodeStoredData parses a slot's raw content. Empty, malformed or null
// content is reported as absent.
func DecodeStoredData(raw []byte) *StoredData {
	if len(raw) == 0 {
		return nil
	}

	var stored *StoredData
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil
	}
	return stored
}

func EncodeAppData(data *AppData) ([]byte, error) {
	snapshot := data.Clone()
	if snapshot.History == nil {
		snapshot.History = History{}
	}
	return json.Marshal(snapshot)
}
