package prefs

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/weathercast/weathercast-service/internal/storage"
	t "github.com/weathercast/weathercast-service/internal/types"
)

const prefsKey = "weathercast:prefs"

// Store persists the temperature unit and last searched city.
type Store struct {
	kv storage.KV
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted preferences, defaulting to celsius when nothing
// has been saved or the stored document is unreadable.
func (s *Store) Load(ctx context.Context) t.Preferences {
	defaults := t.Preferences{Unit: t.UnitCelsius}

	raw, err := s.kv.Get(ctx, prefsKey)
	if err != nil {
		return defaults
	}
	var p t.Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		return defaults
	}
	if p.Unit != t.UnitCelsius && p.Unit != t.UnitFahrenheit {
		p.Unit = t.UnitCelsius
	}
	return p
}

func (s *Store) Save(ctx context.Context, p t.Preferences) error {
	if p.Unit != t.UnitCelsius && p.Unit != t.UnitFahrenheit {
		return errors.New("unknown temperature unit")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, prefsKey, raw)
}

func (s *Store) SetUnit(ctx context.Context, unit t.TemperatureUnit) error {
	p := s.Load(ctx)
	p.Unit = unit
	return s.Save(ctx, p)
}

func (s *Store) SetLastCity(ctx context.Context, city string) error {
	p := s.Load(ctx)
	p.LastCity = city
	return s.Save(ctx, p)
}
