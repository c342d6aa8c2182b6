package cities

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/weathercast/weathercast-service/internal/storage"
	t "github.com/weathercast/weathercast-service/internal/types"
)

const citiesKey = "weathercast:cities"

// Store is the saved-cities list, persisted as a single JSON document the way
// the rest of the keyed store works: whole-entry replacement, no partial writes.
type Store struct {
	kv storage.KV
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// List returns the saved cities. An unreadable document reads as empty.
func (s *Store) List(ctx context.Context) []t.SavedCity {
	raw, err := s.kv.Get(ctx, citiesKey)
	if err != nil {
		return []t.SavedCity{}
	}
	var cities []t.SavedCity
	if err := json.Unmarshal(raw, &cities); err != nil {
		return []t.SavedCity{}
	}
	return cities
}

// Save appends a city unless one with the same name and country already
// exists (case-insensitive on name). Returns the updated list.
func (s *Store) Save(ctx context.Context, city t.SavedCity) ([]t.SavedCity, error) {
	if strings.TrimSpace(city.Name) == "" {
		return nil, errors.New("city name is required")
	}

	cities := s.List(ctx)
	for _, c := range cities {
		if strings.EqualFold(c.Name, city.Name) && c.Country == city.Country {
			return cities, nil
		}
	}

	city.ID = uuid.NewString()
	cities = append(cities, city)
	if err := s.write(ctx, cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// Remove deletes the city with the given id. Returns the updated list.
func (s *Store) Remove(ctx context.Context, id string) ([]t.SavedCity, error) {
	cities := s.List(ctx)
	updated := make([]t.SavedCity, 0, len(cities))
	for _, c := range cities {
		if c.ID != id {
			updated = append(updated, c)
		}
	}
	if err := s.write(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) write(ctx context.Context, cities []t.SavedCity) error {
	raw, err := json.Marshal(cities)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, citiesKey, raw)
}
