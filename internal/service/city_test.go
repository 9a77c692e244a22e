package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
)

type mockCityStore struct {
	cities map[uint]domain.City
	nextID uint
}

func newMockCityStore(cities ...domain.City) *mockCityStore {
	m := &mockCityStore{cities: map[uint]domain.City{}, nextID: 1}
	for _, city := range cities {
		m.cities[city.ID] = city
		if city.ID >= m.nextID {
			m.nextID = city.ID + 1
		}
	}

	return m
}

func (m *mockCityStore) Create(_ context.Context, city domain.City) (domain.City, error) {
	city.ID = m.nextID
	m.nextID++
	m.cities[city.ID] = city

	return city, nil
}

func (m *mockCityStore) FindByID(_ context.Context, id uint) (domain.City, error) {
	city, ok := m.cities[id]
	if !ok {
		return domain.City{}, repository.ErrCityNotFound
	}

	return city, nil
}

func (m *mockCityStore) List(_ context.Context, _ string, _ int) ([]domain.City, error) {
	cities := make([]domain.City, 0, len(m.cities))
	for _, city := range m.cities {
		cities = append(cities, city)
	}

	return cities, nil
}

func (m *mockCityStore) ListActive(_ context.Context) ([]domain.City, error) {
	active := make([]domain.City, 0, len(m.cities))
	for _, city := range m.cities {
		if city.Active {
			active = append(active, city)
		}
	}

	return active, nil
}

func (m *mockCityStore) Update(_ context.Context, city domain.City) (domain.City, error) {
	if _, ok := m.cities[city.ID]; !ok {
		return domain.City{}, repository.ErrCityNotFound
	}
	m.cities[city.ID] = city

	return city, nil
}

func (m *mockCityStore) Delete(_ context.Context, id uint) error {
	if _, ok := m.cities[id]; !ok {
		return repository.ErrCityNotFound
	}
	delete(m.cities, id)

	return nil
}

type mockEventCounter struct {
	counts map[uint]int64
}

func (m *mockEventCounter) CountByCity(_ context.Context, cityID uint) (int64, error) {
	return m.counts[cityID], nil
}

func TestCityService_Delete(t *testing.T) {
	t.Run("city with events cannot be deleted and the error names the count", func(t *testing.T) {
		store := newMockCityStore(domain.City{ID: 1, Name: "Madrid", Active: true})
		svc := NewCityService(store, &mockEventCounter{counts: map[uint]int64{1: 3}})

		err := svc.Delete(context.Background(), 1)

		var inUse *CityInUseError
		require.ErrorAs(t, err, &inUse)
		assert.Equal(t, int64(3), inUse.Count)
		assert.Contains(t, err.Error(), "3")
		assert.Len(t, store.cities, 1)
	})

	t.Run("city without events is deleted", func(t *testing.T) {
		store := newMockCityStore(domain.City{ID: 1, Name: "Madrid", Active: true})
		svc := NewCityService(store, &mockEventCounter{counts: map[uint]int64{}})

		require.NoError(t, svc.Delete(context.Background(), 1))
		assert.Empty(t, store.cities)
	})

	t.Run("unknown city", func(t *testing.T) {
		store := newMockCityStore()
		svc := NewCityService(store, &mockEventCounter{counts: map[uint]int64{}})

		err := svc.Delete(context.Background(), 42)

		assert.ErrorIs(t, err, ErrCityNotFound)
	})
}
