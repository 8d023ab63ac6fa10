package store

import (
	"context"
	"sync"
	"time"

	"github.com/edvin/customer-api/internal/model"
	"github.com/edvin/customer-api/internal/platform"
)

// Memory keeps customers in process memory. It backs the API when no
// database is configured and is handy in tests.
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]*model.Customer
	order []string
	now   func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byID: make(map[string]*model.Customer),
		now:  time.Now,
	}
}

func (s *Memory) Create(_ context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c.ID = platform.NewID()
	c.CreatedAt = now
	c.UpdatedAt = now

	stored := *c
	s.byID[c.ID] = &stored
	s.order = append(s.order, c.ID)
	return nil
}

func (s *Memory) FindByID(_ context.Context, id string) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (s *Memory) FindByName(_ context.Context, name string) (*model.Customer, error) {
	return s.first(func(c *model.Customer) bool { return c.Name == name }), nil
}

func (s *Memory) FindByEmail(_ context.Context, email string) (*model.Customer, error) {
	return s.first(func(c *model.Customer) bool { return c.Email == email }), nil
}

func (s *Memory) FindByNameAndEmail(_ context.Context, name, email string) (*model.Customer, error) {
	return s.first(func(c *model.Customer) bool { return c.Name == name && c.Email == email }), nil
}

// Save overwrites the stored customer with the same ID. A customer that was
// deleted in the meantime is stored again.
func (s *Memory) Save(_ context.Context, c *model.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.UpdatedAt = s.now()
	stored := *c
	if _, ok := s.byID[c.ID]; !ok {
		s.order = append(s.order, c.ID)
	}
	s.byID[c.ID] = &stored
	return nil
}

func (s *Memory) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return nil
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Memory) Ping(context.Context) error { return nil }

// first returns a copy of the earliest inserted customer matching fn.
func (s *Memory) first(fn func(*model.Customer) bool) *model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if c := s.byID[id]; fn(c) {
			out := *c
			return &out
		}
	}
	return nil
}
