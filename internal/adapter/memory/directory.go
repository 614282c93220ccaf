package memory

import (
	"context"
	"fmt"

	"collabpay/internal/core/domain"
)

// The store doubles as the account directory so tests and demos run
// against a single in-process backend.

func (s *Store) GetBrand(_ context.Context, id string) (*domain.BrandAccount, error) {
	s.amu.Lock()
	defer s.amu.Unlock()
	b, ok := s.brands[id]
	if !ok {
		return nil, fmt.Errorf("brand %s: %w", id, domain.ErrNotFound)
	}
	out := *b
	return &out, nil
}

func (s *Store) GetCreator(_ context.Context, id string) (*domain.CreatorAccount, error) {
	s.amu.Lock()
	defer s.amu.Unlock()
	c, ok := s.creators[id]
	if !ok {
		return nil, fmt.Errorf("creator %s: %w", id, domain.ErrNotFound)
	}
	out := *c
	return &out, nil
}

func (s *Store) CreateBrand(_ context.Context, b *domain.BrandAccount) error {
	s.amu.Lock()
	defer s.amu.Unlock()
	if _, ok := s.brands[b.ID]; ok {
		return fmt.Errorf("brand %s: %w", b.ID, domain.ErrDuplicateID)
	}
	cp := *b
	s.brands[b.ID] = &cp
	return nil
}

func (s *Store) CreateCreator(_ context.Context, c *domain.CreatorAccount) error {
	s.amu.Lock()
	defer s.amu.Unlock()
	if _, ok := s.creators[c.ID]; ok {
		return fmt.Errorf("creator %s: %w", c.ID, domain.ErrDuplicateID)
	}
	cp := *c
	s.creators[c.ID] = &cp
	return nil
}
