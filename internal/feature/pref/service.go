// Package pref reads and updates a user's stored taste filters.
package pref

import (
	"context"

	"dogmatch/internal/domain"
)

type Service struct {
	prefs domain.UserPrefRepository
}

func NewService(prefs domain.UserPrefRepository) *Service {
	return &Service{prefs: prefs}
}

func (s *Service) Get(ctx context.Context, userID uint) (*domain.UserPref, error) {
	p, err := s.prefs.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Update validates the three comma-lists and overwrites the record.
// 用户归属不可改，只动 age/gender/size。
func (s *Service) Update(ctx context.Context, userID uint, age, gender, size string) (*domain.UserPref, error) {
	if err := domain.ValidatePrefs(age, gender, size); err != nil {
		return nil, err
	}
	p, err := s.prefs.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Age = age
	p.Gender = gender
	p.Size = size
	if err := s.prefs.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
