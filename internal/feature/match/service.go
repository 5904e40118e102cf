// Package match is the selection engine: given (user, status category,
// cursor) it walks the ordered, filtered catalog deterministically, with
// wraparound. All cursor state comes in from the caller; nothing here is
// session-bound.
package match

import (
	"context"
	"math/rand/v2"

	"dogmatch/internal/domain"
)

type Service struct {
	dogs     domain.DogRepository
	statuses domain.UserDogRepository
	prefs    domain.UserPrefRepository
	rng      func(n int) int
}

func NewService(dogs domain.DogRepository, statuses domain.UserDogRepository, prefs domain.UserPrefRepository) *Service {
	return &Service{dogs: dogs, statuses: statuses, prefs: prefs, rng: rand.IntN}
}

// WithRNG swaps the picker used by the random selectors. Tests pin it.
func (s *Service) WithRNG(rng func(n int) int) *Service {
	s.rng = rng
	return s
}

// GetDog resolves the public (user, status, cursor) contract:
// cursor -1 means first-in-category, anything else is a strict lower bound
// with wraparound. The cursor itself is never re-validated, only compared.
func (s *Service) GetDog(ctx context.Context, userID uint, status domain.Status, cursor int64) (*domain.Dog, error) {
	prefs, err := s.restrictingPrefs(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	if cursor < 0 {
		return s.firstWithStatus(ctx, userID, status, prefs)
	}

	next, err := s.dogs.NextWithStatus(ctx, userID, status, prefs, uint(cursor))
	if err != nil {
		return nil, err
	}
	if next != nil {
		return next, nil
	}
	// 绕回：没有更大的 id 时回到该类别第一只（可能就是游标自己）
	return s.firstWithStatus(ctx, userID, status, prefs)
}

func (s *Service) firstWithStatus(ctx context.Context, userID uint, status domain.Status, prefs *domain.UserPref) (*domain.Dog, error) {
	d, err := s.dogs.FirstWithStatus(ctx, userID, status, prefs)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// restrictingPrefs: preference filtering applies to undecided only.
// An explicit like or dislike already overrides general taste.
func (s *Service) restrictingPrefs(ctx context.Context, userID uint, status domain.Status) (*domain.UserPref, error) {
	if status.Stored() {
		return nil, nil
	}
	p, err := s.prefs.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// registration provisions prefs; a missing row behaves as accept-all
		p = domain.DefaultPrefs(userID)
	}
	return p, nil
}

// SetStatus moves the (user, dog) pair through the state machine:
// liked ⇄ disliked overwrite in place, undecided deletes the row.
// Returns the dog's current representation.
func (s *Service) SetStatus(ctx context.Context, userID, dogID uint, status domain.Status) (*domain.Dog, error) {
	d, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}

	if status.Stored() {
		err = s.statuses.Upsert(ctx, userID, dogID, status)
	} else {
		err = s.statuses.Remove(ctx, userID, dogID)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// RandomDog picks uniformly over the whole catalog.
func (s *Service) RandomDog(ctx context.Context) (*domain.Dog, error) {
	n, err := s.dogs.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	d, err := s.dogs.ByOffset(ctx, s.rng(int(n)))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// UnlovedDog picks uniformly among the dogs tied for the minimum like-count.
func (s *Service) UnlovedDog(ctx context.Context) (*domain.Dog, error) {
	candidates, err := s.dogs.Unloved(ctx)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNotFound
	}
	return &candidates[s.rng(len(candidates))], nil
}
