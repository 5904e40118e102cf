package memory

import (
	"context"

	"dogmatch/internal/domain"
)

// Store itself is the DogRepository and UserDogRepository. Prefs and users
// clash with those method sets, so they get thin named views.

var (
	_ domain.DogRepository      = (*Store)(nil)
	_ domain.UserDogRepository  = (*Store)(nil)
	_ domain.UserPrefRepository = (*PrefRepo)(nil)
	_ domain.UserRepository     = (*UserRepo)(nil)
)

type PrefRepo struct{ s *Store }

func NewPrefRepo(s *Store) *PrefRepo { return &PrefRepo{s: s} }

func (r *PrefRepo) Create(ctx context.Context, p *domain.UserPref) error {
	return r.s.CreatePrefs(ctx, p)
}

func (r *PrefRepo) GetByUser(ctx context.Context, userID uint) (*domain.UserPref, error) {
	return r.s.GetByUser(ctx, userID)
}

func (r *PrefRepo) Update(ctx context.Context, p *domain.UserPref) error {
	return r.s.UpdatePrefs(ctx, p)
}

type UserRepo struct{ s *Store }

func NewUserRepo(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.s.CreateUser(ctx, u)
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.s.FindByID(ctx, id)
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.s.FindByUsername(ctx, username)
}

func (r *UserRepo) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	return r.s.ListUsers(ctx, offset, limit)
}
