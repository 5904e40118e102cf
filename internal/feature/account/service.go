// Package account covers registration and token login. Registration also
// provisions the user's default preference record (accept everything),
// so the matching endpoints always have taste filters to read.
package account

import (
	"context"
	"errors"
	"strings"

	"dogmatch/internal/core/auth"
	"dogmatch/internal/domain"
	"dogmatch/pkg/utils"
)

var (
	ErrUsernameTaken  = errors.New("username already taken")
	ErrBadCredentials = errors.New("invalid credentials")
)

type Service struct {
	users domain.UserRepository
	prefs domain.UserPrefRepository
	jwter *auth.JWTer
}

func NewService(users domain.UserRepository, prefs domain.UserPrefRepository, jwter *auth.JWTer) *Service {
	return &Service{users: users, prefs: prefs, jwter: jwter}
}

func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	u := &domain.User{
		Username:     username,
		PasswordHash: utils.HashPassword(password),
		Role:         "user",
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isDup(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	if err := s.prefs.Create(ctx, domain.DefaultPrefs(u.ID)); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, ErrBadCredentials
	}
	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

func isDup(err error) bool {
	if errors.Is(err, domain.ErrIntegrity) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
