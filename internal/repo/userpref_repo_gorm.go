package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dogmatch/internal/domain"
)

type UserPrefRepo struct{ db *gorm.DB }

var _ domain.UserPrefRepository = (*UserPrefRepo)(nil)

func NewUserPrefRepo(db *gorm.DB) *UserPrefRepo { return &UserPrefRepo{db: db} }

func (r *UserPrefRepo) Create(ctx context.Context, p *domain.UserPref) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *UserPrefRepo) GetByUser(ctx context.Context, userID uint) (*domain.UserPref, error) {
	var p domain.UserPref
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *UserPrefRepo) Update(ctx context.Context, p *domain.UserPref) error {
	return r.db.WithContext(ctx).Save(p).Error
}
