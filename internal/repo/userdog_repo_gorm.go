package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dogmatch/internal/domain"
)

type UserDogRepo struct{ db *gorm.DB }

var _ domain.UserDogRepository = (*UserDogRepo)(nil)

func NewUserDogRepo(db *gorm.DB) *UserDogRepo { return &UserDogRepo{db: db} }

// Upsert find-or-create 在一个事务里跑，行锁 + 唯一索引双保险，
// 并发 set_status 不会写出两行。
func (r *UserDogRepo) Upsert(ctx context.Context, userID, dogID uint, status domain.Status) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ud domain.UserDog
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND dog_id = ?", userID, dogID).
			First(&ud).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ud = domain.UserDog{UserID: userID, DogID: dogID, Status: status}
			if e := tx.Create(&ud).Error; e != nil {
				if isDupKey(e) {
					// 有人绕过 upsert 直插了一行
					return domain.ErrIntegrity
				}
				return e
			}
			return nil
		case err != nil:
			return err
		default:
			return tx.Model(&ud).Update("status", string(status)).Error
		}
	})
}

func (r *UserDogRepo) Remove(ctx context.Context, userID, dogID uint) error {
	// 不存在时就是 no-op
	return r.db.WithContext(ctx).
		Where("user_id = ? AND dog_id = ?", userID, dogID).
		Delete(&domain.UserDog{}).Error
}

func (r *UserDogRepo) Get(ctx context.Context, userID, dogID uint) (*domain.UserDog, error) {
	var ud domain.UserDog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND dog_id = ?", userID, dogID).
		First(&ud).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ud, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
