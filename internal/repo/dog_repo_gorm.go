package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dogmatch/internal/domain"
)

type DogRepo struct{ db *gorm.DB }

var _ domain.DogRepository = (*DogRepo)(nil)

func NewDogRepo(db *gorm.DB) *DogRepo { return &DogRepo{db: db} }

func (r *DogRepo) Create(ctx context.Context, d *domain.Dog) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DogRepo) Update(ctx context.Context, d *domain.Dog) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// Delete removes the dog and its status rows in one transaction.
// 级联删除显式写出来，不依赖 ORM 行为。
func (r *DogRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dog_id = ?", id).Delete(&domain.UserDog{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Dog{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *DogRepo) GetByID(ctx context.Context, id uint) (*domain.Dog, error) {
	var d domain.Dog
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DogRepo) List(ctx context.Context) ([]domain.Dog, error) {
	var dogs []domain.Dog
	err := r.db.WithContext(ctx).Order("id").Find(&dogs).Error
	return dogs, err
}

func (r *DogRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Dog{}).Count(&n).Error
	return n, err
}

func (r *DogRepo) ByOffset(ctx context.Context, offset int) (*domain.Dog, error) {
	var d domain.Dog
	err := r.db.WithContext(ctx).Order("id").Offset(offset).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// restricted 是选狗引擎用的受限集合：状态过滤 + （仅 undecided 时）偏好过滤。
func (r *DogRepo) restricted(ctx context.Context, userID uint, status domain.Status, prefs *domain.UserPref) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&domain.Dog{}).Scopes(WithStatus(userID, status))
	if prefs != nil {
		q = q.Scopes(WithPrefs(prefs))
	}
	return q
}

func (r *DogRepo) FirstWithStatus(ctx context.Context, userID uint, status domain.Status, prefs *domain.UserPref) (*domain.Dog, error) {
	var d domain.Dog
	err := r.restricted(ctx, userID, status, prefs).Order("id").First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DogRepo) NextWithStatus(ctx context.Context, userID uint, status domain.Status, prefs *domain.UserPref, afterID uint) (*domain.Dog, error) {
	var d domain.Dog
	err := r.restricted(ctx, userID, status, prefs).
		Where("id > ?", afterID).
		Order("id").
		First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// unlovedSQL: 每只狗的 like 数（没有行算 0），取全局最小值那一档。
const unlovedSQL = `
SELECT dogs.* FROM dogs
LEFT JOIN user_dogs ON user_dogs.dog_id = dogs.id AND user_dogs.status = 'l'
GROUP BY dogs.id
HAVING COUNT(user_dogs.id) = (
    SELECT MIN(cnt) FROM (
        SELECT COUNT(user_dogs.id) AS cnt FROM dogs
        LEFT JOIN user_dogs ON user_dogs.dog_id = dogs.id AND user_dogs.status = 'l'
        GROUP BY dogs.id
    ) AS like_counts
)
ORDER BY dogs.id`

func (r *DogRepo) Unloved(ctx context.Context) ([]domain.Dog, error) {
	var dogs []domain.Dog
	err := r.db.WithContext(ctx).Raw(unlovedSQL).Scan(&dogs).Error
	return dogs, err
}
