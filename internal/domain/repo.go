package domain

import "context"

// DogRepository is the ordered catalog plus the restricted-set queries the
// selection engine needs. Absent rows come back as (nil, nil); only real
// storage failures are errors.
//
// The prefs argument narrows the restricted set when non-nil; the engine
// passes it for undecided only (explicit likes/dislikes bypass taste).
type DogRepository interface {
	Create(ctx context.Context, d *Dog) error
	Update(ctx context.Context, d *Dog) error
	// Delete removes the dog and, in the same transaction, every status
	// row referencing it.
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Dog, error)
	List(ctx context.Context) ([]Dog, error)
	Count(ctx context.Context) (int64, error)
	// ByOffset returns the n-th dog in id order (0-based).
	ByOffset(ctx context.Context, offset int) (*Dog, error)

	FirstWithStatus(ctx context.Context, userID uint, status Status, prefs *UserPref) (*Dog, error)
	// NextWithStatus returns the lowest id strictly greater than afterID in
	// the restricted set. No wraparound here; the engine wraps.
	NextWithStatus(ctx context.Context, userID uint, status Status, prefs *UserPref, afterID uint) (*Dog, error)

	// Unloved returns, in id order, every dog whose like-count equals the
	// global minimum (zero-like dogs count as 0).
	Unloved(ctx context.Context) ([]Dog, error)
}

type UserDogRepository interface {
	// Upsert creates the (user, dog) row or overwrites its status,
	// serialized so a concurrent pair of calls cannot produce two rows.
	Upsert(ctx context.Context, userID, dogID uint, status Status) error
	// Remove deletes the row; no-op when absent.
	Remove(ctx context.Context, userID, dogID uint) error
	Get(ctx context.Context, userID, dogID uint) (*UserDog, error)
}

type UserPrefRepository interface {
	Create(ctx context.Context, p *UserPref) error
	GetByUser(ctx context.Context, userID uint) (*UserPref, error)
	Update(ctx context.Context, p *UserPref) error
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
}
