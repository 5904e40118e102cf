package domain

import "time"

// Status 用户对单只狗的态度。undecided 不落库：没有 UserDog 行即 undecided。
type Status string

const (
	StatusLiked     Status = "l"
	StatusDisliked  Status = "d"
	StatusUndecided Status = "u"
)

// ParseStatus maps the wire words ("liked" / "disliked" / "undecided") onto
// the stored single-letter codes. Anything that does not start with 'l' or
// 'd' is treated as undecided, same as the original URL contract.
func ParseStatus(s string) Status {
	if s == "" {
		return StatusUndecided
	}
	switch s[0] {
	case 'l':
		return StatusLiked
	case 'd':
		return StatusDisliked
	}
	return StatusUndecided
}

func (s Status) Stored() bool { return s == StatusLiked || s == StatusDisliked }

// UserDog is one (user, dog) status row. 至多一行，由唯一索引兜底。
type UserDog struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_dog;index:idx_user_status" json:"user_id"`
	DogID     uint      `gorm:"not null;uniqueIndex:idx_user_dog;index" json:"dog_id"`
	Status    Status    `gorm:"size:1;not null;index:idx_user_status" json:"status"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (UserDog) TableName() string { return "user_dogs" }
