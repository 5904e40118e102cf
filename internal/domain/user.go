package domain

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	PasswordHash string    `gorm:"size:191;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
