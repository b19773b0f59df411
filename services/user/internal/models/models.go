package models

import "time"

const (
	StatusActive   = 1
	StatusInactive = 0
)

type User struct {
	ID           uint      `gorm:"primaryKey"             json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"   json:"username"`
	Email        string    `gorm:"index"                  json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `gorm:"not null"               json:"-"`
	Role         string    `gorm:"not null;default:user"  json:"role"`
	Status       int       `gorm:"not null;default:1"     json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
