package model

import "time"

// User — зарегистрированный пользователь маркетплейса.
type User struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Email     string `gorm:"uniqueIndex;not null"`
	FirstName string
	LastName  string
	Password  string    `gorm:"not null" json:"-"` // bcrypt-хеш
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
