package admin

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("admin user not found")

type User struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"id"`
	Email        string     `gorm:"column:email;size:320;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	Name         string     `gorm:"column:name;size:255" json:"name"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastSignedIn *time.Time `gorm:"column:last_signed_in" json:"last_signed_in,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "admin_users" }
