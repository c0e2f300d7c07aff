package model

import (
	"time"
)

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "superadmin"
	// RoleGuest is never persisted; it only appears in tokens and session
	// objects for anonymous learners.
	RoleGuest UserRole = "guest"
)

// swagger:model User
type User struct {
	BaseModel
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	Password     string    `gorm:"size:100;not null" json:"-"`
	Role         UserRole  `gorm:"type:enum('user','admin','superadmin');default:'user'" json:"role"`
	XP           int       `gorm:"default:0" json:"xp"`
	Streak       int       `gorm:"default:0" json:"streak"`
	LastStreakAt time.Time `json:"lastStreakAt"` // day of the last XP-earning activity
	Avatar       string    `gorm:"size:255" json:"avatar"`
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen     time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
