package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

type User struct {
	ID          uint       `json:"-" gorm:"primarykey"`
	Username    string     `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email       string     `json:"email" gorm:"size:254;uniqueIndex;not null"`
	FirstName   string     `json:"first_name" gorm:"size:150"`
	LastName    string     `json:"last_name" gorm:"size:150"`
	Bio         string     `json:"bio" gorm:"type:text"`
	Role        UserRole   `json:"role" gorm:"size:10;default:'user'"`
	Password    string     `json:"-"`
	IsStaff     bool       `json:"-" gorm:"default:false"`
	ConfirmedAt *time.Time `json:"-"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// BeforeSave keeps the staff flag in sync with the role: an admin is
// always staff, no matter which code path saved the record.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Role == RoleAdmin {
		u.IsStaff = true
	}
	return nil
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
