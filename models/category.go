package models

import "time"

type Category struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"size:256;index;not null"`
	Slug      string    `json:"slug" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
