package models

import "time"

// Genre has the same shape as Category but lives in its own
// uniqueness space: a slug taken by a category stays free for genres.
type Genre struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"size:256;index;not null"`
	Slug      string    `json:"slug" gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
