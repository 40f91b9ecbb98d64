package models

import "time"

type Title struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Name        string    `json:"name" gorm:"size:256;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Year        int       `json:"year" gorm:"not null;default:0"`
	CategoryID  *uint     `json:"-"`
	Category    *Category `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Genres      []Genre   `json:"genre,omitempty" gorm:"many2many:title_genres"`
	Reviews     []Review  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TitleGenre is the explicit join table between titles and genres.
// The composite unique index forbids linking the same genre twice.
type TitleGenre struct {
	ID      uint `gorm:"primarykey"`
	TitleID uint `gorm:"uniqueIndex:uniq_title_genre;not null"`
	GenreID uint `gorm:"uniqueIndex:uniq_title_genre;not null"`
}
