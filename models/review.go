package models

import "time"

const (
	MinScore = 1
	MaxScore = 10
)

// Review carries a composite unique index on (author_id, title_id):
// the database is the backstop for the one-review-per-title rule even
// when two requests race past the service-level pre-check.
type Review struct {
	ID       uint      `json:"id" gorm:"primarykey"`
	TitleID  uint      `json:"-" gorm:"uniqueIndex:uniq_author_title;not null"`
	Title    *Title    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uint      `json:"-" gorm:"uniqueIndex:uniq_author_title;not null"`
	Author   *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"size:200;not null"`
	Score    int       `json:"score" gorm:"not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`
	Comments []Comment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
