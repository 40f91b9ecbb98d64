package models

import "time"

type Comment struct {
	ID       uint      `json:"id" gorm:"primarykey"`
	ReviewID uint      `json:"-" gorm:"index;not null"`
	Review   *Review   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uint      `json:"-" gorm:"index;not null"`
	Author   *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text     string    `json:"text" gorm:"size:200;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`
}
