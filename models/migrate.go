package models

import "gorm.io/gorm"

// AutoMigrate creates the schema, wiring the explicit join table so
// the title-genre pair constraint lives in the database.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Title{}, "Genres", &TitleGenre{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Genre{},
		&Title{},
		&TitleGenre{},
		&Review{},
		&Comment{},
	)
}
