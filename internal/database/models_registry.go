package database

import "microsns/internal/models"

// Models returns the full set of models registered for migration.
// Order matters: referenced tables first.
func Models() []any {
	return []any{
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
	}
}
