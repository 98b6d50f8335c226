package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"softday/wellness-api/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes for the wellness domain.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.User{},
		&entities.Conversation{},
		&entities.Message{},
		&entities.SentimentProfile{},
		&entities.CheckIn{},
		&entities.DailyStatistic{},
	); err != nil {
		return err
	}

	log.Info().Msg("database schema up to date")
	return nil
}
