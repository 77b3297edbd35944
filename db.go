package main

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cpnvalentinperez/BotTranferTelegram/models"
)

// openDB connects to Postgres and migrates the bot state table. Only the
// postgres state backend uses a database; the file and memory backends run
// without one.
func openDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := db.AutoMigrate(&models.BotState{}); err != nil {
		return nil, fmt.Errorf("migrating bot_states: %w", err)
	}
	return db, nil
}
