package models

import "time"

// BotState is the single-row table backing the Postgres state store.
// Saldo is stored as text with fixed two-decimal rendering to avoid any
// float round-tripping in the database.
type BotState struct {
	ID          uint `gorm:"primaryKey"`
	UpdatedAt   time.Time
	Saldo       string `gorm:"size:32;not null;default:'0.00'"`
	AvisoMillon bool   `gorm:"default:false"`
}
