package store

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cpnvalentinperez/BotTranferTelegram/models"
)

// stateRowID pins the store to a single bot_states row.
const stateRowID = 1

// Postgres keeps the state in one bot_states row via gorm. The caller is
// responsible for opening the connection and running migrations.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) Load() (State, error) {
	var row models.BotState
	if err := p.db.First(&row, stateRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("loading state row: %w", err)
	}
	saldo, err := decimal.NewFromString(row.Saldo)
	if err != nil {
		return State{}, fmt.Errorf("parsing stored saldo %q: %w", row.Saldo, err)
	}
	return State{Saldo: saldo, AvisoMillon: row.AvisoMillon}, nil
}

func (p *Postgres) Save(s State) error {
	row := models.BotState{
		ID:          stateRowID,
		Saldo:       s.Saldo.StringFixed(2),
		AvisoMillon: s.AvisoMillon,
	}
	if err := p.db.Save(&row).Error; err != nil {
		return fmt.Errorf("saving state row: %w", err)
	}
	return nil
}

var _ Store = (*Postgres)(nil)
