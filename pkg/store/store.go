package store

import "github.com/shopspring/decimal"

// State is the persisted bot state. The JSON field names keep the schema of
// the state file written by earlier deployments (saldoAcumulado /
// avisoMillonHecho), so an existing file keeps loading after an upgrade.
type State struct {
	Saldo       decimal.Decimal `json:"saldoAcumulado"`
	AvisoMillon bool            `json:"avisoMillonHecho"`
}

// Store persists bot state across process restarts. Load must return the
// zero State when no prior state exists, never an error.
type Store interface {
	Load() (State, error)
	Save(State) error
}
