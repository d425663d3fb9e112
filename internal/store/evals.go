package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FiscalEval records one debt-target computation. Ratio is nil when
// the inputs were unsustainable; Note carries the reason.
type FiscalEval struct {
	ID             int64
	EvalID         string
	InterestRate   float64
	PrimarySurplus float64
	GrowthRate     float64
	Ratio          *float64
	Note           string
	CreatedAt      int64
}

// AddFiscalEval stores a debt-target computation.
func (db *DB) AddFiscalEval(interestRate, primarySurplus, growthRate float64, ratio *float64, note string) (*FiscalEval, error) {
	now := time.Now().UnixMilli()
	evalID := uuid.NewString()

	result, err := db.Exec(`
		INSERT INTO fiscal_evals (eval_id, interest_rate, primary_surplus, growth_rate, ratio, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, evalID, interestRate, primarySurplus, growthRate, ratio, note, now)
	if err != nil {
		return nil, fmt.Errorf("insert fiscal eval: %w", err)
	}

	id, _ := result.LastInsertId()
	return &FiscalEval{
		ID:             id,
		EvalID:         evalID,
		InterestRate:   interestRate,
		PrimarySurplus: primarySurplus,
		GrowthRate:     growthRate,
		Ratio:          ratio,
		Note:           note,
		CreatedAt:      now,
	}, nil
}

// RecentFiscalEvals returns the most recent evaluations, newest first.
func (db *DB) RecentFiscalEvals(limit int) ([]FiscalEval, error) {
	rows, err := db.Query(`
		SELECT id, eval_id, interest_rate, primary_surplus, growth_rate, ratio, note, created_at
		FROM fiscal_evals ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent fiscal evals: %w", err)
	}
	defer rows.Close()

	var evals []FiscalEval
	for rows.Next() {
		var e FiscalEval
		if err := rows.Scan(&e.ID, &e.EvalID, &e.InterestRate, &e.PrimarySurplus, &e.GrowthRate, &e.Ratio, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan fiscal eval: %w", err)
		}
		evals = append(evals, e)
	}
	return evals, rows.Err()
}
