package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/cashflow"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// round rounds a float64 value to two decimal places.
// Monetary values are rounded only here, when they leave the service layer;
// the engine works on unrounded values.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return cashflow.Round(value)
}

func roundMetrics(m model.FundMetrics) model.FundMetrics {
	m.TotalCalls = round(m.TotalCalls)
	m.TotalDistributions = round(m.TotalDistributions)
	m.CurrentNAV = round(m.CurrentNAV)
	m.NetCashflow = round(m.NetCashflow)
	m.Multiple = round(m.Multiple)
	m.CalledPercentage = round(m.CalledPercentage)
	return m
}

func roundPoints(points []model.CashflowPoint) []model.CashflowPoint {
	for i := range points {
		points[i].Calls = round(points[i].Calls)
		points[i].Distributions = round(points[i].Distributions)
		points[i].NAV = round(points[i].NAV)
	}
	return points
}

func roundWaterfallYear(y model.WaterfallYear) model.WaterfallYear {
	y.Contributions = round(y.Contributions)
	y.Distributions = round(y.Distributions)
	y.NetCashflow = round(y.NetCashflow)
	y.CumulativeNet = round(y.CumulativeNet)
	return y
}

func roundWaterfall(w model.Waterfall) model.Waterfall {
	for i := range w.Yearly {
		w.Yearly[i] = roundWaterfallYear(w.Yearly[i])
	}
	if w.PeakOutflow != nil {
		peak := roundWaterfallYear(*w.PeakOutflow)
		w.PeakOutflow = &peak
	}
	if w.PeakInflow != nil {
		peak := roundWaterfallYear(*w.PeakInflow)
		w.PeakInflow = &peak
	}
	w.TotalCommitment = round(w.TotalCommitment)
	w.FinalCumulative = round(w.FinalCumulative)
	return w
}

// withTx runs fn inside a transaction, committing when fn returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
