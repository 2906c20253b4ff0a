package cashflow

import (
	"cmp"
	"slices"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// ComputeFundMetrics derives the performance figures of a fund from the full
// list of cashflow records. Records belonging to other funds are ignored.
//
// The calculation:
//   - TotalCalls / TotalDistributions: sums over the fund's records
//   - CurrentNAV: NAV of the record with the highest (year, quarter), 0 without records
//   - NetCashflow: TotalDistributions - TotalCalls
//   - Multiple: (TotalDistributions + CurrentNAV) / TotalCalls, 0 without calls
//   - CalledPercentage: TotalCalls / CommitmentAmount * 100, 0 without commitment
//
// Matching records are sorted by period before summing, so the result does
// not depend on the order of the input slice.
func ComputeFundMetrics(fund model.Fund, records []model.CashflowRecord) model.FundMetrics {
	matching := recordsForFund(fund.ID, records)
	SortRecords(matching)

	var totalCalls, totalDistributions, currentNAV float64
	for _, r := range matching {
		totalCalls += Finite(r.Calls)
		totalDistributions += Finite(r.Distributions)
	}
	if len(matching) > 0 {
		currentNAV = Finite(matching[len(matching)-1].NAV)
	}

	return model.FundMetrics{
		FundID:             fund.ID,
		TotalCalls:         totalCalls,
		TotalDistributions: totalDistributions,
		CurrentNAV:         currentNAV,
		NetCashflow:        totalDistributions - totalCalls,
		Multiple:           multiple(totalCalls, totalDistributions, currentNAV),
		CalledPercentage:   SafeDivide(totalCalls, fund.CommitmentAmount) * 100,
	}
}

// SortRecords orders records by (year, quarter) ascending in place.
// Records sharing a period are ordered by ID so the result is stable across input permutations.
func SortRecords(records []model.CashflowRecord) {
	slices.SortFunc(records, func(a, b model.CashflowRecord) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Quarter, b.Quarter),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

// GroupRecordsByFund groups records by fund ID, keeping input order within a fund.
func GroupRecordsByFund(records []model.CashflowRecord) map[string][]model.CashflowRecord {
	grouped := make(map[string][]model.CashflowRecord)
	for _, r := range records {
		grouped[r.FundID] = append(grouped[r.FundID], r)
	}
	return grouped
}

func recordsForFund(fundID string, records []model.CashflowRecord) []model.CashflowRecord {
	matching := make([]model.CashflowRecord, 0, len(records))
	for _, r := range records {
		if r.FundID == fundID {
			matching = append(matching, r)
		}
	}
	return matching
}

// multiple is the total-value-to-paid-in ratio; it does not time-weight cashflows.
func multiple(calls, distributions, nav float64) float64 {
	if calls <= 0 {
		return 0
	}
	return SafeDivide(distributions+nav, calls)
}
