package cashflow

import (
	"strings"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
)

// Scenario identifiers.
const (
	ScenarioConservative = "conservative"
	ScenarioNeutral      = "neutral"
	ScenarioOptimistic   = "optimistic"
)

// Scenarios returns the three fixed projection scenarios from most to least pessimistic.
func Scenarios() []model.PortfolioScenario {
	return []model.PortfolioScenario{
		{ID: ScenarioConservative, Multiplier: 0.75},
		{ID: ScenarioNeutral, Multiplier: 1.0},
		{ID: ScenarioOptimistic, Multiplier: 1.3},
	}
}

// ScenarioByID looks up a scenario case-insensitively.
// An empty id resolves to the neutral scenario.
func ScenarioByID(id string) (model.PortfolioScenario, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		id = ScenarioNeutral
	}
	for _, s := range Scenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return model.PortfolioScenario{}, false
}
