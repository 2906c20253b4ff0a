package request

import (
	"fmt"
	"strconv"
	"strings"
)

// Default and maximum number of import batches returned by the batches endpoint.
const (
	DefaultBatchLimit = 50
	MaxBatchLimit     = 500
)

// ParseScenario normalizes the scenario query parameter.
// An empty parameter selects "neutral". Whether the scenario exists is checked by the caller.
func ParseScenario(scenarioParam string) string {
	scenario := strings.TrimSpace(strings.ToLower(scenarioParam))
	if scenario == "" {
		return "neutral"
	}
	return scenario
}

// ParseBatchLimit parses the limit query parameter of the import batches endpoint.
// Must be between 1 and MaxBatchLimit (defaults to DefaultBatchLimit).
func ParseBatchLimit(limitParam string) (int, error) {
	if limitParam == "" {
		return DefaultBatchLimit, nil
	}

	limit, err := strconv.Atoi(limitParam)
	if err != nil {
		return 0, fmt.Errorf("invalid limit: must be a number")
	}
	if limit < 1 || limit > MaxBatchLimit {
		return 0, fmt.Errorf("invalid limit: must be between 1 and %d", MaxBatchLimit)
	}
	return limit, nil
}

// ParseFlag parses an optional boolean query parameter such as createMissing.
// An empty parameter is false.
func ParseFlag(name, param string) (bool, error) {
	if param == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(param)
	if err != nil {
		return false, fmt.Errorf("invalid %s: must be true or false", name)
	}
	return value, nil
}
