package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/database"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/model"
	"github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// GetVersionInfo reports the application version, the schema version of the
// database and whether migrations are pending.
func (s *SystemService) GetVersionInfo(ctx context.Context) (model.VersionInfo, error) {
	current, latest, err := database.Status(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	info := model.VersionInfo{
		AppVersion:      version.Version,
		DbVersion:       fmt.Sprintf("%d", current),
		LatestDbVersion: fmt.Sprintf("%d", latest),
		Features: map[string]bool{
			"fund_metrics":        true,
			"projections":         true,
			"portfolio_waterfall": true,
			"csv_import":          true,
			"csv_export":          true,
		},
		MigrationNeeded: current < latest,
	}

	if info.MigrationNeeded {
		msg := fmt.Sprintf("database schema is at version %d, latest is %d", current, latest)
		info.MigrationMessage = &msg
	}

	return info, nil
}
