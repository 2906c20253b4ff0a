package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrCashflowNotFound indicates that a cashflow record with the given ID does not exist.
	ErrCashflowNotFound = errors.New("cashflow record not found")

	// ErrGeneralFundNotFound indicates that a general fund with the given ID does not exist.
	ErrGeneralFundNotFound = errors.New("general fund not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrPositionNotFound indicates that a portfolio position does not exist.
	ErrPositionNotFound = errors.New("portfolio position not found")

	// ErrScenarioNotFound indicates an unknown projection scenario.
	ErrScenarioNotFound = errors.New("scenario not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvalidRequest indicates a request body that is missing or cannot be decoded.
	ErrInvalidRequest = errors.New("invalid request body")

	// ErrValidationFailed indicates that a request did not pass field validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidImportFile indicates an upload that could not be parsed.
	// The parser's error names the offending line.
	ErrInvalidImportFile = errors.New("invalid import file")

)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Fund operation errors
	ErrFailedToRetrieveFunds   = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveFund    = errors.New("failed to retrieve fund")
	ErrFailedToCreateFund      = errors.New("failed to create fund")
	ErrFailedToUpdateFund      = errors.New("failed to update fund")
	ErrFailedToDeleteFund      = errors.New("failed to delete fund")
	ErrFailedToComputeMetrics  = errors.New("failed to compute fund metrics")
	ErrFailedToProjectCashflow = errors.New("failed to project cashflows")
	ErrFailedToExportFund      = errors.New("failed to export fund")

	// Cashflow operation errors
	ErrFailedToRetrieveCashflows = errors.New("failed to retrieve cashflows")
	ErrFailedToSaveCashflow      = errors.New("failed to save cashflow")
	ErrFailedToDeleteCashflow    = errors.New("failed to delete cashflow")

	// General fund operation errors
	ErrFailedToRetrieveGeneralFunds = errors.New("failed to retrieve general funds")
	ErrFailedToSaveGeneralFund      = errors.New("failed to save general fund")
	ErrFailedToDeleteGeneralFund    = errors.New("failed to delete general fund")

	// Portfolio operation errors
	ErrFailedToRetrievePortfolios = errors.New("failed to retrieve portfolios")
	ErrFailedToSavePortfolio      = errors.New("failed to save portfolio")
	ErrFailedToDeletePortfolio    = errors.New("failed to delete portfolio")
	ErrFailedToRetrievePositions  = errors.New("failed to retrieve portfolio positions")
	ErrFailedToSavePosition       = errors.New("failed to save portfolio position")
	ErrFailedToDeletePosition     = errors.New("failed to delete portfolio position")
	ErrFailedToBuildWaterfall     = errors.New("failed to build portfolio waterfall")
	ErrFailedToExportPortfolio    = errors.New("failed to export portfolio")

	// Import operation errors
	ErrFailedToImport                = errors.New("failed to import file")
	ErrFailedToRetrieveImportBatches = errors.New("failed to retrieve import batches")

	// Dashboard operation errors
	ErrFailedToLoadDashboard = errors.New("failed to load dashboard")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

