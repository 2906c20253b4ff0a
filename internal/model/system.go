package model

// VersionInfo reports the running build and the state of the database schema.
type VersionInfo struct {
	AppVersion      string          `json:"appVersion"`
	DbVersion       string          `json:"dbVersion"`
	LatestDbVersion string          `json:"latestDbVersion"`
	Features        map[string]bool `json:"features"`
	MigrationNeeded bool            `json:"migrationNeeded"`
	// Set only when MigrationNeeded is true.
	MigrationMessage *string `json:"migrationMessage,omitempty"`
}
