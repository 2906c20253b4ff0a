// Package version holds build information set at link time:
//
//	go build -ldflags "-X github.com/ndewijer/Fund-Cashflow-Manager-Backend/internal/version.Version=1.2.0"
package version

// Version is the application version.
var Version = "dev"
