package jobs

import "gorm.io/gorm"

// backend identifies which atomic-claim strategy Reserve should use,
// mirroring the source's adapter_name collaborator (PostgreSQL / MySQL /
// MSSQL / Teradata / other).
type backend string

const (
	backendPostgres backend = "postgres"
	backendMySQL    backend = "mysql"
	backendMSSQL    backend = "sqlserver"
	backendFallback backend = "fallback"
)

// detectBackend reads db.Dialector.Name() fresh on every call, same as the
// source reads adapter_name fresh per reservation attempt. "teradata" maps
// onto the MSSQL strategy: no Teradata Go driver exists anywhere in the
// example corpus this was built from, so the bracketed "MSSQL/Teradata"
// strategy in the reservation predicate serves both adapter names (see
// DESIGN.md for the reasoning).
func detectBackend(db *gorm.DB) backend {
	name := db.Dialector.Name()
	switch name {
	case "postgres":
		return backendPostgres
	case "mysql":
		return backendMySQL
	case "sqlserver", "teradata":
		return backendMSSQL
	default:
		return backendFallback
	}
}
