package storage

import (
	"google-auth-service/internal/config"
)

const sqliteDriverName = "sqlite"

// sqliteDSN maps the settings onto a sqlite file path. Host, port and credentials have no meaning
// for sqlite and are ignored.
func sqliteDSN(cfg config.DatabaseConfig) string {
	return cfg.Name
}
