package sqlstore

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect names.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
	MySQL    = "mysql"
)

// DefaultTable is the table rows are stored in.
const DefaultTable = "relgen_rows"

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 64 && validIdentifierRe.MatchString(s)
}

// dialectOf returns the dialect of a database/sql driver name. Drivers
// wrapped by telemetry packages keep the prefix of the dialect.
func dialectOf(driver string) (string, error) {
	switch {
	case driver == "pgx" || strings.HasPrefix(driver, Postgres):
		return Postgres, nil
	case strings.HasPrefix(driver, SQLite):
		return SQLite, nil
	case strings.HasPrefix(driver, MySQL):
		return MySQL, nil
	default:
		return "", fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}

// statements holds the SQL of one dialect and table.
type statements struct {
	create, insert, selectOne, update, exists string
}

func newStatements(dialect, table string) statements {
	ph := func(n int) string {
		if dialect == Postgres {
			return fmt.Sprintf("$%d", n)
		}
		return "?"
	}
	var ddl string
	switch dialect {
	case Postgres:
		ddl = "CREATE TABLE IF NOT EXISTS %s (collection TEXT NOT NULL, row_key TEXT NOT NULL, content BYTEA, PRIMARY KEY (collection, row_key))"
	case MySQL:
		ddl = "CREATE TABLE IF NOT EXISTS %s (collection VARCHAR(64) NOT NULL, row_key VARCHAR(64) NOT NULL, content LONGBLOB, PRIMARY KEY (collection, row_key))"
	default:
		ddl = "CREATE TABLE IF NOT EXISTS %s (collection TEXT NOT NULL, row_key TEXT NOT NULL, content BLOB, PRIMARY KEY (collection, row_key))"
	}
	return statements{
		create:    fmt.Sprintf(ddl, table),
		insert:    fmt.Sprintf("INSERT INTO %s (collection, row_key, content) VALUES (%s, %s, %s)", table, ph(1), ph(2), ph(3)),
		selectOne: fmt.Sprintf("SELECT content FROM %s WHERE collection = %s AND row_key = %s", table, ph(1), ph(2)),
		update:    fmt.Sprintf("UPDATE %s SET content = %s WHERE collection = %s AND row_key = %s", table, ph(1), ph(2), ph(3)),
		exists:    fmt.Sprintf("SELECT 1 FROM %s WHERE collection = %s AND row_key = %s", table, ph(1), ph(2)),
	}
}
