package sqlstore

import (
	"github.com/cockroachdb/errors"

	"github.com/jhoicas/invoice-dao/pkg/config"
)

// Dialect describe lo que cambia entre drivers más allá de los placeholders (eso lo resuelve sqlx.Rebind).
type Dialect struct {
	Name string
	// ReturningID indica que el ID generado se lee con RETURNING; lib/pq no implementa LastInsertId.
	ReturningID bool
}

var dialects = map[string]Dialect{
	config.DriverPostgres: {Name: config.DriverPostgres, ReturningID: true},
	config.DriverMySQL:    {Name: config.DriverMySQL},
	config.DriverSQLite:   {Name: config.DriverSQLite},
}

// DialectFor devuelve el dialecto de un nombre de driver de database/sql.
func DialectFor(driver string) (Dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return Dialect{}, errors.Newf("driver sin soporte en sqlstore: %q", driver)
	}
	return d, nil
}
