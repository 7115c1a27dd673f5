package mysql

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"sukiMarket/domain"

	gosqlmysql "github.com/go-sql-driver/mysql"
)

// MySQL server error 1146: ER_NO_SUCH_TABLE.
const errNoSuchTable = 1146

// classifyError translates driver-specific failures into the typed errors
// the ranking layer understands. Anything unrecognized passes through.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var mysqlErr *gosqlmysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errNoSuchTable {
		return &domain.MissingTableError{Table: missingTableName(mysqlErr.Message)}
	}

	if errors.Is(err, driver.ErrBadConn) {
		return domain.ErrStoreUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.ErrStoreUnavailable
	}

	return err
}

// missingTableName extracts "tbl" from a message shaped like
// "Table 'db.tbl' doesn't exist". Falls back to "unknown".
func missingTableName(msg string) string {
	const marker = "Table '"

	idx := strings.Index(msg, marker)
	if idx == -1 {
		return "unknown"
	}

	rest := msg[idx+len(marker):]
	end := strings.Index(rest, "'")
	if end == -1 {
		return "unknown"
	}

	full := rest[:end]
	if dot := strings.Index(full, "."); dot != -1 {
		return full[dot+1:]
	}

	return full
}

// isMissingTable reports whether err classified as schema drift.
func isMissingTable(err error) bool {
	var mt *domain.MissingTableError
	return errors.As(err, &mt)
}

// degradeMissingTable resolves a query error for tables that are allowed to
// be absent. It returns nil when the table is simply not there yet, so the
// caller serves an empty result; every other failure comes back classified
// or wrapped under the given prefix.
func degradeMissingTable(err error, wrap string) error {
	classified := classifyError(err)
	if isMissingTable(classified) {
		return nil
	}
	if classified != err {
		return classified
	}
	return fmt.Errorf("%s: %w", wrap, err)
}
