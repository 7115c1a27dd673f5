package mysql

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"sukiMarket/domain"

	gosqlmysql "github.com/go-sql-driver/mysql"
)

func TestClassifyErrorMissingTable(t *testing.T) {
	err := &gosqlmysql.MySQLError{
		Number:  1146,
		Message: "Table 'suki_db.promoted_listings' doesn't exist",
	}

	classified := classifyError(fmt.Errorf("query failed: %w", err))

	var missing *domain.MissingTableError
	if !errors.As(classified, &missing) {
		t.Fatalf("classified = %v, want MissingTableError", classified)
	}
	if missing.Table != "promoted_listings" {
		t.Fatalf("table = %q, want promoted_listings", missing.Table)
	}
}

func TestClassifyErrorOtherMySQLErrorsPassThrough(t *testing.T) {
	err := &gosqlmysql.MySQLError{
		Number:  1064,
		Message: "You have an error in your SQL syntax",
	}

	classified := classifyError(err)

	var missing *domain.MissingTableError
	if errors.As(classified, &missing) {
		t.Fatal("syntax error misclassified as missing table")
	}
	if !errors.Is(classified, error(err)) {
		t.Fatalf("error not passed through: %v", classified)
	}
}

func TestClassifyErrorNil(t *testing.T) {
	if classifyError(nil) != nil {
		t.Fatal("nil must classify to nil")
	}
}

func TestDegradeMissingTableSwallowsAbsentTable(t *testing.T) {
	err := fmt.Errorf("query failed: %w", &gosqlmysql.MySQLError{
		Number:  1146,
		Message: "Table 'suki_db.behavioral_events' doesn't exist",
	})

	if degraded := degradeMissingTable(err, "failed to load behavioral events"); degraded != nil {
		t.Fatalf("absent table must degrade to nil, got %v", degraded)
	}
}

func TestDegradeMissingTableKeepsConnectionFailures(t *testing.T) {
	degraded := degradeMissingTable(driver.ErrBadConn, "failed to load behavioral events")

	if !errors.Is(degraded, domain.ErrStoreUnavailable) {
		t.Fatalf("degraded = %v, want ErrStoreUnavailable", degraded)
	}
}

func TestDegradeMissingTableWrapsUnrecognizedErrors(t *testing.T) {
	err := &gosqlmysql.MySQLError{
		Number:  1064,
		Message: "You have an error in your SQL syntax",
	}

	degraded := degradeMissingTable(err, "failed to load behavioral events")

	if !errors.Is(degraded, error(err)) {
		t.Fatalf("original error lost: %v", degraded)
	}
	if degraded.Error() != "failed to load behavioral events: "+err.Error() {
		t.Fatalf("wrap prefix missing: %q", degraded.Error())
	}
}

func TestMissingTableName(t *testing.T) {
	cases := []struct {
		msg  string
		want string
	}{
		{"Table 'suki_db.behavioral_events' doesn't exist", "behavioral_events"},
		{"Table 'products' doesn't exist", "products"},
		{"something unrelated", "unknown"},
		{"Table 'unterminated", "unknown"},
	}

	for _, tc := range cases {
		if got := missingTableName(tc.msg); got != tc.want {
			t.Errorf("missingTableName(%q) = %q, want %q", tc.msg, got, tc.want)
		}
	}
}
