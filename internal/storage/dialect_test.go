package storage

import (
	"errors"
	"testing"

	"github.com/glensd/personalExpenseTracker/internal/core"

	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "modernc.org/sqlite/lib"
)

func TestParseDialect(t *testing.T) {
	cases := map[string]Dialect{"": DialectSQLite, "sqlite": DialectSQLite, "Postgres": DialectPostgres, "pgx": DialectPostgres}
	for in, want := range cases {
		got, err := ParseDialect(in)
		if err != nil || got != want {
			t.Fatalf("ParseDialect(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDialect("mysql"); err == nil {
		t.Fatalf("expected error for mysql")
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite untouched", DialectSQLite, "SELECT 1 FROM t WHERE a = ? AND b = ?", "SELECT 1 FROM t WHERE a = ? AND b = ?"},
		{"postgres numbered", DialectPostgres, "SELECT * FROM t WHERE a = ? AND b BETWEEN ? AND ?", "SELECT * FROM t WHERE a = $1 AND b BETWEEN $2 AND $3"},
		{"postgres no placeholders", DialectPostgres, "SELECT COUNT(*) FROM t", "SELECT COUNT(*) FROM t"},
		{"postgres ten or more", DialectPostgres, "?,?,?,?,?,?,?,?,?,?,?", "$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11"},
		{"postgres multibyte text", DialectPostgres, "SELECT 'café' WHERE x = ?", "SELECT 'café' WHERE x = $1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.rebind(tt.query); got != tt.want {
				t.Fatalf("rebind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDateFragments(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"postgres year", DialectPostgres.yearOf("e.expense_date"), "CAST(EXTRACT(YEAR FROM e.expense_date) AS INTEGER)"},
		{"postgres month", DialectPostgres.monthOf("e.expense_date"), "CAST(EXTRACT(MONTH FROM e.expense_date) AS INTEGER)"},
		{"postgres date text", DialectPostgres.dateText("e.expense_date"), "to_char(e.expense_date, 'YYYY-MM-DD')"},
		{"sqlite year", DialectSQLite.yearOf("e.expense_date"), "CAST(strftime('%Y', e.expense_date) AS INTEGER)"},
		{"sqlite month", DialectSQLite.monthOf("e.expense_date"), "CAST(strftime('%m', e.expense_date) AS INTEGER)"},
		{"sqlite date text", DialectSQLite.dateText("e.expense_date"), "strftime('%Y-%m-%d', e.expense_date)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %s, want %s", tt.got, tt.want)
			}
		})
	}

	if DialectPostgres.driverName() != "pgx" || DialectSQLite.driverName() != "sqlite" {
		t.Fatalf("unexpected driver names")
	}
}

func TestConflict(t *testing.T) {
	other := errors.New("disk full")

	tests := []struct {
		name         string
		err          error
		wantConflict bool
	}{
		{"nil", nil, false},
		{"unrelated", other, false},
		{"postgres unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}, true},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conflict(tt.err)
			if errors.Is(got, core.ErrConflict) != tt.wantConflict {
				t.Fatalf("conflict(%v) = %v", tt.err, got)
			}
			if !tt.wantConflict && got != tt.err {
				t.Fatalf("non-conflict error changed: %v", got)
			}
		})
	}
}

func TestIsSQLiteUnique(t *testing.T) {
	tests := []struct {
		name string
		code int
		msg  string
		want bool
	}{
		{"extended unique", sqlite3.SQLITE_CONSTRAINT_UNIQUE, "", true},
		{"primary code with unique message", sqlite3.SQLITE_CONSTRAINT, "UNIQUE constraint failed: users.email", true},
		{"foreign key", sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, "FOREIGN KEY constraint failed", false},
		{"busy", sqlite3.SQLITE_BUSY, "database is locked", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSQLiteUnique(tt.code, tt.msg); got != tt.want {
				t.Fatalf("isSQLiteUnique(%d, %q) = %v, want %v", tt.code, tt.msg, got, tt.want)
			}
		})
	}
}
