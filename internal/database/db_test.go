package database

import (
	"bytes"
	"log"
	"path/filepath"
	"testing"

	"audit-checklist/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"admin@example.com": "ad***@example.com",
		"ab@example.com":    "ab***@example.com",
		"@example.com":      "***",
		"no-at-sign":        "***",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMigrateAndSeedAreIdempotent(t *testing.T) {
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "audit_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("migrate #%d: %v", i+1, err)
		}
		SeedDefaultUsers(db)
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 seeded users, got %d", count)
	}
}

func TestAuditLogsAreScopedToUser(t *testing.T) {
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "audit_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	CreateAuditLog(db, "u1", "checklist", "c1", "create", "ISO 9001")
	CreateAuditLog(db, "u1", "checklist", "c1", "answers", "3 answers")
	CreateAuditLog(db, "u2", "document", "d1", "create", "plan.txt")

	logs, err := ListAuditLogs(db, "u1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries for u1, got %d", len(logs))
	}
	if logs[0].Action != "answers" {
		t.Fatalf("expected newest first, got %q", logs[0].Action)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoggerIgnoresRecordNotFound(t *testing.T) {
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "audit_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var buf bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: newLogger(log.New(&buf, "", 0))})

	err = quiet.Where("email = ?", "nobody@example.com").Take(&models.User{}).Error
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty lookup must not be logged: %s", buf.String())
	}

	if err := quiet.Exec("SELECT * FROM missing_table").Error; err == nil {
		t.Fatalf("expected error for missing table")
	}
	if buf.Len() == 0 {
		t.Fatalf("failed statements must still be logged")
	}
}

func TestErrorClassification(t *testing.T) {
	fk := &pgconn.PgError{Code: PgErrForeignKeyViolation}
	if !IsForeignKeyViolation(fk) || !IsForeignKeyViolation(gorm.ErrForeignKeyViolated) {
		t.Fatalf("foreign key violations not recognised")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: PgErrUniqueViolation}) {
		t.Fatalf("unique violation classified as foreign key violation")
	}
	if !IsUniqueViolation(gorm.ErrDuplicatedKey) || !IsRetryable(&pgconn.PgError{Code: PgErrDeadlockDetected}) {
		t.Fatalf("unique/retryable classification broken")
	}
}
