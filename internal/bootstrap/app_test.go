package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"zvitbot/internal/bootstrap/config"
	sqliterepo "zvitbot/internal/infrastructure/persistence/sqlite/repository"
	"zvitbot/internal/ports"
)

func setupApp(t *testing.T) *App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	return &App{
		Config: config.Config{Database: config.DatabaseConfig{Driver: "sqlite", DSN: dsn}},
		DB:     db,
	}
}

func TestInitSchemaEnablesInsertsOnFreshDatabase(t *testing.T) {
	ctx := context.Background()
	app := setupApp(t)
	repo := sqliterepo.NewReportRepository(app.DB)

	if _, err := repo.Insert(ctx, ports.Report{
		FullName:    "Петренко Іван",
		Static:      "83031",
		Operation:   "Апендектомія",
		Description: "Планова операція",
		CreatedAt:   "2025-03-14T12:30:45Z",
	}); err == nil {
		t.Fatal("insert into an unmigrated database must fail")
	}

	if err := app.InitSchema(ctx); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	id, err := repo.Insert(ctx, ports.Report{
		FullName:    "Петренко Іван",
		Static:      "83031",
		Operation:   "Апендектомія",
		Description: "Планова операція",
		CreatedAt:   "2025-03-14T12:30:45Z",
	})
	if err != nil {
		t.Fatalf("insert after init schema: %v", err)
	}
	if id == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestInitSchemaAddsIssuedByToLegacyTable(t *testing.T) {
	ctx := context.Background()
	app := setupApp(t)

	legacyDDL := `CREATE TABLE reports (
		id integer PRIMARY KEY AUTOINCREMENT,
		full_name text NOT NULL,
		static text NOT NULL,
		operation text NOT NULL,
		description text NOT NULL,
		created_at text NOT NULL
	)`
	if err := app.DB.Exec(legacyDDL).Error; err != nil {
		t.Fatalf("create legacy table: %v", err)
	}
	insert := `INSERT INTO reports (full_name, static, operation, description, created_at) VALUES (?, ?, ?, ?, ?)`
	if err := app.DB.Exec(insert, "Петренко Іван", "83031", "Апендектомія", "Планова", "2024-01-02T03:04:05Z").Error; err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}
	if err := app.DB.Exec(insert, "Коваленко Олена", "11111", "Лапароскопія", "Ускладнень немає", "2024-02-03T04:05:06Z").Error; err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	if err := app.InitSchema(ctx); err != nil {
		t.Fatalf("init schema on legacy table: %v", err)
	}
	if !app.DB.Migrator().HasColumn("reports", "issued_by") {
		t.Fatal("issued_by column was not added")
	}

	repo := sqliterepo.NewReportRepository(app.DB)
	report, found, err := repo.FindByID(ctx, 1)
	if err != nil || !found {
		t.Fatalf("find legacy row: found=%v err=%v", found, err)
	}
	if report.FullName != "Петренко Іван" || report.Static != "83031" {
		t.Fatalf("legacy row altered: %+v", report)
	}
	if report.IssuedBy != nil {
		t.Fatalf("legacy row issued_by = %v, want null", *report.IssuedBy)
	}

	// repeat migration on every startup
	if err := app.InitSchema(ctx); err != nil {
		t.Fatalf("second init schema: %v", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("row count after repeated migration = %d, want 2", count)
	}
}
