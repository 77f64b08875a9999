package reports

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"zvitbot/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "zvitbot/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "zvitbot/internal/infrastructure/persistence/sqlite/uow"
	"zvitbot/internal/ports"
	"zvitbot/internal/render"
)

func setupService(t *testing.T) (*Service, ports.ReportRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&model.Report{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	repo := sqliterepo.NewReportRepository(db)
	uow := sqliteuow.NewUnitOfWork(db)
	renderer := render.New(t.TempDir(), "LTDiploma.otf")
	return NewService(repo, uow, renderer), repo
}

func createInput(n int) CreateInput {
	return CreateInput{
		FullName:    fmt.Sprintf("Петренко Іван %d", n),
		Static:      fmt.Sprintf("8303%d", n),
		Operation:   "Апендектомія",
		Description: "Плановий розтин",
		IssuedBy:    "Др. Коваль",
	}
}

func TestCreateInsertsAndRenders(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, CreateInput{
		FullName:    "Петренко Іван",
		Static:      "83031",
		Operation:   "Апендектомія",
		Description: "Плановий розтин",
		IssuedBy:    "Др. Коваль",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if result.Report.ID == 0 {
		t.Fatal("no id assigned")
	}
	if result.Image == nil || len(result.Image.Data) == 0 {
		t.Fatal("no image rendered")
	}
	if _, format, err := image.DecodeConfig(bytes.NewReader(result.Image.Data)); err != nil || format != "jpeg" {
		t.Fatalf("image format = %q err = %v, want jpeg", format, err)
	}

	stored, found, err := repo.FindByID(ctx, result.Report.ID)
	if err != nil || !found {
		t.Fatalf("find by id: found=%v err=%v", found, err)
	}
	if stored.FullName != "Петренко Іван" || stored.Static != "83031" {
		t.Errorf("stored row mismatch: %+v", stored)
	}
	if stored.IssuedBy == nil || *stored.IssuedBy != "Др. Коваль" {
		t.Errorf("issued_by = %v", stored.IssuedBy)
	}
	if _, err := time.Parse(time.RFC3339, stored.CreatedAt); err != nil {
		t.Errorf("created_at %q is not RFC3339: %v", stored.CreatedAt, err)
	}
}

func TestCreateRejectsMissingRequiredFields(t *testing.T) {
	svc, _ := setupService(t)

	cases := []CreateInput{
		{Static: "1", Operation: "x", Description: "y", IssuedBy: "z"},
		{FullName: "a", Operation: "x", Description: "y", IssuedBy: "z"},
		{FullName: "a", Static: "1", Description: "y", IssuedBy: "z"},
		{FullName: "a", Static: "1", Operation: "x", IssuedBy: "z"},
		{FullName: "   ", Static: "1", Operation: "x", Description: "y"},
	}

	for i, input := range cases {
		if _, err := svc.Create(context.Background(), input); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestCreateAssignsStrictlyIncreasingIDs(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	var lastID uint64
	for i := 0; i < 5; i++ {
		result, err := svc.Create(ctx, createInput(i))
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if result.Report.ID <= lastID {
			t.Fatalf("id %d not greater than previous %d", result.Report.ID, lastID)
		}
		lastID = result.Report.ID
	}
}

func TestSearchByStaticSubstring(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		if _, err := svc.Create(ctx, createInput(i)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rows, err := svc.SearchByStatic(ctx, "8303")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ID <= rows[1].ID {
		t.Errorf("not newest first: %d then %d", rows[0].ID, rows[1].ID)
	}
}

func TestSearchByNameSubstring(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, createInput(1)); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := svc.SearchByName(ctx, "Петренко")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	none, err := svc.SearchByName(ctx, "Сидоренко")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unexpected rows: %v", none)
	}
}

func TestSearchSubstringCappedAtFifty(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	for i := 0; i < 55; i++ {
		if _, err := repo.Insert(ctx, ports.Report{
			FullName:    "Коваленко Олена",
			Static:      "99999",
			Operation:   "огляд",
			Description: "плановий",
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	rows, err := svc.SearchByStatic(ctx, "9999")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 50 {
		t.Fatalf("rows = %d, want cap of 50", len(rows))
	}
}

func TestSearchByID(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := svc.SearchByID(ctx, fmt.Sprintf("%d", created.Report.ID))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != created.Report.ID {
		t.Fatalf("rows = %+v", rows)
	}

	if rows, err := svc.SearchByID(ctx, "не число"); err != nil || len(rows) != 0 {
		t.Errorf("invalid id should yield empty result, got %v / %v", rows, err)
	}
	if rows, err := svc.SearchByID(ctx, "999999"); err != nil || len(rows) != 0 {
		t.Errorf("unknown id should yield empty result, got %v / %v", rows, err)
	}
}

func TestListRecent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		if _, err := svc.Create(ctx, createInput(i)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	rows, err := svc.ListRecent(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("default limit rows = %d, want 5", len(rows))
	}

	two, err := svc.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(two) != 2 {
		t.Fatalf("rows = %d, want 2", len(two))
	}
	if two[0].ID <= two[1].ID {
		t.Errorf("not strictly descending: %d then %d", two[0].ID, two[1].ID)
	}
}
