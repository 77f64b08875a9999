package ports

import "context"

// Report is one persisted operation record. ID is assigned by the store on
// insert and is the only stable identifier.
type Report struct {
	ID          uint64
	FullName    string
	Static      string
	Operation   string
	Description string
	CreatedAt   string
	IssuedBy    *string
}

// ReportRepository is the single-table store behind the bot. Substring queries
// are capped at 50 rows, newest id first.
type ReportRepository interface {
	Insert(ctx context.Context, report Report) (uint64, error)
	FindByNameSubstring(ctx context.Context, query string) ([]Report, error)
	FindByStaticSubstring(ctx context.Context, query string) ([]Report, error)
	FindByID(ctx context.Context, id uint64) (Report, bool, error)
	ListRecent(ctx context.Context, limit int) ([]Report, error)
	Count(ctx context.Context) (int64, error)
}
