package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"zvitbot/internal/errs"
	"zvitbot/internal/infrastructure/persistence/sqlite/model"
	"zvitbot/internal/ports"
)

const substringResultCap = 50

type ReportRepository struct {
	db *gorm.DB
}

var _ ports.ReportRepository = (*ReportRepository)(nil)

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

func (r *ReportRepository) Insert(ctx context.Context, report ports.Report) (uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	row := model.Report{
		FullName:    report.FullName,
		Static:      report.Static,
		Operation:   report.Operation,
		Description: report.Description,
		CreatedAt:   report.CreatedAt,
		IssuedBy:    report.IssuedBy,
	}
	if err := db.Create(&row).Error; err != nil {
		return 0, errs.Wrap(err, "insert report")
	}
	return row.ID, nil
}

func (r *ReportRepository) FindByNameSubstring(ctx context.Context, query string) ([]ports.Report, error) {
	return r.findBySubstring(ctx, "full_name", query)
}

func (r *ReportRepository) FindByStaticSubstring(ctx context.Context, query string) ([]ports.Report, error) {
	return r.findBySubstring(ctx, "static", query)
}

func (r *ReportRepository) findBySubstring(ctx context.Context, column string, query string) ([]ports.Report, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Report
	if err := db.
		Where(column+" LIKE ?", "%"+query+"%").
		Order("id desc").
		Limit(substringResultCap).
		Find(&rows).Error; err != nil {
		return nil, errs.Wrapf(err, "query reports by %s", column)
	}
	return mapReports(rows), nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id uint64) (ports.Report, bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Report{}, false, err
	}

	var row model.Report
	if err := db.Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Report{}, false, nil
		}
		return ports.Report{}, false, errs.Wrap(err, "query report by id")
	}
	return mapReport(row), true, nil
}

func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]ports.Report, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Report{}).Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.Report
	if err := query.Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query recent reports")
	}
	return mapReports(rows), nil
}

func (r *ReportRepository) Count(ctx context.Context) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := db.Model(&model.Report{}).Count(&total).Error; err != nil {
		return 0, errs.Wrap(err, "count reports")
	}
	return total, nil
}

func mapReport(row model.Report) ports.Report {
	return ports.Report{
		ID:          row.ID,
		FullName:    row.FullName,
		Static:      row.Static,
		Operation:   row.Operation,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		IssuedBy:    row.IssuedBy,
	}
}

func mapReports(rows []model.Report) []ports.Report {
	items := make([]ports.Report, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapReport(row))
	}
	return items
}
