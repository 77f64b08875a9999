package reports

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"zvitbot/internal/errs"
	"zvitbot/internal/ports"
	"zvitbot/internal/render"
)

const defaultRecentLimit = 5

// Service owns the report lifecycle: validate, persist, render. Delivery to
// the platform stays with the caller.
type Service struct {
	repo     ports.ReportRepository
	uow      ports.UnitOfWork
	renderer *render.Renderer
	now      func() time.Time
}

func NewService(repo ports.ReportRepository, uow ports.UnitOfWork, renderer *render.Renderer) *Service {
	return &Service{
		repo:     repo,
		uow:      uow,
		renderer: renderer,
		now:      time.Now,
	}
}

type CreateInput struct {
	FullName    string
	Static      string
	Operation   string
	Description string
	IssuedBy    string
}

type CreateResult struct {
	Report ports.Report
	Image  *render.Artifact
}

// Create validates and persists one report, then renders its document. The
// inserted row is kept even when rendering fails afterwards; the caller sees
// the error but the record already exists.
func (s *Service) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	if ctx == nil {
		return CreateResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return CreateResult{}, errs.Wrap(err, "check context")
	}

	report := ports.Report{
		FullName:    strings.TrimSpace(input.FullName),
		Static:      strings.TrimSpace(input.Static),
		Operation:   strings.TrimSpace(input.Operation),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   s.now().UTC().Format(time.RFC3339),
	}

	switch {
	case report.FullName == "":
		return CreateResult{}, errors.New("full name is required")
	case report.Static == "":
		return CreateResult{}, errors.New("static id is required")
	case report.Operation == "":
		return CreateResult{}, errors.New("operation is required")
	case report.Description == "":
		return CreateResult{}, errors.New("description is required")
	}

	if issuedBy := strings.TrimSpace(input.IssuedBy); issuedBy != "" {
		report.IssuedBy = &issuedBy
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		id, err := s.repo.Insert(txCtx, report)
		if err != nil {
			return err
		}
		report.ID = id
		return nil
	}); err != nil {
		return CreateResult{}, errs.Wrap(err, "persist report")
	}

	issuedBy := ""
	if report.IssuedBy != nil {
		issuedBy = *report.IssuedBy
	}

	image, err := s.renderer.OperationReport(render.ReportRequest{
		ID:          report.ID,
		FullName:    report.FullName,
		Static:      report.Static,
		Operation:   report.Operation,
		Description: report.Description,
		IssuedBy:    issuedBy,
		IssuedOn:    s.now(),
	})
	if err != nil {
		return CreateResult{Report: report}, errs.Wrap(err, "render report")
	}

	return CreateResult{Report: report, Image: image}, nil
}

func (s *Service) SearchByName(ctx context.Context, query string) ([]ports.Report, error) {
	return s.repo.FindByNameSubstring(ctx, strings.TrimSpace(query))
}

func (s *Service) SearchByStatic(ctx context.Context, query string) ([]ports.Report, error) {
	return s.repo.FindByStaticSubstring(ctx, strings.TrimSpace(query))
}

// SearchByID treats an unparseable id as "nothing found", matching the
// query-not-found taxonomy rather than raising a validation error.
func (s *Service) SearchByID(ctx context.Context, query string) ([]ports.Report, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(query), 10, 64)
	if err != nil {
		return nil, nil
	}

	report, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return []ports.Report{report}, nil
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]ports.Report, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
