package diplomas

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"zvitbot/internal/bootstrap/logging"
	"zvitbot/internal/domain/diploma"
	"zvitbot/internal/errs"
	"zvitbot/internal/ports"
	"zvitbot/internal/render"
)

// Service turns a diploma request into a numbered, rendered document.
type Service struct {
	counter  ports.SequenceCounter
	renderer *render.Renderer
	now      func() time.Time
}

func NewService(counter ports.SequenceCounter, renderer *render.Renderer) *Service {
	return &Service{
		counter:  counter,
		renderer: renderer,
		now:      time.Now,
	}
}

type IssueInput struct {
	Kind     diploma.Kind
	Surname  string
	Name     string
	Static   string
	IssuedBy string
}

type IssueResult struct {
	Serial   int
	FullName string
	Image    *render.Artifact
}

// Issue advances the serial counter and renders the diploma. A counter
// persistence failure is logged and issuance proceeds with the computed
// number; the next issuance may then reuse it. A counter read failure aborts,
// since the computed number is unknown and a stale one could restamp an
// already issued serial.
func (s *Service) Issue(ctx context.Context, input IssueInput) (IssueResult, error) {
	if ctx == nil {
		return IssueResult{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return IssueResult{}, errs.Wrap(err, "check context")
	}

	surname := strings.TrimSpace(input.Surname)
	name := strings.TrimSpace(input.Name)
	issuedBy := strings.TrimSpace(input.IssuedBy)

	switch {
	case surname == "":
		return IssueResult{}, errors.New("surname is required")
	case name == "":
		return IssueResult{}, errors.New("name is required")
	case issuedBy == "":
		return IssueResult{}, errors.New("issued_by is required")
	}

	kind := input.Kind
	if !kind.Valid() {
		kind = diploma.Therapist
	}

	serial, err := s.counter.Next(ctx)
	if err != nil {
		if serial == 0 {
			return IssueResult{}, errs.Wrap(err, "next diploma serial")
		}
		logging.Warn(ctx, "diploma counter update failed",
			slog.Int("serial", serial),
			slog.Any("err", errs.Loggable(err)),
		)
	}

	image, err := s.renderer.Diploma(render.DiplomaRequest{
		Kind:     kind,
		Surname:  surname,
		Name:     name,
		Static:   strings.TrimSpace(input.Static),
		IssuedBy: issuedBy,
		Serial:   serial,
		IssuedOn: s.now(),
	})
	if err != nil {
		return IssueResult{}, errs.Wrap(err, "render diploma")
	}

	return IssueResult{
		Serial:   serial,
		FullName: surname + " " + name,
		Image:    image,
	}, nil
}
