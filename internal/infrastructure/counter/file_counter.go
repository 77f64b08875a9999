package counter

import (
	"context"
	"encoding/json"
	"errors"
	"os"

	"zvitbot/internal/errs"
	"zvitbot/internal/ports"
)

type counterState struct {
	LastNumber int `json:"lastNumber"`
}

// FileCounter keeps the last issued diploma number in a small JSON file next
// to the process. A missing file means nothing was issued yet. The
// read-increment-write is deliberately not locked; concurrent issuance may
// duplicate or skip a number, matching the documented behavior.
type FileCounter struct {
	path string
}

var _ ports.SequenceCounter = (*FileCounter)(nil)

func NewFileCounter(path string) *FileCounter {
	return &FileCounter{path: path}
}

// Next returns the next serial number. The number is valid even when the
// returned error is non-nil: persisting the advanced value failed and the
// next call may hand out the same number again.
func (c *FileCounter) Next(ctx context.Context) (int, error) {
	if ctx == nil {
		return 0, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return 0, errs.Wrap(err, "check context")
	}

	last, err := c.read()
	if err != nil {
		return 0, errs.Wrap(err, "read counter state")
	}

	next := last + 1
	if err := c.write(next); err != nil {
		return next, errs.Wrap(err, "persist counter state")
	}
	return next, nil
}

func (c *FileCounter) read() (int, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	var state counterState
	if err := json.Unmarshal(data, &state); err != nil {
		return 0, err
	}
	return state.LastNumber, nil
}

func (c *FileCounter) write(value int) error {
	data, err := json.Marshal(counterState{LastNumber: value})
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}
