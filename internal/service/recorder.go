package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/lessensdelharmonie/harmonie/internal/api/dto/v1/contact"
)

// SubmissionRecorder keeps a record of accepted submissions
type SubmissionRecorder interface {
	Record(ctx context.Context, submission *contact.Submission) error
}

// JournalRecorder appends one JSON line per submission to a writer
type JournalRecorder struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJournalRecorder creates a recorder writing to w
func NewJournalRecorder(w io.Writer) *JournalRecorder {
	return &JournalRecorder{w: w}
}

// Record writes the submission as a single line. Lines from concurrent calls
// never interleave.
func (r *JournalRecorder) Record(ctx context.Context, submission *contact.Submission) error {
	line, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.w.Write(line); err != nil {
		return fmt.Errorf("failed to write submission %s: %w", submission.ID, err)
	}
	return nil
}
