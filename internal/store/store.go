// Package store persists completed analysis runs so that conversational
// metrics can be compared across recordings over time.
package store

import (
	"context"
	"time"

	"github.com/rhbsesame/conversation-analyzer/internal/analysis"
)

// Run is one persisted analysis of a recording.
type Run struct {
	// ID is assigned by the store on save.
	ID int64

	// Source is the path or name of the analyzed recording.
	Source string

	// DurationSec is the recording length in seconds.
	DurationSec float64

	// LabelA and LabelB are the speaker labels used for this run.
	LabelA string
	LabelB string

	// Stats is the full analysis result.
	Stats *analysis.ConversationStats

	CreatedAt time.Time
}

// Store provides persistence for analysis runs.
// Implementations must be safe for concurrent use.
type Store interface {
	// SaveRun inserts a run and fills in its ID and CreatedAt.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID. Returns (nil, nil) if not found.
	GetRun(ctx context.Context, id int64) (*Run, error)

	// ListRuns returns the most recent runs, newest first, up to limit.
	// A non-positive limit returns all runs.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}
