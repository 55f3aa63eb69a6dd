package store

import (
	"context"
	"time"

	"github.com/digitalhps/tethne/pkg/tethne/model"
)

// Store persists assembled models so later analysis can join them against
// bibliographic records without re-reading the MALLET output.
type Store interface {
	Close() error

	// SaveModel persists a model under a fresh run id and returns the id.
	SaveModel(ctx context.Context, m *model.Model) (string, error)
	// GetModel reloads a persisted model. The second return is false when
	// no run with that id exists.
	GetModel(ctx context.Context, runID string) (*model.Model, bool, error)
	// ListRuns returns stored runs, newest first.
	ListRuns(ctx context.Context) ([]RunInfo, error)
	// DeleteRun removes a run and all of its rows.
	DeleteRun(ctx context.Context, runID string) error
}

// RunInfo summarizes one persisted model.
type RunInfo struct {
	ID        string
	Topics    int
	Documents int
	Words     int
	CreatedAt time.Time
}
