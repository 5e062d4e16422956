package serviceimpl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PayRam/go-team-tree/models"
	"github.com/PayRam/go-team-tree/service"
	"gorm.io/gorm"
)

type worker struct {
	DB      *gorm.DB
	Fetcher service.TreeFetcher

	trees     service.TreeService
	snapshots service.SnapshotService
	logger    *slog.Logger
}

var _ service.Worker = &worker{}

func NewWorkerService(db *gorm.DB, fetcher service.TreeFetcher) *worker {
	return &worker{
		DB:        db,
		Fetcher:   fetcher,
		trees:     NewTreeService(),
		snapshots: NewSnapshotService(db),
		logger:    slog.Default(),
	}
}

// RefreshTeamTree fetches the current team tree for a project, persists a
// snapshot and returns the built tree. A fetch or ingestion failure leaves
// the last stored snapshot untouched, so callers can still fall back to it.
func (w *worker) RefreshTeamTree(ctx context.Context, project string) (*models.MemberNode, error) {
	if w.Fetcher == nil {
		return nil, fmt.Errorf("no tree fetcher configured")
	}

	raw, err := w.Fetcher.FetchTeamTree(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team tree for project %s: %w", project, err)
	}

	tree, err := w.trees.BuildTree(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build team tree for project %s: %w", project, err)
	}

	snapshot, err := w.snapshots.SaveSnapshot(project, raw)
	if err != nil {
		// The tree itself is fine; losing one snapshot is not worth
		// failing the refresh.
		w.logger.Warn("failed to persist team tree snapshot",
			"project", project, "error", err)
		return tree, nil
	}

	w.logger.Info("team tree refreshed",
		"project", project,
		"root", snapshot.RootMemberID,
		"members", snapshot.MemberCount)

	return tree, nil
}
