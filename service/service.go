package service

import (
	"context"
	"time"

	"github.com/PayRam/go-team-tree/models"
	"github.com/PayRam/go-team-tree/request"
	"github.com/PayRam/go-team-tree/response"
)

// TreeService handles ingestion of raw team-tree payloads and the pure
// in-memory transforms over the resulting tree.
type TreeService interface {
	BuildTree(raw []byte) (*models.MemberNode, error)
	BuildTreeFromPayload(payload *request.TeamTreePayload) (*models.MemberNode, error)
	FilterTree(node *models.MemberNode, criteria request.FilterCriteria) *models.MemberNode
	ComputeStats(node *models.MemberNode) response.TeamStats
	TopPerformers(node *models.MemberNode, n int) []*models.MemberNode
	RecentRegistrations(node *models.MemberNode, n int) []*models.MemberNode
	CountNodes(node *models.MemberNode) int64
	NewViewState(root *models.MemberNode) TreeViewState
}

// TreeViewState tracks which nodes a single consumer currently renders
// expanded. Each screen owns its own instance; state never survives a tree
// re-fetch beyond the defensive false in IsExpanded.
type TreeViewState interface {
	Toggle(id string)
	ExpandAll()
	CollapseAll()
	IsExpanded(id string) bool
	Reset(root *models.MemberNode)
}

// SnapshotService persists fetched team trees for export history and offline
// fallback.
type SnapshotService interface {
	SaveSnapshot(project string, raw []byte) (*models.TreeSnapshot, error)
	GetSnapshots(req request.GetSnapshotsRequest) ([]models.TreeSnapshot, int64, error)
	GetLatestSnapshot(project string) (*models.TreeSnapshot, error)
	PruneSnapshots(project string, keep int) (int64, error)
}

// ExportService serializes whatever tree object is currently held into the
// JSON text handed to the platform file-write collaborator.
type ExportService interface {
	SerializeTree(v any) string
	ExportFileName(at time.Time) string
	WriteExport(dir string, v any) (string, error)
}

// TreeFetcher retrieves the raw team-tree payload from the backend. The HTTP
// client in the client package is the production implementation.
type TreeFetcher interface {
	FetchTeamTree(ctx context.Context, project string) ([]byte, error)
}

type Worker interface {
	RefreshTeamTree(ctx context.Context, project string) (*models.MemberNode, error)
}
