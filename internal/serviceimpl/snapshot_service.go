package serviceimpl

import (
	"errors"
	"fmt"

	"github.com/PayRam/go-team-tree/models"
	"github.com/PayRam/go-team-tree/request"
	"github.com/PayRam/go-team-tree/service"
	"gorm.io/gorm"
)

type snapshotService struct {
	DB    *gorm.DB
	trees service.TreeService
}

var _ service.SnapshotService = &snapshotService{}

func NewSnapshotService(db *gorm.DB) *snapshotService {
	return &snapshotService{DB: db, trees: NewTreeService()}
}

// SaveSnapshot validates the raw payload by building the tree from it, then
// persists the payload together with the aggregates computed at save time.
func (s *snapshotService) SaveSnapshot(project string, raw []byte) (*models.TreeSnapshot, error) {
	if project == "" {
		return nil, fmt.Errorf("project cannot be empty")
	}

	// 🔹 Step 1: Build the tree to reject payloads without a root
	root, err := s.trees.BuildTree(raw)
	if err != nil {
		return nil, fmt.Errorf("refusing to snapshot invalid payload: %w", err)
	}

	// 🔹 Step 2: Compute headline aggregates for the snapshot record
	stats := s.trees.ComputeStats(root)

	snapshot := &models.TreeSnapshot{
		Project:      project,
		RootMemberID: root.MemberID,
		Payload:      string(raw),
		MemberCount:  stats.TotalCount,
		TotalBalance: stats.TotalBalance,
	}

	if err := s.DB.Create(snapshot).Error; err != nil {
		return nil, fmt.Errorf("failed to save tree snapshot: %w", err)
	}

	return snapshot, nil
}

func (s *snapshotService) GetSnapshots(req request.GetSnapshotsRequest) ([]models.TreeSnapshot, int64, error) {
	var snapshots []models.TreeSnapshot
	var count int64

	query := s.DB.Model(&models.TreeSnapshot{})

	query = request.ApplyGetSnapshotsRequest(req, query)

	// Calculate total count before applying pagination
	countQuery := query
	if err := countQuery.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tree snapshots: %w", err)
	}

	query = request.ApplyPaginationConditions(query, req.PaginationConditions)

	if err := query.Find(&snapshots).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tree snapshots: %w", err)
	}

	return snapshots, count, nil
}

func (s *snapshotService) GetLatestSnapshot(project string) (*models.TreeSnapshot, error) {
	var snapshot models.TreeSnapshot

	err := s.DB.Where("project = ?", project).
		Order("id DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no snapshot found for project=%s", project)
		}
		return nil, fmt.Errorf("failed to fetch latest snapshot: %w", err)
	}

	return &snapshot, nil
}

// PruneSnapshots deletes all but the newest keep snapshots of a project and
// returns the number of rows removed.
func (s *snapshotService) PruneSnapshots(project string, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative")
	}

	var pruned int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.TreeSnapshot{}).
			Where("project = ?", project).
			Order("id DESC").
			Pluck("id", &ids).Error; err != nil {
			return fmt.Errorf("failed to list snapshots for pruning: %w", err)
		}

		if len(ids) <= keep {
			return nil
		}
		stale := ids[keep:]

		result := tx.Unscoped().Where("id IN (?)", stale).Delete(&models.TreeSnapshot{})
		if result.Error != nil {
			return fmt.Errorf("failed to prune snapshots: %w", result.Error)
		}
		pruned = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return pruned, nil
}
