package request

import "gorm.io/gorm"

type GetSnapshotsRequest struct {
	Projects             []string             `form:"projects"`     // Filter by project
	ID                   *uint                `form:"id"`           // Filter by ID
	RootMemberID         *string              `form:"rootMemberID"` // Filter by the tree's root member
	PaginationConditions PaginationConditions `form:"paginationConditions"` // Embedded pagination and sorting struct
}

func ApplyGetSnapshotsRequest(req GetSnapshotsRequest, query *gorm.DB) *gorm.DB {
	// Apply filters with explicit table name
	if len(req.Projects) > 0 {
		query = query.Where("team_tree_snapshots.project IN (?)", req.Projects)
	}
	if req.ID != nil {
		query = query.Where("team_tree_snapshots.id = ?", *req.ID)
	}
	if req.RootMemberID != nil {
		query = query.Where("team_tree_snapshots.root_member_id = ?", *req.RootMemberID)
	}
	return query
}
