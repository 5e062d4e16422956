package go_team_tree

import (
	db2 "github.com/PayRam/go-team-tree/internal/db"
	"github.com/PayRam/go-team-tree/internal/serviceimpl"
	"github.com/PayRam/go-team-tree/service"
	"gorm.io/gorm"
)

type TeamTreeService struct {
	Trees     service.TreeService
	Snapshots service.SnapshotService
	Export    service.ExportService
	Worker    service.Worker
}

// NewTeamTreeService wires the full service set against the given database.
// The fetcher may be nil when the caller never uses the refresh worker.
func NewTeamTreeService(db *gorm.DB, fetcher service.TreeFetcher) *TeamTreeService {
	db2.Migrate(db)
	return &TeamTreeService{
		Trees:     serviceimpl.NewTreeService(),
		Snapshots: serviceimpl.NewSnapshotService(db),
		Export:    serviceimpl.NewExportService(),
		Worker:    serviceimpl.NewWorkerService(db, fetcher),
	}
}
