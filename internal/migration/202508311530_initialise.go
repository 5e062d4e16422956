package migration

import (
	"github.com/PayRam/go-team-tree/models"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

var Initialise = &gormigrate.Migration{
	ID: "202508311530-tt-915207",
	Migrate: func(db *gorm.DB) error {
		return db.AutoMigrate(&models.TreeSnapshot{})
	},
	Rollback: func(db *gorm.DB) error {
		return db.Migrator().DropTable(&models.TreeSnapshot{})
	},
}
