package request

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PaginationConditions struct {
	Limit         *int       `form:"limit"`         // Pagination limit
	Offset        *int       `form:"offset"`        // Pagination offset (optional when using ID-based)
	SortBy        *string    `form:"sortBy"`        // Field to sort by
	Order         *string    `form:"order"`         // ASC or DESC
	GreaterThanID *uint      `form:"greaterThanID"` // For ID-based pagination
	LessThanID    *uint      `form:"lessThanID"`    // For reverse ID-based pagination
	CreatedAfter  *time.Time `form:"createdAfter"`  // Filter records created after this date
	CreatedBefore *time.Time `form:"createdBefore"` // Filter records created before this date
}

func ApplyPaginationConditions(query *gorm.DB, conditions PaginationConditions) *gorm.DB {
	if conditions.Offset != nil && *conditions.Offset > 0 {
		query = query.Offset(*conditions.Offset)
	}

	// Apply ID-based pagination
	if conditions.GreaterThanID != nil {
		query = query.Where("id > ?", *conditions.GreaterThanID)
	}
	if conditions.LessThanID != nil {
		query = query.Where("id < ?", *conditions.LessThanID)
	}

	// Apply date filters
	if conditions.CreatedAfter != nil {
		query = query.Where("created_at > ?", *conditions.CreatedAfter)
	}
	if conditions.CreatedBefore != nil {
		query = query.Where("created_at < ?", *conditions.CreatedBefore)
	}

	if conditions.SortBy != nil {
		order := "ASC"
		if conditions.Order != nil {
			order = *conditions.Order
		}
		query = query.Order(fmt.Sprintf("%s %s", *conditions.SortBy, order))
	}

	if conditions.Limit != nil && *conditions.Limit > 0 {
		query = query.Limit(*conditions.Limit)
	}

	return query
}
