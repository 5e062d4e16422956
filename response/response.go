package response

import (
	"github.com/PayRam/go-team-tree/models"
	"github.com/shopspring/decimal"
)

// TeamStats are the aggregates of one full, unfiltered tree. AllMembers is the
// pre-order flattening (parent before children, children in received order)
// that the rankings are derived from; its order is part of the contract since
// ranking ties break by traversal position.
type TeamStats struct {
	TotalCount   int64                `json:"totalCount"`
	AgentCount   int64                `json:"agentCount"`
	DirectCount  int64                `json:"directCount"`
	TotalBalance decimal.Decimal      `json:"totalBalance"`
	AllMembers   []*models.MemberNode `json:"allMembers"`
}
