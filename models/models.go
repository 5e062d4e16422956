package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrMissingRoot is returned by tree ingestion when the payload has no
// identifiable root node (top-level member_id missing or empty). Callers are
// expected to render an empty-state rather than treat this as fatal.
var ErrMissingRoot = errors.New("team tree payload has no root member_id")

type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserType is the enumerated member variant. An agent can recruit further
// sub-members; a direct client is conceptually terminal in the business sense,
// though the data model still allows it to carry children.
type UserType string

const (
	UserTypeAgent  UserType = "agent"
	UserTypeDirect UserType = "direct"
)

// MemberNode is one entry of the hierarchical team/referral structure.
// The tree is backend-supplied, acyclic and finite; MemberID is unique across
// the whole tree and is the key for expand/collapse state and rendering.
// Balance and CreatedAt are display/aggregation values only - nothing in this
// library mutates them.
type MemberNode struct {
	MemberID  string          `json:"memberID"`
	Email     string          `json:"email"`
	Nickname  string          `json:"nickname"`
	RealName  *string         `json:"realName,omitempty"`
	Phone     *string         `json:"phone,omitempty"`
	UserType  UserType        `json:"userType"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	Children  []*MemberNode   `json:"children"`
}

// TreeSnapshot is one persisted team-tree fetch for a project: the raw payload
// as received plus headline aggregates computed at save time.
type TreeSnapshot struct {
	BaseModel
	Project      string          `gorm:"size:100;not null;index" json:"project"`
	RootMemberID string          `gorm:"size:100;not null;index" json:"rootMemberID"`
	Payload      string          `gorm:"type:text;not null" json:"payload"`
	MemberCount  int64           `gorm:"not null" json:"memberCount"`
	TotalBalance decimal.Decimal `gorm:"type:decimal(38,18);not null" json:"totalBalance"`
}

func (TreeSnapshot) TableName() string {
	return "team_tree_snapshots"
}
