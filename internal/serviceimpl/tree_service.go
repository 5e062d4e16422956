package serviceimpl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PayRam/go-team-tree/models"
	"github.com/PayRam/go-team-tree/request"
	"github.com/PayRam/go-team-tree/response"
	"github.com/PayRam/go-team-tree/service"
	"github.com/PayRam/go-team-tree/utils"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

type treeService struct{}

var _ service.TreeService = &treeService{}

func NewTreeService() *treeService {
	return &treeService{}
}

// BuildTree decodes a raw member/team-tree response body into a MemberNode
// tree. Amounts and timestamps go through defaulting coercion; children
// entries without a member_id are dropped rather than failing the whole tree.
func (s *treeService) BuildTree(raw []byte) (*models.MemberNode, error) {
	var payload request.TeamTreePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode team tree payload: %w", err)
	}
	return s.BuildTreeFromPayload(&payload)
}

func (s *treeService) BuildTreeFromPayload(payload *request.TeamTreePayload) (*models.MemberNode, error) {
	if payload == nil || payload.MemberID == "" {
		return nil, models.ErrMissingRoot
	}
	return buildNode(payload), nil
}

func buildNode(p *request.TeamTreePayload) *models.MemberNode {
	node := &models.MemberNode{
		MemberID:  p.MemberID,
		Email:     p.Email,
		Nickname:  p.Nickname,
		RealName:  p.RealName,
		Phone:     p.Phone,
		UserType:  parseUserType(p.UserType),
		Balance:   utils.ParseAmount(string(p.Amount)),
		CreatedAt: utils.EpochToTime(utils.ParseEpoch(string(p.CreateTime))),
		Children:  []*models.MemberNode{},
	}
	for i := range p.Children {
		child := &p.Children[i]
		if child.MemberID == "" {
			// Malformed child entry; degrade gracefully instead of
			// blanking the whole tree.
			continue
		}
		node.Children = append(node.Children, buildNode(child))
	}
	return node
}

func parseUserType(raw string) models.UserType {
	if strings.EqualFold(strings.TrimSpace(raw), string(models.UserTypeAgent)) {
		return models.UserTypeAgent
	}
	return models.UserTypeDirect
}

// FilterTree applies the search criteria while preserving ancestor chains: a
// node survives when it matches directly or when at least one of its children
// survived. This keeps the full path from the root to every matching
// descendant intact, even through non-matching intermediates. Returns nil
// when nothing under node matches. The input tree is never mutated; retained
// nodes are shallow copies carrying the filtered children slice.
func (s *treeService) FilterTree(node *models.MemberNode, criteria request.FilterCriteria) *models.MemberNode {
	if node == nil {
		return nil
	}

	kept := make([]*models.MemberNode, 0, len(node.Children))
	for _, child := range node.Children {
		if filtered := s.FilterTree(child, criteria); filtered != nil {
			kept = append(kept, filtered)
		}
	}

	if !matchesCriteria(node, criteria) && len(kept) == 0 {
		return nil
	}

	copied := *node
	copied.Children = kept
	return &copied
}

func matchesCriteria(node *models.MemberNode, criteria request.FilterCriteria) bool {
	if criteria.UserType != nil && node.UserType != *criteria.UserType {
		return false
	}
	needle := strings.ToLower(strings.TrimSpace(criteria.SearchText))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(node.Email), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(node.Nickname), needle) {
		return true
	}
	if node.RealName != nil && strings.Contains(strings.ToLower(*node.RealName), needle) {
		return true
	}
	return false
}

// ComputeStats aggregates over the full, unfiltered tree. Filtered views
// report their own count separately; balances and rankings always come from
// the complete tree.
func (s *treeService) ComputeStats(node *models.MemberNode) response.TeamStats {
	stats := response.TeamStats{
		TotalBalance: decimal.Zero,
		AllMembers:   []*models.MemberNode{},
	}
	flatten(node, &stats.AllMembers)
	for _, member := range stats.AllMembers {
		stats.TotalCount++
		if member.UserType == models.UserTypeAgent {
			stats.AgentCount++
		} else {
			stats.DirectCount++
		}
		stats.TotalBalance = stats.TotalBalance.Add(member.Balance)
	}
	return stats
}

// flatten collects the tree in pre-order: parent before children, children in
// received order. Ranking tie-breaks depend on this order being stable.
func flatten(node *models.MemberNode, out *[]*models.MemberNode) {
	if node == nil {
		return
	}
	*out = append(*out, node)
	for _, child := range node.Children {
		flatten(child, out)
	}
}

func (s *treeService) TopPerformers(node *models.MemberNode, n int) []*models.MemberNode {
	return rankMembers(node, n, func(a, b *models.MemberNode) bool {
		return a.Balance.GreaterThan(b.Balance)
	})
}

func (s *treeService) RecentRegistrations(node *models.MemberNode, n int) []*models.MemberNode {
	return rankMembers(node, n, func(a, b *models.MemberNode) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func rankMembers(node *models.MemberNode, n int, before func(a, b *models.MemberNode) bool) []*models.MemberNode {
	if n <= 0 {
		return []*models.MemberNode{}
	}
	var flat []*models.MemberNode
	flatten(node, &flat)

	ranked := make([]*models.MemberNode, len(flat))
	copy(ranked, flat)
	// Stable so that ties keep their traversal position.
	sort.SliceStable(ranked, func(i, j int) bool {
		return before(ranked[i], ranked[j])
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CountNodes walks the tree independently of ComputeStats; the two must
// always agree on the total.
func (s *treeService) CountNodes(node *models.MemberNode) int64 {
	if node == nil {
		return 0
	}
	count := int64(1)
	for _, child := range node.Children {
		count += s.CountNodes(child)
	}
	return count
}

func (s *treeService) NewViewState(root *models.MemberNode) service.TreeViewState {
	return newTreeViewState(root)
}
