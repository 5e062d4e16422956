package serviceimpl_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PayRam/go-team-tree/models"
	"github.com/PayRam/go-team-tree/request"
	"github.com/PayRam/go-team-tree/utils"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// genTree draws a random member tree with unique ids, bounded depth and
// fan-out, mixing agents and directs with small random balances.
func genTree(t *rapid.T) *models.MemberNode {
	nextID := 0
	var build func(depth int) *models.MemberNode
	build = func(depth int) *models.MemberNode {
		nextID++
		id := fmt.Sprintf("m%d", nextID)
		userType := models.UserTypeDirect
		if rapid.Bool().Draw(t, "isAgent") {
			userType = models.UserTypeAgent
		}
		node := &models.MemberNode{
			MemberID:  id,
			Email:     id + "@x.com",
			Nickname:  rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "nickname"),
			UserType:  userType,
			Balance:   decimal.NewFromInt(rapid.Int64Range(0, 1000).Draw(t, "balance")),
			CreatedAt: utils.EpochToTime(rapid.Int64Range(0, 1_700_000_000).Draw(t, "createdAt")),
			Children:  []*models.MemberNode{},
		}
		if depth < 4 {
			n := rapid.IntRange(0, 3).Draw(t, "fanout")
			for i := 0; i < n; i++ {
				node.Children = append(node.Children, build(depth+1))
			}
		}
		return node
	}
	return build(0)
}

func collectIDs(node *models.MemberNode, out *[]string) {
	if node == nil {
		return
	}
	*out = append(*out, node.MemberID)
	for _, child := range node.Children {
		collectIDs(child, out)
	}
}

func sumBalances(node *models.MemberNode) decimal.Decimal {
	if node == nil {
		return decimal.Zero
	}
	total := node.Balance
	for _, child := range node.Children {
		total = total.Add(sumBalances(child))
	}
	return total
}

func containsID(node *models.MemberNode, id string) bool {
	if node == nil {
		return false
	}
	if node.MemberID == id {
		return true
	}
	for _, child := range node.Children {
		if containsID(child, id) {
			return true
		}
	}
	return false
}

func TestStatsTotalsInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		stats := treeService.Trees.ComputeStats(tree)

		if stats.TotalCount != treeService.Trees.CountNodes(tree) {
			t.Fatalf("totalCount %d != independent count %d", stats.TotalCount, treeService.Trees.CountNodes(tree))
		}
		if stats.AgentCount+stats.DirectCount != stats.TotalCount {
			t.Fatalf("agent %d + direct %d != total %d", stats.AgentCount, stats.DirectCount, stats.TotalCount)
		}
		if !stats.TotalBalance.Equal(sumBalances(tree)) {
			t.Fatalf("totalBalance %s != independent sum %s", stats.TotalBalance, sumBalances(tree))
		}
	})
}

func TestAncestorPreservationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		var flat []*models.MemberNode
		collectNodes(tree, &flat)

		// Search for an arbitrary node's nickname; every node carrying that
		// nickname must remain reachable in the filtered tree.
		target := flat[rapid.IntRange(0, len(flat)-1).Draw(t, "target")]
		filtered := treeService.Trees.FilterTree(tree, request.FilterCriteria{SearchText: target.Nickname})

		if filtered == nil {
			t.Fatalf("filter for existing nickname %q returned nil", target.Nickname)
		}
		if !containsID(filtered, target.MemberID) {
			t.Fatalf("matching node %s missing from filtered tree", target.MemberID)
		}
	})
}

func TestFilterDoesNotMutateInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		before := treeService.Trees.ComputeStats(tree)
		needle := rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "needle")

		treeService.Trees.FilterTree(tree, request.FilterCriteria{SearchText: needle})

		after := treeService.Trees.ComputeStats(tree)
		if before.TotalCount != after.TotalCount || !before.TotalBalance.Equal(after.TotalBalance) {
			t.Fatalf("filter mutated source tree: before=%+v after=%+v", before, after)
		}
	})
}

func TestFilteredTreeIsSubsetInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		needle := rapid.StringMatching(`[a-z]{1,3}`).Draw(t, "needle")

		filtered := treeService.Trees.FilterTree(tree, request.FilterCriteria{SearchText: needle})
		if filtered == nil {
			return
		}

		var filteredIDs []string
		collectIDs(filtered, &filteredIDs)
		for _, id := range filteredIDs {
			if !containsID(tree, id) {
				t.Fatalf("filtered tree invented node %s", id)
			}
		}

		// Every leaf of the filtered tree must itself match: non-matching
		// nodes only survive as ancestors of matches.
		var checkLeaves func(node *models.MemberNode)
		checkLeaves = func(node *models.MemberNode) {
			if len(node.Children) == 0 {
				if !strings.Contains(strings.ToLower(node.Email), needle) &&
					!strings.Contains(strings.ToLower(node.Nickname), needle) {
					t.Fatalf("filtered leaf %s does not match %q", node.MemberID, needle)
				}
				return
			}
			for _, child := range node.Children {
				checkLeaves(child)
			}
		}
		checkLeaves(filtered)
	})
}

func TestExpandAllCoversTreeInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := genTree(t)
		view := treeService.Trees.NewViewState(tree)

		// Random toggles first; ExpandAll must be deterministic regardless.
		var ids []string
		collectIDs(tree, &ids)
		for i := rapid.IntRange(0, 5).Draw(t, "toggles"); i > 0; i-- {
			view.Toggle(ids[rapid.IntRange(0, len(ids)-1).Draw(t, "toggleIdx")])
		}

		view.ExpandAll()
		for _, id := range ids {
			if !view.IsExpanded(id) {
				t.Fatalf("node %s not expanded after ExpandAll", id)
			}
		}
		if view.IsExpanded("not-in-tree") {
			t.Fatalf("ExpandAll leaked an id outside the tree")
		}

		view.CollapseAll()
		first := view.IsExpanded(tree.MemberID)
		view.CollapseAll()
		if view.IsExpanded(tree.MemberID) != first {
			t.Fatalf("CollapseAll is not idempotent")
		}
		for _, id := range ids[1:] {
			if view.IsExpanded(id) {
				t.Fatalf("node %s still expanded after CollapseAll", id)
			}
		}
	})
}

func collectNodes(node *models.MemberNode, out *[]*models.MemberNode) {
	if node == nil {
		return
	}
	*out = append(*out, node)
	for _, child := range node.Children {
		collectNodes(child, out)
	}
}
