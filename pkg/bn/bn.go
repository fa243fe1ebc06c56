// Package bn provides the mutable network structure that the search
// algorithms operate on: a directed acyclic graph over the attributes of a
// dataset, where each node owns an ordered list of parent nodes.
//
// Acyclicity is enforced at insertion time: [Network.AddParent] refuses any
// arc that would close a directed cycle, so a Network is a valid DAG at
// every point in its lifetime. [Network.Validate] re-checks the whole graph
// and exists for tests and defensive verification, not for repair.
//
// Network is not safe for concurrent use without external synchronization.
package bn

import (
	"errors"
	"slices"

	"github.com/matzehuels/bnclimb/pkg/data"
)

var (
	// ErrNodeOutOfRange is returned when a node index is not in [0, N)
	// for a network over N attributes.
	ErrNodeOutOfRange = errors.New("node index out of range")

	// ErrSelfParent is returned by [Network.AddParent] when a node is
	// added as its own parent.
	ErrSelfParent = errors.New("node cannot be its own parent")

	// ErrDuplicateParent is returned by [Network.AddParent] when the
	// parent is already present in the node's parent set.
	ErrDuplicateParent = errors.New("duplicate parent")

	// ErrWouldCycle is returned by [Network.AddParent] when inserting the
	// arc would create a directed cycle. The arc is never committed.
	ErrWouldCycle = errors.New("arc would create a cycle")

	// ErrUnknownParent is returned by [Network.RemoveParent] when the
	// parent is not in the node's parent set.
	ErrUnknownParent = errors.New("parent not in parent set")

	// ErrDatasetMismatch is returned by [Network.CopyFrom] when the two
	// networks were not built over the same dataset. Parent sets are only
	// meaningful relative to one attribute numbering.
	ErrDatasetMismatch = errors.New("networks built over different datasets")

	// ErrNetworkHasCycle is returned by [Network.Validate] when a cycle is
	// detected. This indicates corruption: the insertion checks should
	// make it unreachable.
	ErrNetworkHasCycle = errors.New("network contains a cycle")
)

// Arc is a directed edge from a parent node to a child node.
type Arc struct {
	Parent int // tail: the node depended on
	Child  int // head: the node owning the parent set
}

// Network is a directed acyclic dependency graph over the attributes of a
// dataset. Node i corresponds to attribute i; its parent set is the ordered
// list of nodes it directly depends on.
//
// The zero value is not usable - use [New] to create a Network.
type Network struct {
	ds      *data.Dataset
	parents [][]int // parents[node] = ordered parent indices
}

// New creates an empty network (no arcs) over the dataset's attributes.
func New(ds *data.Dataset) *Network {
	return &Network{
		ds:      ds,
		parents: make([][]int, ds.NumAttributes()),
	}
}

// Dataset returns the dataset this network was built over.
func (n *Network) Dataset() *data.Dataset { return n.ds }

// NodeCount returns the number of nodes (dataset attributes).
func (n *Network) NodeCount() int { return len(n.parents) }

// ClassNode returns the index of the dataset's class attribute.
func (n *Network) ClassNode() int { return n.ds.ClassIndex() }

// Parents returns the ordered parent set of the node.
// The returned slice should not be modified - use it as a read-only view.
func (n *Network) Parents(node int) []int { return n.parents[node] }

// ParentCount returns the size of the node's parent set.
func (n *Network) ParentCount(node int) int { return len(n.parents[node]) }

// HasParent reports whether parent is in node's parent set.
func (n *Network) HasParent(node, parent int) bool {
	return slices.Contains(n.parents[node], parent)
}

// ArcCount returns the total number of arcs in the network.
func (n *Network) ArcCount() int {
	total := 0
	for _, ps := range n.parents {
		total += len(ps)
	}
	return total
}

// Arcs returns all arcs in the network, ordered by child node and then by
// position in the parent set. The returned slice is owned by the caller.
func (n *Network) Arcs() []Arc {
	arcs := make([]Arc, 0, n.ArcCount())
	for child, ps := range n.parents {
		for _, parent := range ps {
			arcs = append(arcs, Arc{Parent: parent, Child: child})
		}
	}
	return arcs
}

// AddParent appends parent to node's parent set.
// Returns ErrNodeOutOfRange, ErrSelfParent, ErrDuplicateParent, or
// ErrWouldCycle; on any error the network is unchanged. The cycle check
// considers the graph exactly as mutated so far.
func (n *Network) AddParent(node, parent int) error {
	if err := n.checkNode(node); err != nil {
		return err
	}
	if err := n.checkNode(parent); err != nil {
		return err
	}
	if node == parent {
		return ErrSelfParent
	}
	if n.HasParent(node, parent) {
		return ErrDuplicateParent
	}
	if n.WouldCycle(parent, node) {
		return ErrWouldCycle
	}
	n.parents[node] = append(n.parents[node], parent)
	return nil
}

// RemoveParent removes parent from node's parent set, preserving the order
// of the remaining parents. Returns ErrUnknownParent if absent.
func (n *Network) RemoveParent(node, parent int) error {
	if err := n.checkNode(node); err != nil {
		return err
	}
	i := slices.Index(n.parents[node], parent)
	if i < 0 {
		return ErrUnknownParent
	}
	n.parents[node] = slices.Delete(n.parents[node], i, i+1)
	return nil
}

// RemoveLastParent removes the most recently added parent of the node.
// It is a no-op on an empty parent set.
func (n *Network) RemoveLastParent(node int) {
	if ps := n.parents[node]; len(ps) > 0 {
		n.parents[node] = ps[:len(ps)-1]
	}
}

// ClearParents resets every parent set to a fresh empty list. The old
// backing arrays are released rather than truncated, so structures copied
// out earlier never alias a cleared network.
func (n *Network) ClearParents() {
	for i := range n.parents {
		n.parents[i] = nil
	}
}

// WouldCycle reports whether inserting the arc tail→head would create a
// directed cycle, given the arcs currently in the network. Equivalently:
// whether head is already an ancestor of tail. A self-arc always cycles.
func (n *Network) WouldCycle(tail, head int) bool {
	if tail == head {
		return true
	}
	return n.reaches(tail, head, -1, -1)
}

// WouldCycleReversing reports whether reversing the existing arc tail→head
// (removing it and inserting head→tail) would create a directed cycle.
// The check ignores the arc being reversed.
func (n *Network) WouldCycleReversing(tail, head int) bool {
	// Reversal inserts head→tail; that cycles iff tail is still an
	// ancestor of head through some route other than the removed arc.
	return n.reaches(head, tail, head, tail)
}

// reaches reports whether target is an ancestor of start, walking parent
// links upward. The arc (skipChild←skipParent) is ignored when both are
// non-negative.
func (n *Network) reaches(start, target, skipChild, skipParent int) bool {
	seen := make([]bool, len(n.parents))
	stack := []int{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range n.parents[node] {
			if node == skipChild && p == skipParent {
				continue
			}
			if p == target {
				return true
			}
			if !seen[p] {
				seen[p] = true
				stack = append(stack, p)
			}
		}
	}
	return false
}

// Clone returns an independent deep copy of the network over the same
// dataset. Mutating either network never affects the other.
func (n *Network) Clone() *Network {
	c := New(n.ds)
	for i, ps := range n.parents {
		c.parents[i] = slices.Clone(ps)
	}
	return c
}

// CopyFrom overwrites this network's parent sets with deep copies of src's.
// Both networks must have been built over the same dataset; returns
// ErrDatasetMismatch otherwise.
func (n *Network) CopyFrom(src *Network) error {
	if n.ds != src.ds {
		return ErrDatasetMismatch
	}
	for i, ps := range src.parents {
		n.parents[i] = slices.Clone(ps)
	}
	return nil
}

// Validate checks the whole-graph invariants and returns nil if the
// network is a valid structure:
//
//  1. Every parent index is in range and no node is its own parent
//  2. No parent set contains duplicates
//  3. The parent relation is acyclic
//
// Cycle detection uses depth-first search with white/gray/black coloring
// and runs in O(N+E) time.
func (n *Network) Validate() error {
	for node, ps := range n.parents {
		seen := make(map[int]bool, len(ps))
		for _, p := range ps {
			if p < 0 || p >= len(n.parents) {
				return ErrNodeOutOfRange
			}
			if p == node {
				return ErrSelfParent
			}
			if seen[p] {
				return ErrDuplicateParent
			}
			seen[p] = true
		}
	}
	return n.detectCycles()
}

func (n *Network) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(n.parents))
	var hasCycle bool

	var dfs func(node int)
	dfs = func(node int) {
		color[node] = gray
		for _, p := range n.parents[node] {
			switch color[p] {
			case white:
				dfs(p)
			case gray:
				hasCycle = true
				return
			}
		}
		color[node] = black
	}

	for node := range n.parents {
		if color[node] == white {
			dfs(node)
			if hasCycle {
				return ErrNetworkHasCycle
			}
		}
	}
	return nil
}

func (n *Network) checkNode(node int) error {
	if node < 0 || node >= len(n.parents) {
		return ErrNodeOutOfRange
	}
	return nil
}
