package search

import (
	"context"
	"slices"

	"github.com/matzehuels/bnclimb/pkg/bn"
	"github.com/matzehuels/bnclimb/pkg/errors"
)

// ClimbConfig configures the greedy hill climber.
type ClimbConfig struct {
	// MaxParents bounds every node's parent-set size.
	// UnlimitedParents (0) means no bound.
	MaxParents int

	// ArcReversal enables the reverse-arc operation in addition to add
	// and delete.
	ArcReversal bool
}

func (c ClimbConfig) allowsParent(count int) bool {
	return c.MaxParents == UnlimitedParents || count < c.MaxParents
}

// opKind is the kind of a candidate arc operation.
type opKind int

const (
	opAdd opKind = iota
	opDelete
	opReverse
)

// arcOp is one candidate local edit with its score effect.
type arcOp struct {
	kind       opKind
	tail, head int
	delta      float64 // total-score change if applied
	headScore  float64 // head's local score after the edit
	tailScore  float64 // tail's local score after the edit (reversal only)
}

// HillClimber greedily applies the single best score-improving arc
// operation - add, delete, or (optionally) reverse - until no operation
// improves the total score. It is the [Optimizer] shipped with bnclimb.
//
// Every candidate operation respects the max-parents bound and the
// acyclicity invariant, so an optimized network is always a valid
// structure.
type HillClimber struct {
	scorer Scorer
	cfg    ClimbConfig
}

// NewHillClimber creates a hill climber using the given scorer.
func NewHillClimber(scorer Scorer, cfg ClimbConfig) *HillClimber {
	return &HillClimber{scorer: scorer, cfg: cfg}
}

// Optimize mutates net in place to a local optimum. The resulting total
// score is never below the input's. ctx is checked once per climbing step.
func (h *HillClimber) Optimize(ctx context.Context, net *bn.Network) error {
	// Local score baseline per node; updated incrementally as ops apply.
	local := make([]float64, net.NodeCount())
	for node := range local {
		v, err := h.scorer.LocalScore(node, net.Parents(node))
		if err != nil {
			return errors.Wrap(errors.ErrCodeScoreFailed, err, "score node %d", node)
		}
		local[node] = v
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		best, err := h.bestOperation(net, local)
		if err != nil {
			return err
		}
		if best == nil {
			return nil // local optimum
		}
		if err := h.apply(net, local, best); err != nil {
			return err
		}
	}
}

// bestOperation scans all valid arc operations and returns the one with
// the largest strictly positive score delta, or nil when none improves.
// The scan order is fixed (adds, deletes, then reversals, each by node
// index), so equal deltas resolve deterministically to the first found.
func (h *HillClimber) bestOperation(net *bn.Network, local []float64) (*arcOp, error) {
	var best *arcOp
	n := net.NodeCount()

	for head := 0; head < n; head++ {
		parents := net.Parents(head)

		if h.cfg.allowsParent(len(parents)) {
			for tail := 0; tail < n; tail++ {
				if tail == head || net.HasParent(head, tail) || net.WouldCycle(tail, head) {
					continue
				}
				cand := append(slices.Clone(parents), tail)
				s, err := h.scorer.LocalScore(head, cand)
				if err != nil {
					return nil, errors.Wrap(errors.ErrCodeScoreFailed, err, "score add %d->%d", tail, head)
				}
				best = pick(best, &arcOp{kind: opAdd, tail: tail, head: head,
					delta: s - local[head], headScore: s})
			}
		}

		for _, tail := range parents {
			cand := without(parents, tail)
			s, err := h.scorer.LocalScore(head, cand)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeScoreFailed, err, "score delete %d->%d", tail, head)
			}
			best = pick(best, &arcOp{kind: opDelete, tail: tail, head: head,
				delta: s - local[head], headScore: s})
		}
	}

	if h.cfg.ArcReversal {
		for _, arc := range net.Arcs() {
			tail, head := arc.Parent, arc.Child
			if !h.cfg.allowsParent(net.ParentCount(tail)) {
				continue
			}
			if net.WouldCycleReversing(tail, head) {
				continue
			}
			headCand := without(net.Parents(head), tail)
			headScore, err := h.scorer.LocalScore(head, headCand)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeScoreFailed, err, "score reverse %d->%d", tail, head)
			}
			tailCand := append(slices.Clone(net.Parents(tail)), head)
			tailScore, err := h.scorer.LocalScore(tail, tailCand)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeScoreFailed, err, "score reverse %d->%d", tail, head)
			}
			delta := (headScore - local[head]) + (tailScore - local[tail])
			best = pick(best, &arcOp{kind: opReverse, tail: tail, head: head,
				delta: delta, headScore: headScore, tailScore: tailScore})
		}
	}

	return best, nil
}

// apply commits the operation and updates the affected local baselines.
func (h *HillClimber) apply(net *bn.Network, local []float64, op *arcOp) error {
	switch op.kind {
	case opAdd:
		if err := net.AddParent(op.head, op.tail); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "apply add %d->%d", op.tail, op.head)
		}
	case opDelete:
		if err := net.RemoveParent(op.head, op.tail); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "apply delete %d->%d", op.tail, op.head)
		}
	case opReverse:
		if err := net.RemoveParent(op.head, op.tail); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "apply reverse %d->%d", op.tail, op.head)
		}
		if err := net.AddParent(op.tail, op.head); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "apply reverse %d->%d", op.tail, op.head)
		}
		local[op.tail] = op.tailScore
	}
	local[op.head] = op.headScore
	return nil
}

// pick keeps the operation with the larger strictly positive delta.
func pick(best, cand *arcOp) *arcOp {
	if cand.delta <= 0 {
		return best
	}
	if best == nil || cand.delta > best.delta {
		return cand
	}
	return best
}

// without returns a copy of parents with one occurrence of tail removed.
func without(parents []int, tail int) []int {
	out := make([]int, 0, len(parents)-1)
	for _, p := range parents {
		if p != tail {
			out = append(out, p)
		}
	}
	return out
}
