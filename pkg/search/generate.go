package search

import (
	"math/rand/v2"

	"github.com/matzehuels/bnclimb/pkg/bn"
	"github.com/matzehuels/bnclimb/pkg/errors"
)

// Generate overwrites net in place with a new random valid structure.
//
// The structure is built in three steps: all parent sets are cleared, the
// seed topology for cfg.Init is laid down (nothing for [InitEmpty]; for
// [InitStar] the class node becomes the sole parent of every other node),
// and then a random number of arc-insertion attempts are made. The attempt
// count is itself drawn from rng, uniformly in [0, N²) for N nodes, so it
// varies run to run. Each attempt draws a tail and a head node and inserts
// tail→head only if the head has room under cfg.MaxParents and the arc
// keeps the graph - as mutated so far in this call - acyclic. Failed
// attempts are skipped silently and not retried.
//
// rng is the caller-owned stream; Generate consumes a deterministic
// sequence of draws from it (attempt count, then tail and head per
// attempt).
func Generate(net *bn.Network, cfg Config, rng *rand.Rand) error {
	n := net.NodeCount()

	net.ClearParents()

	if cfg.Init == InitStar {
		class := net.ClassNode()
		for node := 0; node < n; node++ {
			if node == class {
				continue
			}
			if err := net.AddParent(node, class); err != nil {
				// A star from a single hub cannot cycle; any failure
				// here means the structure invariants are broken.
				return errors.Wrap(errors.ErrCodeInternal, err, "seed star arc %d->%d", class, node)
			}
		}
	}

	attempts := rng.IntN(n * n)
	for attempt := 0; attempt < attempts; attempt++ {
		tail := rng.IntN(n)
		head := rng.IntN(n)
		if !cfg.allowsParent(net.ParentCount(head)) {
			continue
		}
		if tail == head || net.HasParent(head, tail) || net.WouldCycle(tail, head) {
			continue
		}
		if err := net.AddParent(head, tail); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "insert arc %d->%d", tail, head)
		}
	}
	return nil
}
