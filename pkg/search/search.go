// Package search implements network structure learning: a greedy hill
// climber over arc operations and a repeated random-restart controller
// that drives it.
//
// # Architecture
//
// The search is split along two small interfaces:
//
//   - [Scorer] is the score oracle: a pure, deterministic local score per
//     (node, parent set). [score.Local] is the shipped implementation.
//   - [Optimizer] is the local optimizer: it mutates a network in place to
//     a local optimum and never lowers the total score. [HillClimber] is
//     the shipped implementation.
//
// [Restarter] orchestrates the two: it repeatedly generates a random valid
// starting structure, optimizes it, and retains the best-scoring structure
// seen across all runs, including the structure it was handed as the
// baseline.
//
// # Determinism
//
// One pseudo-random stream is seeded from Config.Seed per Search call and
// consumed in a fixed draw order, so a fixed (dataset, config) pair always
// produces the same final parent sets.
//
// # Usage
//
//	scorer := score.NewLocal(ds, score.TypeBayes)
//	climber := search.NewHillClimber(scorer, search.ClimbConfig{MaxParents: 3})
//	r, err := search.NewRestarter(search.DefaultConfig(), scorer, climber, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	net := bn.New(ds)
//	result, err := r.Search(ctx, net)
package search

import (
	"context"

	"github.com/matzehuels/bnclimb/pkg/bn"
	"github.com/matzehuels/bnclimb/pkg/errors"
)

// Scorer is the score oracle consumed by the search.
//
// LocalScore must be a pure function of its inputs: the same (node,
// parents) pair always yields the same value. The restart controller's
// best-so-far comparisons and seed reproducibility depend on this.
type Scorer interface {
	LocalScore(node int, parents []int) (float64, error)
}

// Optimizer is the local search procedure consumed by the restart
// controller. Optimize mutates net in place and must terminate with a
// total score no lower than the one it was handed.
type Optimizer interface {
	Optimize(ctx context.Context, net *bn.Network) error
}

// InitPolicy selects the seed topology of each random restart.
type InitPolicy string

const (
	// InitEmpty starts each restart from a structure with no arcs.
	InitEmpty InitPolicy = "empty"

	// InitStar starts each restart with the class node as sole parent of
	// every other node (the naive Bayes shape).
	InitStar InitPolicy = "star"
)

// ParseInitPolicy parses an init policy name.
func ParseInitPolicy(s string) (InitPolicy, error) {
	switch InitPolicy(s) {
	case InitEmpty:
		return InitEmpty, nil
	case InitStar:
		return InitStar, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInit,
		"unknown init policy %q (must be %q or %q)", s, InitEmpty, InitStar)
}

// Default configuration values.
const (
	// DefaultRuns is the default number of random restarts.
	DefaultRuns = 10

	// DefaultSeed is the default random seed.
	DefaultSeed = int64(1)

	// UnlimitedParents disables the max-parents bound.
	UnlimitedParents = 0
)

// Config configures the restart controller.
type Config struct {
	// Runs is the number of random restarts. Zero runs leaves the input
	// network unchanged (its own score is still the retained baseline).
	Runs int

	// Seed initializes the single pseudo-random stream for the whole
	// Search call. Any value is valid.
	Seed int64

	// MaxParents bounds every node's parent-set size.
	// UnlimitedParents (0) means no bound.
	MaxParents int

	// Init selects the seed topology of each restart.
	Init InitPolicy
}

// DefaultConfig returns the default search configuration: 10 runs, seed 1,
// unbounded parents, star initialization.
func DefaultConfig() Config {
	return Config{
		Runs:       DefaultRuns,
		Seed:       DefaultSeed,
		MaxParents: UnlimitedParents,
		Init:       InitStar,
	}
}

// Validate checks the configuration before any run executes.
func (c Config) Validate() error {
	if c.Runs < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "runs must not be negative: %d", c.Runs)
	}
	if c.MaxParents < 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"max parents must be positive or %d for no bound: %d", UnlimitedParents, c.MaxParents)
	}
	_, err := ParseInitPolicy(string(c.Init))
	return err
}

// allowsParent reports whether a node with the given parent count may take
// one more parent under the bound.
func (c Config) allowsParent(count int) bool {
	return c.MaxParents == UnlimitedParents || count < c.MaxParents
}

// TotalScore sums the scorer's local scores over every node of the
// network. This is the quantity the search maximizes.
func TotalScore(scorer Scorer, net *bn.Network) (float64, error) {
	total := 0.0
	for node := 0; node < net.NodeCount(); node++ {
		v, err := scorer.LocalScore(node, net.Parents(node))
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
