package search

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bnclimb/pkg/bn"
	"github.com/matzehuels/bnclimb/pkg/errors"
)

// seedMix decorrelates the two PCG seed words.
const seedMix = 0x9e3779b97f4a7c15

// CacheResetter is implemented by scorers that keep run-scoped memo state.
// The restart controller resets such a scorer once a whole search
// completes.
type CacheResetter interface {
	Reset()
}

// Result describes one completed Search call.
type Result struct {
	// ID uniquely identifies this search invocation.
	ID string

	// InitialScore is the total score of the network as handed in.
	InitialScore float64

	// BestScore is the total score of the retained structure. Always
	// >= InitialScore.
	BestScore float64

	// RunScores holds the post-optimization total score of each run, in
	// run order.
	RunScores []float64

	// ImprovedRuns counts the runs that strictly improved on the best
	// score seen so far.
	ImprovedRuns int

	// Elapsed is the wall-clock duration of the search.
	Elapsed time.Duration
}

// Restarter learns a network structure by repeated random-restart local
// search: each run generates a random valid starting structure, optimizes
// it with the configured [Optimizer], and the best-scoring structure
// across all runs - or the input structure, if nothing beats it - wins.
type Restarter struct {
	cfg    Config
	scorer Scorer
	opt    Optimizer
	logger *log.Logger
}

// NewRestarter creates a restart controller. The configuration is
// validated up front; logger may be nil for silent operation.
func NewRestarter(cfg Config, scorer Scorer, opt Optimizer, logger *log.Logger) (*Restarter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Restarter{cfg: cfg, scorer: scorer, opt: opt, logger: logger}, nil
}

// Search mutates net in place to hold the best structure found and
// returns a summary of the runs.
//
// The input network's own total score is the baseline: a run's result
// replaces the retained structure only if it scores strictly higher, so
// ties keep the earlier structure and the final score is never below the
// initial one. The random stream is seeded once from cfg.Seed and consumed
// across all runs in a fixed order.
//
// ctx is checked at the top of each run; cancellation between runs returns
// ctx.Err() without affecting completed comparisons.
//
// On any scorer or optimizer error the search aborts immediately and net
// is left in whatever state the failing run produced - it is NOT rolled
// back to the input structure. Callers who need the input preserved should
// clone it first.
func (r *Restarter) Search(ctx context.Context, net *bn.Network) (*Result, error) {
	start := time.Now()
	rng := rand.New(rand.NewPCG(uint64(r.cfg.Seed), uint64(r.cfg.Seed)^seedMix))

	result := &Result{ID: uuid.NewString()}

	bestScore, err := TotalScore(r.scorer, net)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScoreFailed, err, "score initial structure")
	}
	result.InitialScore = bestScore

	bestNet := net.Clone()

	r.logger.Debug("starting structure search",
		"id", result.ID, "runs", r.cfg.Runs, "seed", r.cfg.Seed,
		"init", r.cfg.Init, "initial_score", bestScore)

	for run := 0; run < r.cfg.Runs; run++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := Generate(net, r.cfg, rng); err != nil {
			return nil, err
		}
		if err := r.opt.Optimize(ctx, net); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSearchFailed, err, "optimize run %d", run)
		}

		current, err := TotalScore(r.scorer, net)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeScoreFailed, err, "score run %d", run)
		}
		result.RunScores = append(result.RunScores, current)

		if current > bestScore {
			bestScore = current
			if err := bestNet.CopyFrom(net); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "snapshot run %d", run)
			}
			result.ImprovedRuns++
			r.logger.Debug("run improved best structure", "run", run, "score", current)
		} else {
			r.logger.Debug("run kept previous best", "run", run, "score", current, "best", bestScore)
		}
	}

	if err := net.CopyFrom(bestNet); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "restore best structure")
	}
	result.BestScore = bestScore
	result.Elapsed = time.Since(start)

	if resetter, ok := r.scorer.(CacheResetter); ok {
		resetter.Reset()
	}

	r.logger.Debug("structure search finished",
		"id", result.ID, "best_score", bestScore,
		"improved_runs", result.ImprovedRuns, "elapsed", result.Elapsed)
	return result, nil
}
