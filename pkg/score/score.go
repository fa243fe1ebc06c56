// Package score implements local network scores for discrete data.
//
// A local score measures how well one node's parent set explains that
// node's column of the dataset; the total score of a network is the sum of
// its nodes' local scores, and structure search maximizes that sum. All
// scores here are counting-based: they derive from the contingency table of
// the node's values against each joint configuration of its parents'
// values.
//
// Four score types are provided: BAYES (Dirichlet prior), MDL, AIC, and
// ENTROPY. Scores are pure functions of (node, parent set, dataset), which
// the search relies on for reproducibility, so results are memoized in an
// in-process cache keyed by node and parent list.
package score

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/bnclimb/pkg/data"
	"github.com/matzehuels/bnclimb/pkg/errors"
)

// Type selects the scoring function.
type Type string

// Supported score types.
const (
	TypeBayes   Type = "bayes"
	TypeMDL     Type = "mdl"
	TypeAIC     Type = "aic"
	TypeEntropy Type = "entropy"
)

// DefaultAlpha is the Dirichlet prior weight used by the BAYES score.
const DefaultAlpha = 0.5

// ParseType parses a score type name (case-insensitive).
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case TypeBayes:
		return TypeBayes, nil
	case TypeMDL:
		return TypeMDL, nil
	case TypeAIC:
		return TypeAIC, nil
	case TypeEntropy:
		return TypeEntropy, nil
	}
	return "", errors.New(errors.ErrCodeInvalidScore,
		"unknown score type %q (must be one of: bayes, mdl, aic, entropy)", s)
}

// Local computes local scores of one type over one dataset.
//
// Local memoizes every computed score; [Local.Reset] drops the memo. It is
// not safe for concurrent use - the structure search is single-threaded
// and owns its scorer.
type Local struct {
	ds    *data.Dataset
	typ   Type
	alpha float64
	cache map[string]float64
}

// NewLocal creates a scorer of the given type over the dataset.
func NewLocal(ds *data.Dataset, typ Type) *Local {
	return &Local{
		ds:    ds,
		typ:   typ,
		alpha: DefaultAlpha,
		cache: make(map[string]float64),
	}
}

// Type returns the scorer's score type.
func (s *Local) Type() Type { return s.typ }

// LocalScore returns the local score of the node given its parent set.
// The same inputs always yield the same score.
func (s *Local) LocalScore(node int, parents []int) (float64, error) {
	if node < 0 || node >= s.ds.NumAttributes() {
		return 0, errors.New(errors.ErrCodeScoreFailed, "node %d out of range [0,%d)", node, s.ds.NumAttributes())
	}
	for _, p := range parents {
		if p < 0 || p >= s.ds.NumAttributes() {
			return 0, errors.New(errors.ErrCodeScoreFailed, "parent %d out of range [0,%d)", p, s.ds.NumAttributes())
		}
	}

	key := cacheKey(node, parents)
	if v, ok := s.cache[key]; ok {
		return v, nil
	}

	v := s.compute(node, parents)
	s.cache[key] = v
	return v, nil
}

// Reset drops all memoized scores. The search controller calls this once a
// whole search completes, so per-search cache state never outlives its run.
func (s *Local) Reset() {
	s.cache = make(map[string]float64)
}

// compute builds the contingency counts and applies the score formula.
func (s *Local) compute(node int, parents []int) float64 {
	card := s.ds.Cardinality(node)

	// Number of joint parent configurations; the stride of each parent in
	// the flattened configuration index.
	configs := 1
	strides := make([]int, len(parents))
	for i, p := range parents {
		strides[i] = configs
		configs *= s.ds.Cardinality(p)
	}

	// counts[j*card+k] = N_ijk; rowTotals[j] = N_ij
	counts := make(map[int]float64)
	rowTotals := make(map[int]float64)
	for row := 0; row < s.ds.NumRows(); row++ {
		j := 0
		for i, p := range parents {
			j += strides[i] * s.ds.Value(row, p)
		}
		k := s.ds.Value(row, node)
		counts[j*card+k]++
		rowTotals[j]++
	}

	switch s.typ {
	case TypeBayes:
		return s.bayesScore(card, counts, rowTotals)
	default:
		return s.entropyScore(card, counts, rowTotals, configs)
	}
}

// bayesScore is the Dirichlet marginal likelihood with symmetric prior
// weight alpha per cell.
func (s *Local) bayesScore(card int, counts, rowTotals map[int]float64) float64 {
	score := 0.0
	for j, nij := range rowTotals {
		lg, _ := math.Lgamma(float64(card) * s.alpha)
		lgn, _ := math.Lgamma(float64(card)*s.alpha + nij)
		score += lg - lgn
		for k := 0; k < card; k++ {
			nijk := counts[j*card+k]
			if nijk == 0 {
				continue
			}
			la, _ := math.Lgamma(s.alpha + nijk)
			lb, _ := math.Lgamma(s.alpha)
			score += la - lb
		}
	}
	return score
}

// entropyScore is the log-likelihood of the data, penalized per type:
// ENTROPY applies no penalty, AIC subtracts the free-parameter count K,
// and MDL subtracts K/2 * log(N).
func (s *Local) entropyScore(card int, counts, rowTotals map[int]float64, configs int) float64 {
	score := 0.0
	for j, nij := range rowTotals {
		for k := 0; k < card; k++ {
			nijk := counts[j*card+k]
			if nijk == 0 {
				continue
			}
			score += nijk * math.Log(nijk/nij)
		}
	}

	k := float64((card - 1) * configs)
	switch s.typ {
	case TypeAIC:
		score -= k
	case TypeMDL:
		score -= 0.5 * k * math.Log(float64(s.ds.NumRows()))
	}
	return score
}

// cacheKey is an exact key: node index plus the parent list verbatim.
// Parent order is preserved so the key never aliases across orderings,
// even though the score itself only depends on the set.
func cacheKey(node int, parents []int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(node))
	for _, p := range parents {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(p))
	}
	return b.String()
}
