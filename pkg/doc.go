// Package pkg provides the core libraries for bnclimb structure learning.
//
// # Overview
//
// bnclimb learns the structure of a discrete Bayesian network from tabular
// data using random-restart hill climbing. The pkg directory is organized
// into five main areas:
//
//  1. [data] - Discrete datasets (CSV loading, dictionary encoding)
//  2. [bn] - Network structure (parent sets, acyclicity, cloning)
//  3. [score] - Scoring metrics (Bayes, MDL, AIC, entropy)
//  4. [search] - Search algorithms (random generation, hill climbing, restarts)
//  5. [render] - Visualization (DOT, SVG, PNG via Graphviz)
//
// # Architecture
//
// The typical data flow:
//
//	CSV file
//	     ↓
//	[data] package (dictionary-encoded dataset)
//	     ↓
//	[search] package (random restarts over [bn] structures, scored by [score])
//	     ↓
//	[render] package (DOT / SVG / PNG output)
//
// # Quick Start
//
// Learn a structure and render it:
//
//	ds, _ := data.ReadCSVFile("weather.csv", data.CSVOptions{})
//	net := bn.New(ds)
//	scorer := score.NewLocal(ds, score.TypeBayes)
//
//	cfg := search.DefaultConfig()
//	cfg.Runs = 10
//	opt := search.NewHillClimber(scorer, search.ClimbConfig{MaxParents: 2})
//
//	r, _ := search.NewRestarter(cfg, scorer, opt, nil)
//	result, _ := r.Search(context.Background(), net)
//
//	dot := render.ToDOT(net, render.Options{})
//
// # Main Packages
//
// [data] - Discrete tabular datasets. CSV files are dictionary-encoded: each
// column becomes a nominal attribute whose values are indexed in order of
// first appearance. One attribute is designated the class.
//
// [bn] - The network structure: an ordered parent set per node over a fixed
// dataset. All mutations preserve acyclicity; cycle checks run before any
// arc is committed.
//
// [score] - Decomposable scoring metrics with per-node memoization. A
// network's total score is the sum of local scores, so search moves are
// evaluated by rescoring only the touched nodes.
//
// [search] - The search layer. [search.Generate] draws a random acyclic
// structure, [search.HillClimber] greedily improves one, and
// [search.Restarter] repeats the pair across seeded runs keeping the best
// structure seen, never worse than the input.
//
// [render] - Graphviz-based visualization of a learned network.
//
// [cache] - Content-addressed artifact caching for the CLI, keyed on the
// dataset hash plus the full search configuration.
//
// [errors] - Structured errors with stable codes shared across packages.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/search/... # Specific package
//	go test -run Example     # Examples only
//	go test -short ./...     # Skip Graphviz rendering tests
//
// [data]: https://pkg.go.dev/github.com/matzehuels/bnclimb/pkg/data
// [bn]: https://pkg.go.dev/github.com/matzehuels/bnclimb/pkg/bn
// [score]: https://pkg.go.dev/github.com/matzehuels/bnclimb/pkg/score
// [search]: https://pkg.go.dev/github.com/matzehuels/bnclimb/pkg/search
// [render]: https://pkg.go.dev/github.com/matzehuels/bnclimb/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/bnclimb/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/bnclimb/pkg/errors
package pkg
