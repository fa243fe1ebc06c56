package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bnclimb/pkg/bn"
	"github.com/matzehuels/bnclimb/pkg/cache"
	"github.com/matzehuels/bnclimb/pkg/data"
	"github.com/matzehuels/bnclimb/pkg/errors"
	"github.com/matzehuels/bnclimb/pkg/render"
	"github.com/matzehuels/bnclimb/pkg/score"
	"github.com/matzehuels/bnclimb/pkg/search"
)

// Output formats for the learn command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// learnOptions collects everything that shapes a learn invocation.
// The combination (plus the dataset content) keys the artifact cache.
type learnOptions struct {
	runs        int
	seed        int64
	maxParents  int
	init        string
	score       string
	arcReversal bool
	class       string
	format      string
	detailed    bool

	output     string
	configPath string
	refresh    bool
	noCache    bool
}

// learnArtifact is the cached result of a learn invocation: the rendered
// bytes plus enough summary data to reprint the result on a cache hit.
type learnArtifact struct {
	Format       string  `json:"format"`
	Data         []byte  `json:"data"`
	Nodes        int     `json:"nodes"`
	Arcs         int     `json:"arcs"`
	InitialScore float64 `json:"initial_score"`
	BestScore    float64 `json:"best_score"`
	Runs         int     `json:"runs"`
}

// learnCommand creates the learn command.
func (c *CLI) learnCommand() *cobra.Command {
	opts := learnOptions{
		runs:   search.DefaultRuns,
		seed:   search.DefaultSeed,
		init:   string(search.InitStar),
		score:  string(score.TypeBayes),
		format: formatDOT,
	}

	cmd := &cobra.Command{
		Use:   "learn [data.csv]",
		Short: "Learn a network structure from a CSV dataset",
		Long: `Learn a Bayesian network structure from a CSV dataset.

The learn command loads a discrete dataset, runs a random-restart hill
climbing search over network structures, and writes the best structure
found as a DOT, SVG, or PNG graph.

Each run starts from a fresh random structure; the best-scoring structure
across all runs wins, and the result is never worse than the empty
starting network. A fixed seed makes the whole search reproducible.

Results are cached locally keyed on the dataset content and the search
configuration, so repeating an identical invocation is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				fileCfg, err := loadLearnConfig(opts.configPath)
				if err != nil {
					return err
				}
				fileCfg.apply(&opts, cmd.Flags().Changed)
			}
			if err := validFormat(opts.format); err != nil {
				return err
			}
			return c.runLearn(cmd.Context(), args[0], opts)
		},
	}

	// Search flags
	cmd.Flags().IntVarP(&opts.runs, "runs", "r", opts.runs, "number of random restarts")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", opts.seed, "random seed for reproducible searches")
	cmd.Flags().IntVarP(&opts.maxParents, "max-parents", "p", opts.maxParents, "maximum parents per node (0 = unlimited)")
	cmd.Flags().StringVar(&opts.init, "init", opts.init, "random structure seeding: star (default), empty")
	cmd.Flags().StringVar(&opts.score, "score", opts.score, "scoring metric: bayes (default), mdl, aic, entropy")
	cmd.Flags().BoolVar(&opts.arcReversal, "arc-reversal", opts.arcReversal, "consider arc reversals during hill climbing")
	cmd.Flags().StringVar(&opts.class, "class", opts.class, "class attribute name (default last column)")

	// Output flags
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default input name with format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", opts.detailed, "include attribute cardinalities in node labels")

	// Config and cache flags
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file with learn options")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLearn executes the full learn flow: load, search, render, write.
func (c *CLI) runLearn(ctx context.Context, input string, opts learnOptions) error {
	logger := loggerFromContext(ctx)

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read dataset %s: %w", input, err)
	}

	ds, err := data.ReadCSV(bytes.NewReader(raw), data.CSVOptions{Class: opts.class})
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", input, err)
	}
	logger.Debug("dataset loaded", "attributes", ds.NumAttributes(), "rows", ds.NumRows(), "class", ds.Attribute(ds.ClassIndex()).Name)

	store, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	key := cache.ResultKey(cache.Hash(raw),
		opts.runs, opts.seed, opts.maxParents, opts.init, opts.score,
		opts.arcReversal, opts.class, opts.format, opts.detailed)

	if !opts.refresh {
		if artifact, ok := cachedArtifact(ctx, store, key); ok {
			logger.Debug("cache hit", "key", key)
			return c.finishLearn(input, opts, artifact, true)
		}
	}

	artifact, err := c.searchAndRender(ctx, ds, opts)
	if err != nil {
		return err
	}

	if encoded, err := json.Marshal(artifact); err == nil {
		if err := store.Set(ctx, key, encoded, 0); err != nil {
			logger.Debug("cache write failed", "err", err)
		}
	}

	return c.finishLearn(input, opts, artifact, false)
}

// searchAndRender runs the structure search and renders the best network.
func (c *CLI) searchAndRender(ctx context.Context, ds *data.Dataset, opts learnOptions) (*learnArtifact, error) {
	logger := loggerFromContext(ctx)

	scoreType, err := score.ParseType(opts.score)
	if err != nil {
		return nil, err
	}
	initPolicy, err := search.ParseInitPolicy(opts.init)
	if err != nil {
		return nil, err
	}

	cfg := search.Config{
		Runs:       opts.runs,
		Seed:       opts.seed,
		MaxParents: opts.maxParents,
		Init:       initPolicy,
	}
	scorer := score.NewLocal(ds, scoreType)
	opt := search.NewHillClimber(scorer, search.ClimbConfig{
		MaxParents:  opts.maxParents,
		ArcReversal: opts.arcReversal,
	})

	restarter, err := search.NewRestarter(cfg, scorer, opt, logger)
	if err != nil {
		return nil, err
	}

	net := bn.New(ds)
	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Searching %d structures...", opts.runs))
	spinner.Start()

	result, err := restarter.Search(ctx, net)
	if err != nil {
		spinner.StopWithError("Search failed")
		return nil, fmt.Errorf("learn structure: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Learned structure over %d attributes", ds.NumAttributes()))

	rendered, err := renderNetwork(net, opts)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.format, err)
	}

	return &learnArtifact{
		Format:       opts.format,
		Data:         rendered,
		Nodes:        net.NodeCount(),
		Arcs:         net.ArcCount(),
		InitialScore: result.InitialScore,
		BestScore:    result.BestScore,
		Runs:         len(result.RunScores),
	}, nil
}

// finishLearn writes the artifact to disk and prints the summary.
func (c *CLI) finishLearn(input string, opts learnOptions, artifact *learnArtifact, cached bool) error {
	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(input, filepath.Ext(input)) + "." + artifact.Format
	}
	if err := errors.ValidateOutputPath(outPath); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, artifact.Data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	printSuccess("Learned network structure")
	printStats(artifact.Nodes, artifact.Arcs, cached)
	printKeyValue("Score", opts.score)
	printKeyValue("Initial", fmt.Sprintf("%.4f", artifact.InitialScore))
	printKeyValue("Best", fmt.Sprintf("%.4f", artifact.BestScore))
	printKeyValue("Runs", fmt.Sprintf("%d", artifact.Runs))
	printFile(outPath)

	if artifact.Format == formatDOT {
		printNewline()
		printNextStep("Render an image", fmt.Sprintf("bnclimb learn %s --format svg", input))
	}
	return nil
}

// renderNetwork renders the network in the requested format.
func renderNetwork(net *bn.Network, opts learnOptions) ([]byte, error) {
	dot := render.ToDOT(net, render.Options{Detailed: opts.detailed})
	switch opts.format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return render.SVG(dot)
	case formatPNG:
		return render.PNG(dot)
	}
	return nil, fmt.Errorf("unsupported format %q", opts.format)
}

// cachedArtifact fetches and decodes a cached learn result.
func cachedArtifact(ctx context.Context, store cache.Cache, key string) (*learnArtifact, bool) {
	encoded, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var artifact learnArtifact
	if err := json.Unmarshal(encoded, &artifact); err != nil {
		return nil, false
	}
	return &artifact, true
}

// validFormat checks the output format flag.
func validFormat(format string) error {
	switch format {
	case formatDOT, formatSVG, formatPNG:
		return nil
	}
	return fmt.Errorf("unsupported format %q (want dot, svg, or png)", format)
}
