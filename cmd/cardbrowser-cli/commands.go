package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yashubustudio/cardbrowser/cardbrowser"
)

type cliOptions struct {
	configPath  string
	catalogPath string
	verbose     bool

	criteria   []string
	preset     string
	region     string
	state      string
	population string
	tags       []string
	limit      int

	output string
	title  string

	logger *zap.Logger
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	focusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	scoreStyle  = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
)

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	root := &cobra.Command{
		Use:           "cardbrowser-cli",
		Short:         "Rank and export catalog cards from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Catalog file (YAML, JSON, CSV or TSV); overrides the config")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the visible cards ordered by score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd.OutOrStdout(), opts)
		},
	}
	addFilterFlags(rankCmd, opts)
	rankCmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Show at most n cards (0 = all)")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ranking as a standalone HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), opts)
		},
	}
	addFilterFlags(exportCmd, opts)
	exportCmd.Flags().StringVarP(&opts.output, "output", "o", "ranking.html", "HTML file to write")
	exportCmd.Flags().StringVar(&opts.title, "title", "Card ranking", "Page title")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List the presets and criteria of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(cmd.OutOrStdout(), opts)
		},
	}

	root.AddCommand(rankCmd, exportCmd, presetsCmd)
	return root
}

func addFilterFlags(cmd *cobra.Command, opts *cliOptions) {
	cmd.Flags().StringSliceVarP(&opts.criteria, "criteria", "c", nil, "Criterion slugs to activate (comma separated)")
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", "", "Preset to apply before --criteria")
	cmd.Flags().StringVar(&opts.region, "region", "", "Only cards in this region")
	cmd.Flags().StringVar(&opts.state, "state", "", "Only cards in this state")
	cmd.Flags().StringVar(&opts.population, "population", "", "Only cards in this population band")
	cmd.Flags().StringArrayVarP(&opts.tags, "tag", "t", nil, "Tag filter as kind=value (region, state, population); repeatable")
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func (o *cliOptions) log() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

func loadCatalog(opts *cliOptions) (cardbrowser.Catalog, error) {
	cfg, err := cardbrowser.LoadConfig(opts.configPath)
	if err != nil {
		return cardbrowser.Catalog{}, fmt.Errorf("load config: %w", err)
	}
	path := strings.TrimSpace(opts.catalogPath)
	if path == "" {
		path = cfg.CatalogPath
	}
	cat, err := cardbrowser.LoadCatalogWithOptions(path, cardbrowser.CatalogParseOptions{
		Criteria: cardbrowser.DefaultCriteria(),
		Presets:  cardbrowser.DefaultPresets(),
		Logger:   opts.log(),
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && opts.catalogPath == "" {
			opts.log().Warn("catalog missing, using built-in sample", zap.String("path", path))
			return cardbrowser.DefaultCatalog(), nil
		}
		return cardbrowser.Catalog{}, err
	}
	opts.log().Debug("catalog loaded", zap.String("path", path), zap.Int("slides", len(cat.Slides)))
	return cat, nil
}

// buildState applies the filter flags in the same order a user would click.
func buildState(cat cardbrowser.Catalog, opts *cliOptions) (*cardbrowser.FilterState, error) {
	state := cardbrowser.NewFilterState()
	if name := strings.TrimSpace(opts.preset); name != "" {
		preset, ok := cat.Preset(name)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		known, unknown := cat.KnownKeys(preset.Keys())
		for _, k := range unknown {
			opts.log().Debug("preset references unknown criterion", zap.String("key", string(k)))
		}
		state.ApplyPreset(preset.Name, known)
	}
	for _, key := range cardbrowser.KeysFromSlugs(opts.criteria) {
		if _, ok := cat.CategoryOf(key); !ok {
			opts.log().Debug("criterion is not a catalog pill", zap.String("key", string(key)))
		}
		state.ToggleCriterion(key)
	}
	tags := map[cardbrowser.TagKind]string{
		cardbrowser.TagRegion:         opts.region,
		cardbrowser.TagAdminArea:      opts.state,
		cardbrowser.TagPopulationBand: opts.population,
	}
	for _, raw := range opts.tags {
		name, value, ok := strings.Cut(raw, "=")
		kind, known := cardbrowser.ParseTagKind(strings.ToLower(strings.TrimSpace(name)))
		if !ok || !known {
			return nil, fmt.Errorf("invalid --tag %q: want kind=value with kind region, state or population", raw)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, fmt.Errorf("invalid --tag %q: empty value", raw)
		}
		if prev := strings.TrimSpace(tags[kind]); prev != "" && prev != value {
			return nil, fmt.Errorf("conflicting %s filters %q and %q", kind, prev, value)
		}
		tags[kind] = value
	}
	for _, kind := range cardbrowser.TagKinds {
		if v := strings.TrimSpace(tags[kind]); v != "" {
			state.ToggleTag(kind, v)
		}
	}
	return state, nil
}

func evaluate(opts *cliOptions) (cardbrowser.Catalog, *cardbrowser.FilterState, cardbrowser.Result, error) {
	cat, err := loadCatalog(opts)
	if err != nil {
		return cat, nil, cardbrowser.Result{}, err
	}
	state, err := buildState(cat, opts)
	if err != nil {
		return cat, nil, cardbrowser.Result{}, err
	}
	return cat, state, cardbrowser.Recompute(cat.Slides, state), nil
}

func runRank(w io.Writer, opts *cliOptions) error {
	cat, state, res, err := evaluate(opts)
	if err != nil {
		return err
	}
	if summary := cardbrowser.DescribeFilters(state); summary != "" {
		fmt.Fprintln(w, mutedStyle.Render(summary))
	}
	ranked := cardbrowser.Rank(cat.Slides, res)
	if len(ranked) == 0 {
		fmt.Fprintln(w, "no cards match the filters")
		return nil
	}
	if opts.limit > 0 && len(ranked) > opts.limit {
		ranked = ranked[:opts.limit]
	}
	fmt.Fprintln(w, headerStyle.Render("score  card"))
	for _, r := range ranked {
		line := fmt.Sprintf("%s  %s", scoreStyle.Render(r.Score.Text()), r.Slide.Name)
		if tags := tagSummary(r.Slide); tags != "" {
			line += "  " + mutedStyle.Render(tags)
		}
		if r.Index == res.FocusTarget {
			line = focusStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func runExport(w io.Writer, opts *cliOptions) error {
	cat, state, res, err := evaluate(opts)
	if err != nil {
		return err
	}
	path, err := filepath.Abs(opts.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	if err := cardbrowser.WriteReport(f, opts.title, cat.Slides, state, res); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %d cards to %s\n", len(res.VisibleIDs()), path)
	return nil
}

func runPresets(w io.Writer, opts *cliOptions) error {
	cat, err := loadCatalog(opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, headerStyle.Render("presets"))
	for _, p := range cat.Presets {
		fmt.Fprintf(w, "%-12s %s\n", p.Name, mutedStyle.Render(strings.Join(p.Slugs, ", ")))
	}
	fmt.Fprintln(w, headerStyle.Render("criteria"))
	for _, category := range cat.Categories() {
		var slugs []string
		for _, cr := range cat.Criteria {
			if cr.Category == category {
				slugs = append(slugs, cr.Slug)
			}
		}
		fmt.Fprintf(w, "%-12s %s\n", category, mutedStyle.Render(strings.Join(slugs, ", ")))
	}
	return nil
}

func tagSummary(slide cardbrowser.Slide) string {
	var parts []string
	for _, kind := range cardbrowser.TagKinds {
		if v := slide.Tag(kind); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " / ")
}
