package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/grounder-api/internal/domain/competition"
	"github.com/riskibarqy/grounder-api/internal/domain/match"
	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/platform/logging"
	"github.com/riskibarqy/grounder-api/internal/reconcile"
)

const (
	sortName    = "name"
	sortKickoff = "kickoff"
	sortNone    = "none"
)

type flags struct {
	inputs  []string
	country string
	kind    string
	text    string
	limit   int
	sort    string
	pretty  bool
	verbose bool
}

// input is one --input tag=path pair, in priority order.
type input struct {
	tag  source.Tag
	path string
}

type report[T any] struct {
	Count    int               `json:"count"`
	Items    []T               `json:"items"`
	Sources  map[string]int    `json:"sources"`
	Fetched  map[string]int    `json:"sourcesFetched"`
	Degraded map[string]string `json:"degraded,omitempty"`
}

func newRootCmd(out io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "reconcile",
		Short: "Merge football records from several sources",
		Long: `reconcile reads one JSON array per source and prints the merged list.

Inputs are given in priority order: when two sources report the same record
the earlier input wins. A file that cannot be read or decoded is reported
under "degraded" and the remaining inputs are still merged.`,
		SilenceUsage: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringArrayVarP(&f.inputs, "input", "i", nil, "source=path.json, repeatable, highest priority first")
	pf.StringVar(&f.country, "country", "", "keep records whose country contains this text")
	pf.StringVar(&f.kind, "type", "", "keep records of this type (LEAGUE, CUP)")
	pf.StringVarP(&f.text, "q", "q", "", "keep records whose name contains this text")
	pf.IntVar(&f.limit, "limit", 0, "maximum number of records, 0 for all")
	pf.StringVar(&f.sort, "sort", "", "name, kickoff or none (default depends on the record kind)")
	pf.BoolVar(&f.pretty, "pretty", false, "indent the JSON output")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log dropped duplicates to stderr")
	_ = root.MarkPersistentFlagRequired("input")

	root.AddCommand(newMatchesCmd(f), newCompetitionsCmd(f), newLeaguesCmd(f))
	return root
}

func newMatchesCmd(f *flags) *cobra.Command {
	var fieldMerge bool
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Merge fixtures keyed on kickoff day and team names",
		RunE: func(cmd *cobra.Command, _ []string) error {
			compare, err := matchSort(f.sort)
			if err != nil {
				return err
			}
			rec, err := reconcile.Matches(fieldMerge,
				reconcile.WithSort[match.Match](compare),
				reconcile.WithLogger[match.Match](f.logger()),
			)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), f, rec, func(m match.Match, tag source.Tag) match.Match {
				if m.Source == "" {
					m.Source = tag
				}
				return m
			})
		},
	}
	cmd.Flags().BoolVar(&fieldMerge, "field-merge", false, "fill missing fields of the kept match from its duplicates")
	return cmd
}

func newCompetitionsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "competitions",
		Short: "Merge competitions by name containment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			compare, err := competitionSort(f.sort)
			if err != nil {
				return err
			}
			rec, err := reconcile.Competitions(
				reconcile.WithSort[competition.Competition](compare),
				reconcile.WithLogger[competition.Competition](f.logger()),
			)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), f, rec, tagCompetition)
		},
	}
}

func newLeaguesCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "Merge leagues keyed on country and exact name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			compare, err := competitionSort(f.sort)
			if err != nil {
				return err
			}
			rec, err := reconcile.Leagues(
				reconcile.WithSort[competition.Competition](compare),
				reconcile.WithLogger[competition.Competition](f.logger()),
			)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), f, rec, tagCompetition)
		},
	}
}

func tagCompetition(c competition.Competition, tag source.Tag) competition.Competition {
	if c.Source == "" {
		c.Source = tag
	}
	return c
}

func (f *flags) logger() *logging.Logger {
	if !f.verbose {
		return logging.NewNop()
	}
	return logging.NewJSON(logging.LevelDebug)
}

func (f *flags) filters() reconcile.Filters {
	return reconcile.Filters{Country: f.country, Type: f.kind, Text: f.text, Limit: f.limit}
}

func run[T reconcile.Record](
	ctx context.Context,
	out io.Writer,
	f *flags,
	rec *reconcile.Reconciler[T],
	tagged func(T, source.Tag) T,
) error {
	inputs, err := parseInputs(f.inputs)
	if err != nil {
		return err
	}
	if f.limit < 0 {
		return crerr.New("--limit must be >= 0")
	}

	batches := make([]reconcile.Batch[T], 0, len(inputs))
	for _, in := range inputs {
		records, err := readRecords[T](in.path)
		for i := range records {
			records[i] = tagged(records[i], in.tag)
		}
		batches = append(batches, reconcile.Settled(in.tag, records, err))
	}

	res := rec.Run(ctx, batches, f.filters())
	items := res.Records
	if items == nil {
		items = []T{}
	}
	return writeJSON(out, report[T]{
		Count:    len(items),
		Items:    items,
		Sources:  res.Counts(),
		Fetched:  res.FetchedCounts(),
		Degraded: res.Degraded(),
	}, f.pretty)
}

func parseInputs(raw []string) ([]input, error) {
	out := make([]input, 0, len(raw))
	seen := make(map[source.Tag]bool, len(raw))
	for _, item := range raw {
		name, path, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return nil, crerr.Newf("invalid --input %q, expected source=path.json", item)
		}
		tag, ok := source.Parse(name)
		if !ok {
			return nil, crerr.Newf("unknown source %q in --input", name)
		}
		if seen[tag] {
			return nil, crerr.Newf("source %s given twice", tag)
		}
		seen[tag] = true
		out = append(out, input{tag: tag, path: strings.TrimSpace(path)})
	}
	if len(out) == 0 {
		return nil, crerr.New("at least one --input is required")
	}
	return out, nil
}

func readRecords[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read %s", path)
	}
	var records []T
	if err := sonic.Unmarshal(raw, &records); err != nil {
		return nil, crerr.Wrapf(err, "decode %s", path)
	}
	return records, nil
}

func writeJSON(out io.Writer, v any, pretty bool) error {
	var (
		raw []byte
		err error
	)
	if pretty {
		raw, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
	} else {
		raw, err = sonic.Marshal(v)
	}
	if err != nil {
		return crerr.Wrap(err, "encode result")
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}

func matchSort(raw string) (reconcile.CompareFunc[match.Match], error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", sortKickoff:
		return reconcile.ByKickoff, nil
	case sortName:
		return reconcile.ByName[match.Match], nil
	case sortNone:
		return nil, nil
	default:
		return nil, crerr.Newf("invalid --sort %q", raw)
	}
}

func competitionSort(raw string) (reconcile.CompareFunc[competition.Competition], error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", sortName:
		return reconcile.ByName[competition.Competition], nil
	case sortNone:
		return nil, nil
	case sortKickoff:
		return nil, crerr.New("--sort kickoff only applies to matches")
	default:
		return nil, crerr.Newf("invalid --sort %q", raw)
	}
}
