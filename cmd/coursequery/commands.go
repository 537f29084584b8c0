package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/coursequery/queries"
	"github.com/kbukum/coursequery/version"
)

func newListCommand(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the named queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, d := range queries.All() {
				if category != "" && string(d.Category) != category {
					continue
				}
				rows = append(rows, []string{d.Name, string(d.Category), d.Description})
			}
			return writeTable(a.stdout, a.cfg.Output.Format, []string{"Name", "Category", "Description"}, rows)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list queries in this category")
	return cmd
}

func newRunCommand(a *app) *cobra.Command {
	var (
		all    bool
		params queries.Params
	)
	cmd := &cobra.Command{
		Use:   "run [name...]",
		Short: "Run one or more named queries",
		Long: `Runs the named queries in order and writes each result.

Query parameters come from the "query" config section and may be
overridden with flags. Each query checks only the parameters it reads,
so an out-of-range --page does not fail level-counts. An evaluation
error stops the run.
`,
		Annotations: needsCatalog,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				args = nil
				for _, d := range queries.All() {
					args = append(args, d.Name)
				}
			}
			if len(args) == 0 {
				return fmt.Errorf("no query named; see %q", "coursequery list")
			}

			p := a.cfg.Query
			flags := cmd.Flags()
			overrideInt(flags.Changed("author"), &p.AuthorID, params.AuthorID)
			overrideInt(flags.Changed("course"), &p.CourseID, params.CourseID)
			overrideInt(flags.Changed("level"), &p.Level, params.Level)
			overrideInt(flags.Changed("page"), &p.Page, params.Page)
			overrideInt(flags.Changed("page-size"), &p.PageSize, params.PageSize)
			if flags.Changed("price-above") {
				p.PriceAbove = params.PriceAbove
			}
			if flags.Changed("price-floor") {
				p.PriceFloor = params.PriceFloor
			}

			defs := make([]queries.Definition, 0, len(args))
			for _, name := range args {
				def, err := queries.Lookup(name)
				if err != nil {
					return err
				}
				defs = append(defs, def)
			}

			for i, def := range defs {
				if i > 0 && a.cfg.Output.Format != FormatYAML {
					fmt.Fprintln(a.stdout)
				}
				res, err := def.Execute(cmd.Context(), a.ev, a.cat, p)
				if err != nil {
					return fmt.Errorf("%s: %w", def.Name, err)
				}
				if err := writeResult(a.stdout, a.cfg, def.Name, res); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&all, "all", false, "run every named query")
	flags.IntVar(&params.AuthorID, "author", 0, "author id")
	flags.IntVar(&params.CourseID, "course", 0, "course id")
	flags.IntVar(&params.Level, "level", 0, "course level")
	flags.IntVar(&params.Page, "page", 0, "page number, starting at 1")
	flags.IntVar(&params.PageSize, "page-size", 0, "page size")
	flags.Float64Var(&params.PriceAbove, "price-above", 0, "price threshold for easiest-course-above")
	flags.Float64Var(&params.PriceFloor, "price-floor", 0, "price floor for all-priced-above")
	return cmd
}

func overrideInt(changed bool, dst *int, v int) {
	if changed {
		*dst = v
	}
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "stats",
		Short:       "Show catalog statistics",
		Args:        cobra.NoArgs,
		Annotations: needsCatalog,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.cat.Stats()
			rows := [][]string{
				{"source", s.Source},
				{"authors", strconv.Itoa(s.Authors)},
				{"courses", strconv.Itoa(s.Courses)},
				{"tags", strconv.Itoa(s.Tags)},
				{"unresolved", strconv.Itoa(s.Unresolved)},
				{"digest", s.Digest},
			}
			return writeTable(a.stdout, a.cfg.Output.Format, []string{"Stat", "Value"}, rows)
		},
	}
}

func newDatasetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Work with catalog datasets",
	}
	var out string
	export := &cobra.Command{
		Use:         "export",
		Short:       "Write the catalog as a YAML dataset",
		Long:        "Writes the loaded catalog in the format --dataset reads. With no --dataset this exports the sample catalog.",
		Args:        cobra.NoArgs,
		Annotations: needsCatalog,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" || out == "-" {
				return a.cat.WriteYAML(a.stdout)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := a.cat.WriteYAML(f); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	export.Flags().StringVarP(&out, "file", "f", "", "file to write, default stdout")
	cmd.AddCommand(export)
	return cmd
}

func newVersionCommand(a *app) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if short {
				_, err := fmt.Fprintln(a.stdout, info.Short())
				return err
			}
			_, err := fmt.Fprintln(a.stdout, info.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version")
	return cmd
}
