package main

import (
	"encoding/json"
	"fmt"
	"os"

	"alertdash/internal/dashboard"
	"alertdash/internal/render"
	"alertdash/internal/view"

	"github.com/spf13/cobra"
)

type showOptions struct {
	view                string
	platforms           []string
	probe               string
	dateFrom            string
	dateTo              string
	groupedWithBugsOnly bool
	sort                string
	desc                bool
	json                bool
}

func newShowCmd(root *rootOptions) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Load the alerts once and print a view in the terminal",
		Example: `  alertdash show --view grouped --sort count
  alertdash show --view without-bugs --platforms Windows,Linux --probe "gc memory"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.state()
			if err != nil {
				return err
			}

			cfg, logger, err := root.setup(os.Stderr)
			if err != nil {
				return err
			}

			snap := dashboard.NewRedashLoader(cfg.Redash, nil, logger).Load(cmd.Context())
			out := cmd.OutOrStdout()

			switch snap.Status {
			case dashboard.StatusFailed:
				if err := render.Text(out, render.ErrorPage("", snap.Err)); err != nil {
					return err
				}
				return fmt.Errorf("load failed: %w", snap.Err)
			case dashboard.StatusEmpty:
				return render.Text(out, render.EmptyPage(""))
			}

			res := view.Compute(snap.Store.Alerts(), st)
			if opts.json {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(render.NewDocument(res))
			}

			page := render.Build(render.Input{
				State:  st,
				Result: res,
				Store:  snap.Store,
				Links:  render.NewLinks(cfg.Links),
			})
			return render.Text(out, page)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.view, "view", string(view.ModeWithBugs), "view mode: with-bugs, without-bugs or grouped")
	f.StringSliceVar(&opts.platforms, "platforms", nil, "platforms to keep (comma separated or repeated)")
	f.StringVar(&opts.probe, "probe", "", "probe search terms, any may match")
	f.StringVar(&opts.dateFrom, "date-from", "", "earliest push date (YYYY-MM-DD)")
	f.StringVar(&opts.dateTo, "date-to", "", "latest push date (YYYY-MM-DD)")
	f.BoolVar(&opts.groupedWithBugsOnly, "grouped-with-bugs-only", false, "in the grouped view keep only groups with a bug")
	f.StringVar(&opts.sort, "sort", "", "sort column (alertId, bug, probe, ... or summaryId, count, mostRecent, detectionDate when grouped)")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.BoolVar(&opts.json, "json", false, "print the view as JSON")

	return cmd
}

// state builds the view state from the flags.
func (o *showOptions) state() (view.State, error) {
	mode, ok := view.ParseMode(o.view)
	if !ok {
		return view.State{}, fmt.Errorf("unknown view %q", o.view)
	}

	st := view.Default().
		WithMode(mode).
		WithPlatforms(o.platforms).
		WithProbeSearch(o.probe).
		WithDateFrom(o.dateFrom).
		WithDateTo(o.dateTo)
	if o.groupedWithBugsOnly {
		st = st.ToggleGroupedWithBugsOnly()
	}

	if o.sort == "" {
		return st, nil
	}
	dir := view.Asc
	if o.desc {
		dir = view.Desc
	}
	if mode == view.ModeGrouped {
		c, ok := view.ParseGroupColumn(o.sort)
		if !ok {
			return view.State{}, fmt.Errorf("unknown group sort column %q", o.sort)
		}
		st.GroupSort = view.GroupSort{Column: c, Direction: dir}
		return st, nil
	}

	c, ok := view.ParseColumn(o.sort)
	if !ok {
		return view.State{}, fmt.Errorf("unknown sort column %q", o.sort)
	}
	st.Sort = view.Sort{Column: c, Direction: dir}
	return st, nil
}
