package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/sortbin/internal/cli"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/statistics"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show classification statistics",
		Long: `Show how classifications are distributed across materials and how many
were made per day (week and month) or per month (all time).

Examples:
  sortbin stats                  # All time
  sortbin stats --timeframe week # Last 7 days`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}

	cmd.Flags().StringP("timeframe", "t", string(model.DefaultTimeframe), "timeframe (week, month, all)")
	addOutputFlag(cmd)

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetString("timeframe")
	tf, err := model.ParseTimeframe(raw)
	if err != nil {
		return err
	}

	gw, err := newGateway()
	if err != nil {
		return err
	}

	agg := statistics.NewAggregator()
	agg.SetTimeframe(tf)
	snapshot, err := agg.Fetch(ctx, gw)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != cli.FormatTable {
		return cli.Encode(out, format, snapshot)
	}

	chart, _ := agg.Chart()
	printStats(out, chart)
	return nil
}

func printStats(w io.Writer, chart statistics.ChartData) {
	fmt.Fprintln(w, cli.FormatTitle(cli.ChartIcon+" Classification Statistics: "+chart.Label))

	if chart.Empty {
		fmt.Fprintln(w, cli.StyleInfo(statistics.MsgEmpty))
		return
	}

	fmt.Fprintf(w, "Total classifications: %d\n\n", chart.Total)

	rows := make([][]string, 0, len(chart.Slices))
	for _, bar := range viewmodel.DistributionBars(chart, 20) {
		rows = append(rows, []string{
			bar.Icon + " " + cli.StyleMaterial(bar.DisplayName),
			fmt.Sprintf("%d", bar.Count),
			bar.PercentText,
			bar.Bar,
		})
	}
	fmt.Fprintln(w, cli.RenderTable([]string{"Material", "Count", "Share", ""}, rows))

	if len(chart.Trend) == 0 {
		return
	}

	title := "Daily trend"
	if !chart.Timeframe.Daily() {
		title = "Monthly trend"
	}
	first, last := chart.Trend[0], chart.Trend[len(chart.Trend)-1]
	fmt.Fprintln(w, cli.BoldStyle.Render(title))
	fmt.Fprintln(w, cli.StyleSuccess(viewmodel.Sparkline(chart.Trend)))
	fmt.Fprintln(w, cli.SubtleStyle.Render(fmt.Sprintf("%s → %s (peak %d)", first.Tick, last.Tick, chart.MaxTrend)))
}
