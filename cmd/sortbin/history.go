package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/sortbin/internal/cli"
	"github.com/Veraticus/sortbin/internal/history"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review and manage past classifications",
		Long: `Review and manage the classification history kept by the service.

Deleting an entry or clearing the history asks for confirmation first.`,
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyDeleteCmd())
	cmd.AddCommand(historyClearCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List past classifications, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}

	cmd.Flags().IntP("limit", "n", 0, "show at most this many entries (0 = all)")
	addOutputFlag(cmd)

	return cmd
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	gw, err := newGateway()
	if err != nil {
		return err
	}

	mgr := history.NewManager()
	if err := mgr.Refresh(ctx, gw); err != nil {
		return err
	}

	entries := mgr.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	out := cmd.OutOrStdout()
	if format != cli.FormatTable {
		return cli.Encode(out, format, entries)
	}

	if mgr.Empty() {
		fmt.Fprintln(out, cli.StyleInfo(history.MsgEmpty))
		return nil
	}

	printHistoryTable(out, entries)
	if len(entries) < mgr.Len() {
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("Showing %d of %d entries", len(entries), mgr.Len())))
	}
	return nil
}

func printHistoryTable(w io.Writer, entries []model.HistoryEntry) {
	fmt.Fprintln(w, cli.FormatTitle(cli.HistoryIcon+" Classification History"))

	rows := make([][]string, 0, len(entries))
	for _, r := range viewmodel.NewHistoryRows(entries) {
		rows = append(rows, []string{
			r.ID.String(),
			r.Icon + " " + cli.StyleMaterial(r.DisplayName),
			r.ImageName,
			r.ConfidenceText,
			r.CreatedText,
		})
	}
	fmt.Fprintln(w, cli.RenderTable([]string{"ID", "Material", "Image", "Confidence", "Date"}, rows))
}

func historyDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryMutation(cmd, func(mgr *history.Manager) error {
				return mgr.RequestDelete(model.EntryID(args[0]))
			})
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

func historyClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the entire history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistoryMutation(cmd, func(mgr *history.Manager) error {
				return mgr.RequestClearAll()
			})
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Skip confirmation prompt")

	return cmd
}

// runHistoryMutation requests a destructive action, asks for confirmation
// unless --force is set, then applies it and reloads the list.
func runHistoryMutation(cmd *cobra.Command, request func(*history.Manager) error) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	force, _ := cmd.Flags().GetBool("force")

	gw, err := newGateway()
	if err != nil {
		return err
	}

	mgr := history.NewManager()
	if err := request(mgr); err != nil {
		return err
	}
	confirmation := mgr.Confirmation()

	if !force {
		in := cli.NewNonBlockingReader(cmd.InOrStdin())
		ok, err := cli.Confirm(ctx, in, out, confirmation.Prompt())
		if err != nil {
			mgr.Cancel()
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			mgr.Cancel()
			fmt.Fprintln(out, "Operation canceled.")
			return nil
		}
	}

	if err := mgr.ConfirmAndApply(ctx, gw); err != nil {
		return err
	}

	slog.Debug("History updated", "action", confirmation.Kind, "remaining", mgr.Len())
	fmt.Fprintln(out, cli.FormatSuccess(successMessage(confirmation, mgr)))
	return nil
}

func successMessage(c history.Confirmation, mgr *history.Manager) string {
	if c.Kind == history.KindClearAll {
		return "History cleared"
	}
	return fmt.Sprintf("Deleted entry %s (%d remaining)", c.EntryID, mgr.Len())
}
