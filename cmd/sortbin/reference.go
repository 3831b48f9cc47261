package main

import (
	"fmt"
	"io"

	"github.com/Veraticus/sortbin/internal/cli"
	"github.com/Veraticus/sortbin/internal/model"
	"github.com/Veraticus/sortbin/internal/reference"
	"github.com/Veraticus/sortbin/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func referenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reference [material]",
		Short: "Show environmental impact information",
		Long: `Show decomposition time, recycling rate and CO2 cost of each material.

With a material name, show its details and recycling tips.

Examples:
  sortbin reference          # All materials
  sortbin reference plastic  # Details for plastic`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReference,
	}

	addOutputFlag(cmd)

	return cmd
}

func runReference(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	gw, err := newGateway()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		material, err := gw.FetchReferenceMaterial(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", args[0], err)
		}
		if format != cli.FormatTable {
			return cli.Encode(out, format, material)
		}
		printMaterial(out, material)
		return nil
	}

	catalog := reference.NewCatalog()
	if err := catalog.Load(ctx, gw); err != nil {
		return err
	}

	materials := catalog.Materials()
	if format != cli.FormatTable {
		return cli.Encode(out, format, materials)
	}

	fmt.Fprintln(out, cli.FormatTitle(cli.LeafIcon+" Environmental Impact Information"))
	rows := make([][]string, 0, len(materials))
	for _, c := range viewmodel.NewReferenceCards(materials, "") {
		rows = append(rows, []string{
			c.Icon + " " + cli.StyleMaterial(c.DisplayName),
			c.DecompositionTime,
			c.RecyclingRateText,
			c.CO2Text,
		})
	}
	fmt.Fprintln(out, cli.RenderTable([]string{"Material", "Decomposition", "Recycling", "CO2"}, rows))
	fmt.Fprintln(out, cli.SubtleStyle.Render("Run 'sortbin reference <material>' for recycling tips."))
	return nil
}

func printMaterial(w io.Writer, m model.ReferenceMaterial) {
	card := viewmodel.NewReferenceCards([]model.ReferenceMaterial{m}, m.ID)[0]

	body := fmt.Sprintf("Decomposition: %s\nRecycling rate: %s\nCO2: %s\n\n%s\n%s\n\n%s\n%s",
		card.DecompositionTime,
		card.RecyclingRateText,
		card.CO2Text,
		cli.BoldStyle.Render("Did You Know?"),
		card.FunFact,
		cli.BoldStyle.Render("Recycling Tips"),
		card.Tips,
	)
	fmt.Fprintln(w, cli.RenderBox(card.Icon+" "+card.DisplayName+" - Detailed Information", body))
}
