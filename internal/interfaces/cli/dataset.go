package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/Alloyance-Intelligence/internal/application/dataset"
)

// NewDatasetCmd creates the dataset command group.
func NewDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Work with the synthetic reference dataset",
	}

	cmd.AddCommand(newDatasetGenerateCmd())

	return cmd
}

func newDatasetGenerateCmd() *cobra.Command {
	var (
		rows        int
		seed        int64
		missingRate float64
		output      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the synthetic LCA reference dataset as CSV",
		Long:  "Synthesise a seeded dataset over the full canonical schema, with every\nderived column computed from the same formulas the training pipeline uses.\nGeneration is deterministic per seed.",
		Example: "  alloyance dataset generate -n 25000 --seed 42 -o lca_dataset.csv\n" +
			"  alloyance dataset generate -n 1000 --missing-rate 0.15",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			cfg := cliCtx.Config.Dataset
			if cmd.Flags().Changed("rows") {
				cfg.Rows = rows
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			if cmd.Flags().Changed("missing-rate") {
				cfg.MissingRate = missingRate
			}
			path := cfg.Output
			if cmd.Flags().Changed("output") {
				path = output
			}

			gen, err := dataset.NewGenerator(cfg, cliCtx.Logger, nil)
			if err != nil {
				return err
			}

			ctx, cancel := cliCtx.RunContext(cmd.Context())
			defer cancel()

			n, err := gen.WriteFile(ctx, path)
			if err != nil {
				return err
			}

			PrintSuccess(cmd, fmt.Sprintf("wrote %d rows to %s (seed %d)", n, path, cfg.Seed))
			return nil
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", 0, "number of rows to generate (default: config dataset.rows)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default: config dataset.seed)")
	cmd.Flags().Float64Var(&missingRate, "missing-rate", 0, "fraction of non-indicator cells to blank, in [0,1)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (default: config dataset.output)")

	return cmd
}

//Personal.AI order the ending
