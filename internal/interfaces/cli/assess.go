package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/Alloyance-Intelligence/internal/application/assessment"
	"github.com/turtacn/Alloyance-Intelligence/internal/domain/record"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
)

// NewAssessCmd creates the assess command: run the full pipeline — validate,
// impute, predict — on a single input record.
func NewAssessCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run the full assessment pipeline on one record",
		Long:  "Read a sparse LCA record from a JSON file, complete its missing fields with\nthe imputer, and predict the five circularity indicators.  Caller-supplied\nindicator values are ignored; predictions always come from the models.",
		Example: "  alloyance assess -i record.json\n" +
			"  cat record.json | alloyance assess -i - -o json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			payload, err := readPayload(cmd, input)
			if err != nil {
				return err
			}

			ctx, cancel := cliCtx.RunContext(cmd.Context())
			defer cancel()

			eng, err := cliCtx.Engine(ctx)
			if err != nil {
				return err
			}

			outcome, err := eng.Run(ctx, payload)
			if err != nil {
				return err
			}

			return PrintResult(cmd, &assessReport{outcome})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input record JSON file (\"-\" reads stdin) [REQUIRED]")
	cmd.MarkFlagRequired("input")

	return cmd
}

// NewAutofillCmd creates the autofill command: impute missing fields without
// predicting indicators.
func NewAutofillCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "autofill",
		Short: "Complete a record's missing fields without predicting indicators",
		Long:  "Read a sparse LCA record from a JSON file and fill its missing fields with\nthe imputer.  Indicator columns supplied by the caller are kept as given;\nno prediction is performed.",
		Example: "  alloyance autofill -i record.json\n" +
			"  alloyance autofill -i record.json -o json",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			payload, err := readPayload(cmd, input)
			if err != nil {
				return err
			}

			ctx, cancel := cliCtx.RunContext(cmd.Context())
			defer cancel()

			eng, err := cliCtx.Engine(ctx)
			if err != nil {
				return err
			}

			outcome, err := eng.Autofill(ctx, payload)
			if err != nil {
				return err
			}

			return PrintResult(cmd, &fillReport{outcome})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input record JSON file (\"-\" reads stdin) [REQUIRED]")
	cmd.MarkFlagRequired("input")

	return cmd
}

// readPayload reads an input record as a JSON object.  "-" reads stdin.
func readPayload(cmd *cobra.Command, path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidParam, fmt.Sprintf("cli: cannot read input %q", path))
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidParam, fmt.Sprintf("cli: input %q is not a JSON object", path))
	}
	return payload, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Reports
// ─────────────────────────────────────────────────────────────────────────────

// assessReport shapes an assessment outcome for the three output formats.
type assessReport struct {
	*assessment.Outcome
}

func (r *assessReport) TableHeaders() []string {
	return []string{"KPI", "VALUE", "STATUS"}
}

func (r *assessReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.KPIs))
	for _, k := range r.KPIs {
		rows = append(rows, []string{k.KPI, formatKPIValue(k), kpiStatus(k)})
	}
	return rows
}

func (r *assessReport) String() string {
	var sb strings.Builder
	sb.WriteString("Circularity Assessment\n")
	sb.WriteString("======================\n")
	fmt.Fprintf(&sb, "Run:     %s\n", r.RunID)
	fmt.Fprintf(&sb, "Elapsed: %s\n\n", r.Elapsed)
	for _, k := range r.KPIs {
		fmt.Fprintf(&sb, "%s  %s\n", padRight(k.KPI+":", 31), formatKPIValue(k))
	}
	if missing := r.MissingKPIs(); len(missing) > 0 {
		fmt.Fprintf(&sb, "\n%d indicator(s) unavailable: %s\n", len(missing), strings.Join(missing, ", "))
	}
	return sb.String()
}

func formatKPIValue(k assessment.KPIOutcome) string {
	if k.Missing {
		return "-"
	}
	return strconv.FormatFloat(k.Value, 'f', 4, 64)
}

func kpiStatus(k assessment.KPIOutcome) string {
	if !k.Missing {
		return "ok"
	}
	if k.Err != nil {
		return "missing: " + k.Err.Error()
	}
	return "missing"
}

// fillReport shapes an autofill outcome for the three output formats.
type fillReport struct {
	*assessment.FillOutcome
}

func (r *fillReport) TableHeaders() []string {
	return []string{"FIELD", "VALUE"}
}

func (r *fillReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Filled))
	for _, name := range r.Filled {
		rows = append(rows, []string{name, formatCell(r.Record, name)})
	}
	return rows
}

func (r *fillReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Filled %d field(s) in %s\n", len(r.Filled), r.Elapsed)
	for _, name := range r.Filled {
		fmt.Fprintf(&sb, "  %s  %s\n", padRight(name+":", 35), formatCell(r.Record, name))
	}
	return sb.String()
}

// formatCell renders one record cell for human-readable output.
func formatCell(rec *record.Record, name string) string {
	v, ok := rec.Get(name)
	if !ok || v.IsMissing() {
		return "-"
	}
	return v.String()
}

//Personal.AI order the ending
