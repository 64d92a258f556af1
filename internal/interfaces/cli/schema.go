package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/Alloyance-Intelligence/internal/domain/schema"
)

// NewSchemaCmd creates the schema command group for inspecting the built-in
// canonical field registry.
func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Inspect the canonical LCA field schema",
	}

	cmd.AddCommand(newSchemaShowCmd())
	cmd.AddCommand(newSchemaVocabCmd())

	return cmd
}

func newSchemaShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List every schema field with its kind and vocabulary size",
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, newSchemaReport(schema.Canonical()))
		},
	}
}

func newSchemaVocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab <field>",
		Short: "Print the sorted vocabulary of a categorical field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			labels, err := schema.Canonical().Vocabulary(name)
			if err != nil {
				return err
			}
			return PrintResult(cmd, &vocabReport{Field: name, Labels: labels})
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Reports
// ─────────────────────────────────────────────────────────────────────────────

type schemaFieldInfo struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	VocabSize int    `json:"vocab_size,omitempty"`
	KPI       bool   `json:"kpi,omitempty"`
}

type schemaReport struct {
	Fields []schemaFieldInfo `json:"fields"`
}

func newSchemaReport(reg *schema.Registry) *schemaReport {
	fields := reg.Fields()
	report := &schemaReport{Fields: make([]schemaFieldInfo, 0, len(fields))}
	for i, f := range fields {
		report.Fields = append(report.Fields, schemaFieldInfo{
			Index:     i,
			Name:      f.Name,
			Kind:      f.Kind.String(),
			VocabSize: f.VocabSize(),
			KPI:       f.IsKPI(),
		})
	}
	return report
}

func (r *schemaReport) TableHeaders() []string {
	return []string{"#", "FIELD", "KIND", "VOCAB", "KPI"}
}

func (r *schemaReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		vocab := "-"
		if f.VocabSize > 0 {
			vocab = strconv.Itoa(f.VocabSize)
		}
		kpi := ""
		if f.KPI {
			kpi = "yes"
		}
		rows = append(rows, []string{strconv.Itoa(f.Index), f.Name, f.Kind, vocab, kpi})
	}
	return rows
}

func (r *schemaReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d schema fields\n", len(r.Fields))
	for _, f := range r.Fields {
		suffix := ""
		if f.VocabSize > 0 {
			suffix = fmt.Sprintf(" (%d labels)", f.VocabSize)
		}
		if f.KPI {
			suffix += " [KPI]"
		}
		fmt.Fprintf(&sb, "  %s  %s%s\n", padRight(f.Name, 38), f.Kind, suffix)
	}
	return sb.String()
}

type vocabReport struct {
	Field  string   `json:"field"`
	Labels []string `json:"labels"`
}

func (r *vocabReport) TableHeaders() []string {
	return []string{"LABEL"}
}

func (r *vocabReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Labels))
	for _, l := range r.Labels {
		rows = append(rows, []string{l})
	}
	return rows
}

func (r *vocabReport) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d labels)\n", r.Field, len(r.Labels))
	for _, l := range r.Labels {
		sb.WriteString("  " + l + "\n")
	}
	return sb.String()
}

//Personal.AI order the ending
