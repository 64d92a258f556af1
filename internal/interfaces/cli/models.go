package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/Alloyance-Intelligence/internal/infrastructure/artifacts"
	"github.com/turtacn/Alloyance-Intelligence/pkg/errors"
	"github.com/turtacn/Alloyance-Intelligence/pkg/types/lca"
)

// NewModelsCmd creates the models command group for inspecting the configured
// artifact store.
func NewModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Inspect the model artifact store",
	}

	cmd.AddCommand(newModelsListCmd())
	cmd.AddCommand(newModelsVerifyCmd())

	return cmd
}

func newModelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the objects in the artifact store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := cliCtx.RunContext(cmd.Context())
			defer cancel()

			store, err := artifacts.NewStore(cliCtx.Config.Artifacts, cliCtx.Logger)
			if err != nil {
				return err
			}

			objects, err := store.List(ctx)
			if err != nil {
				return err
			}

			return PrintResult(cmd, newModelListReport(objects))
		},
	}
}

func newModelsVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify stored artifacts against manifest.yaml checksums",
		Long:  "Fetch every artifact listed in manifest.yaml and compare its SHA-256 digest\nagainst the manifest entry.  Objects present in the store but not listed in\nthe manifest are reported as unlisted.  The command fails when any listed\nartifact is missing or has a digest mismatch.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := cliCtx.RunContext(cmd.Context())
			defer cancel()

			store, err := artifacts.NewStore(cliCtx.Config.Artifacts, cliCtx.Logger)
			if err != nil {
				return err
			}

			report, err := verifyArtifacts(ctx, store)
			if err != nil {
				return err
			}

			if printErr := PrintResult(cmd, report); printErr != nil {
				return printErr
			}
			if report.Failures > 0 {
				return errors.Newf(errors.ErrCodeChecksumMismatch, "artifact verification failed for %d of %d listed artifacts", report.Failures, report.Listed)
			}
			return nil
		},
	}
}

// verifyArtifacts checks every manifest entry against the stored payload and
// flags store objects the manifest does not cover.
func verifyArtifacts(ctx context.Context, store artifacts.Store) (*verifyReport, error) {
	manifest, err := artifacts.LoadManifest(ctx, store)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeArtifactNotFound) {
			return nil, errors.Wrap(err, errors.ErrCodeArtifactNotFound, "cannot verify: the store has no manifest.yaml")
		}
		return nil, err
	}

	report := &verifyReport{}
	for _, name := range manifest.Names() {
		payload, getErr := store.Get(ctx, name)
		switch {
		case getErr == nil:
			if verr := manifest.Verify(name, payload); verr != nil {
				report.add(name, "mismatch", verr.Error())
				report.Failures++
			} else {
				report.add(name, "ok", "")
			}
		case errors.IsCode(getErr, errors.ErrCodeArtifactNotFound):
			report.add(name, "missing", "listed in manifest but absent from the store")
			report.Failures++
		default:
			return nil, getErr
		}
	}
	report.Listed = len(manifest)

	objects, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, obj := range objects {
		if obj.Name == lca.ArtifactManifest {
			continue
		}
		if _, listed := manifest[obj.Name]; !listed {
			report.add(obj.Name, "unlisted", "present in the store but not covered by the manifest")
		}
	}

	return report, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Reports
// ─────────────────────────────────────────────────────────────────────────────

type modelObjectInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified,omitempty"`
}

type modelListReport struct {
	Objects []modelObjectInfo `json:"objects"`
}

func newModelListReport(objects []artifacts.ObjectInfo) *modelListReport {
	report := &modelListReport{Objects: make([]modelObjectInfo, 0, len(objects))}
	for _, obj := range objects {
		info := modelObjectInfo{Name: obj.Name, Size: obj.Size}
		if !obj.LastModified.IsZero() {
			info.Modified = obj.LastModified.UTC().Format(time.RFC3339)
		}
		report.Objects = append(report.Objects, info)
	}
	return report
}

func (r *modelListReport) TableHeaders() []string {
	return []string{"NAME", "SIZE", "MODIFIED"}
}

func (r *modelListReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Objects))
	for _, obj := range r.Objects {
		modified := obj.Modified
		if modified == "" {
			modified = "-"
		}
		rows = append(rows, []string{obj.Name, strconv.FormatInt(obj.Size, 10), modified})
	}
	return rows
}

func (r *modelListReport) String() string {
	if len(r.Objects) == 0 {
		return "artifact store is empty"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d artifact(s)\n", len(r.Objects))
	for _, obj := range r.Objects {
		fmt.Fprintf(&sb, "  %s  %d bytes\n", padRight(obj.Name, 34), obj.Size)
	}
	return sb.String()
}

type verifyEntry struct {
	Artifact string `json:"artifact"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
}

type verifyReport struct {
	Artifacts []verifyEntry `json:"artifacts"`
	Listed    int           `json:"listed"`
	Failures  int           `json:"failures"`
}

func (r *verifyReport) add(name, status, detail string) {
	r.Artifacts = append(r.Artifacts, verifyEntry{Artifact: name, Status: status, Detail: detail})
}

func (r *verifyReport) TableHeaders() []string {
	return []string{"ARTIFACT", "STATUS", "DETAIL"}
}

func (r *verifyReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Artifacts))
	for _, e := range r.Artifacts {
		rows = append(rows, []string{e.Artifact, e.Status, e.Detail})
	}
	return rows
}

func (r *verifyReport) String() string {
	var sb strings.Builder
	for _, e := range r.Artifacts {
		line := fmt.Sprintf("%s  %s", padRight(e.Artifact, 34), e.Status)
		if e.Detail != "" {
			line += " (" + e.Detail + ")"
		}
		sb.WriteString(line + "\n")
	}
	if r.Failures == 0 {
		fmt.Fprintf(&sb, "verified %d artifact(s), all checksums match\n", r.Listed)
	} else {
		fmt.Fprintf(&sb, "verified %d artifact(s), %d FAILED\n", r.Listed, r.Failures)
	}
	return sb.String()
}

//Personal.AI order the ending
