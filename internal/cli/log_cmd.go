package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/cxready/internal/assessmentlog"
	"github.com/alexanderramin/cxready/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the assessment log",
	}

	cmd.AddCommand(
		newLogListCmd(a),
		newLogExportCmd(a),
	)

	return cmd
}

func newLogListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List logged assessments, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.Assessments.ReadLog(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLog(records))
			return nil
		},
	}
}

func newLogExportCmd(a *App) *cobra.Command {
	var outPath string
	var dataURI bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the assessment log as delimited text",
		Long: "Writes the whole log with one column per question. By default the\n" +
			"output goes to stdout; --data-uri wraps it in a base64 data URI.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath != "" && a.Config != nil && samePath(outPath, a.Config.LogPath) {
				return fmt.Errorf("refusing to export over the assessment log %s; choose another --out path", a.Config.LogPath)
			}

			var buf bytes.Buffer
			n, err := a.Assessments.ExportLog(cmd.Context(), &buf, a.delimiter())
			if err != nil {
				return err
			}

			payload := buf.Bytes()
			if dataURI {
				payload = []byte(assessmentlog.DataURI(assessmentlog.CSVMediaType, payload) + "\n")
			}

			if outPath == "" {
				_, err := cmd.OutOrStdout().Write(payload)
				return err
			}
			if err := os.WriteFile(outPath, payload, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d assessment(s) to %s\n", n, outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&dataURI, "data-uri", false, "Emit a data:text/csv;base64 URI")
	return cmd
}

// samePath reports whether a and b name the same file, either as cleaned
// absolute paths or, when both exist, by file identity.
func samePath(a, b string) bool {
	if b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	if errA != nil || errB != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}
