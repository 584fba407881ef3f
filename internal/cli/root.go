package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/cxready/internal/config"
	"github.com/alexanderramin/cxready/internal/service"
	"github.com/spf13/cobra"
)

// Bootstrapper loads configuration from configPath and builds the
// assessment service. The returned close func releases the log backend.
type Bootstrapper func(ctx context.Context, configPath string) (*config.Config, service.AssessmentService, func() error, error)

// App holds what CLI commands need. Assessments and Config may be set
// directly; otherwise Bootstrap fills them before the first command runs.
type App struct {
	Assessments service.AssessmentService
	Config      *config.Config
	Bootstrap   Bootstrapper

	// IsInteractive reports whether stdin is a terminal that can drive forms.
	IsInteractive func() bool

	closeFn func() error
}

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "cxready.yaml"

// NewRootCmd creates the top-level "cxready" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "cxready",
		Short: "CX readiness self-assessment",
		Long: "Answer the CX checklist, get a weighted readiness score with follow-up\n" +
			"checks for weak areas, and keep every completed assessment in a log.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsBootstrap(cmd) {
				return nil
			}
			return app.ensureReady(cmd.Context(), configPath)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Config file (YAML); missing file means defaults")

	root.AddCommand(
		newAssessCmd(app),
		newCatalogCmd(app),
		newLogCmd(app),
	)

	return root
}

// skipsBootstrap reports whether cmd is a cobra built-in that needs no
// checklist or log.
func skipsBootstrap(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion":
			return true
		}
	}
	return false
}

func (a *App) ensureReady(ctx context.Context, configPath string) error {
	if a.Assessments != nil {
		if a.Config == nil {
			a.Config = config.DefaultConfig()
		}
		return nil
	}
	if a.Bootstrap == nil {
		return errors.New("assessment service is not configured")
	}
	cfg, svc, closeFn, err := a.Bootstrap(ctx, configPath)
	if err != nil {
		return err
	}
	a.Config, a.Assessments, a.closeFn = cfg, svc, closeFn
	return nil
}

// Close releases resources opened by Bootstrap. It is safe to call twice.
func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	fn := a.closeFn
	a.closeFn = nil
	if err := fn(); err != nil {
		return fmt.Errorf("closing assessment log: %w", err)
	}
	return nil
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) delimiter() rune {
	if a.Config == nil {
		return ';'
	}
	if r, err := a.Config.DelimiterRune(); err == nil {
		return r
	}
	return ';'
}
