package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/cxready/internal/assessmentlog"
	"github.com/alexanderramin/cxready/internal/config"
	"github.com/alexanderramin/cxready/internal/service"
	"github.com/alexanderramin/cxready/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_BootstrapUsesConfigFlag(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	var gotPath string
	closed := 0
	app := &App{
		Bootstrap: func(ctx context.Context, configPath string) (*config.Config, service.AssessmentService, func() error, error) {
			gotPath = configPath
			log := assessmentlog.NewFileLog(filepath.Join(t.TempDir(), "log.csv"), cat.IDs())
			svc, err := service.NewAssessmentService(cat, log, 0)
			if err != nil {
				return nil, nil, nil, err
			}
			return config.DefaultConfig(), svc, func() error { closed++; return nil }, nil
		},
	}

	out, err := executeCmd(t, app, "--config", "custom.yaml", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "CHECKLIST")
	assert.Equal(t, "custom.yaml", gotPath)
	assert.Equal(t, 1, closed)

	require.NoError(t, app.Close())
	assert.Equal(t, 1, closed)
}

func TestRootCmd_BootstrapError(t *testing.T) {
	boom := errors.New("checklist missing")
	app := &App{
		Bootstrap: func(context.Context, string) (*config.Config, service.AssessmentService, func() error, error) {
			return nil, nil, nil, boom
		},
	}

	_, err := executeCmd(t, app, "log", "list")
	assert.ErrorIs(t, err, boom)
}

func TestRootCmd_Unconfigured(t *testing.T) {
	_, err := executeCmd(t, &App{}, "catalog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRootCmd_HelpSkipsBootstrap(t *testing.T) {
	called := false
	app := &App{
		Bootstrap: func(context.Context, string) (*config.Config, service.AssessmentService, func() error, error) {
			called = true
			return nil, nil, nil, errors.New("should not bootstrap")
		},
	}

	out, err := executeCmd(t, app, "help", "assess")
	require.NoError(t, err)
	assert.False(t, called)
	assert.Contains(t, out, "--dry-run")
}
