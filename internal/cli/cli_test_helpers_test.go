package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/cxready/internal/assessmentlog"
	"github.com/alexanderramin/cxready/internal/config"
	"github.com/alexanderramin/cxready/internal/service"
	"github.com/alexanderramin/cxready/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testApp wires an App over the fixture catalog and a file log in a temp dir.
func testApp(t *testing.T) (*App, *assessmentlog.FileLog) {
	t.Helper()
	cat := testutil.NewTestCatalog(t)
	log := assessmentlog.NewFileLog(filepath.Join(t.TempDir(), "assessments.csv"), cat.IDs())
	svc, err := service.NewAssessmentService(cat, log, 0)
	require.NoError(t, err)
	return &App{Assessments: svc, Config: config.DefaultConfig()}, log
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}
