package cli

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAssessments(t *testing.T, app *App, names ...string) {
	t.Helper()
	for _, n := range names {
		_, err := executeCmd(t, app, "assess", "--name", n, "--email", strings.ToLower(n)+"@example.com",
			"--project", "Onboarding", "-a", "1=2,2=3,4=1")
		require.NoError(t, err)
	}
}

func TestCatalogCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "catalog", "--follow-ups")
	require.NoError(t, err)
	assert.Contains(t, out, "CHECKLIST (3 QUESTIONS)")
	assert.Contains(t, out, "Do you collect customer feedback after every interaction?")
	assert.Contains(t, out, "- Are journey maps reviewed each quarter?")
}

func TestLogListCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "log", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No assessments logged yet.")

	seedAssessments(t, app, "Ada", "Grace")
	out, err = executeCmd(t, app, "log", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "ASSESSMENT LOG (2)")
	assert.Less(t, strings.Index(out, "Ada"), strings.Index(out, "Grace"))
}

func TestLogExportCmd_Stdout(t *testing.T) {
	app, _ := testApp(t)
	seedAssessments(t, app, "Ada")

	out, err := executeCmd(t, app, "log", "export")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "timestamp;name;email;project;1;2;4;overall_score", lines[0])
	assert.Contains(t, lines[1], ";Ada;ada@example.com;Onboarding;2;3;1;77.777")
}

func TestLogExportCmd_FileAndDataURI(t *testing.T) {
	app, _ := testApp(t)
	app.Config.Delimiter = ","
	seedAssessments(t, app, "Ada", "Grace")

	path := filepath.Join(t.TempDir(), "export.txt")
	out, err := executeCmd(t, app, "log", "export", "--data-uri", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 assessment(s)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	uri := strings.TrimSpace(string(data))
	require.True(t, strings.HasPrefix(uri, "data:text/csv;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:text/csv;base64,"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(decoded), "timestamp,name,email,project,1,2,4,overall_score\n"))
	assert.Equal(t, 3, strings.Count(string(decoded), "\n"))
}

func TestLogExportCmd_RefusesToOverwriteLog(t *testing.T) {
	app, log := testApp(t)
	app.Config.LogPath = log.Path()
	seedAssessments(t, app, "Ada")

	before, err := os.ReadFile(log.Path())
	require.NoError(t, err)

	_, err = executeCmd(t, app, "log", "export", "--out", log.Path())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to export over the assessment log")

	rel, err := filepath.Rel(mustGetwd(t), log.Path())
	require.NoError(t, err)
	_, err = executeCmd(t, app, "log", "export", "-o", rel)
	require.Error(t, err)

	after, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func mustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}
