package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// answerFlag collects repeated --answer id=score values.
type answerFlag struct {
	answers domain.Answers
}

var _ pflag.Value = (*answerFlag)(nil)

func newAnswerFlag() *answerFlag {
	return &answerFlag{answers: domain.Answers{}}
}

// Set accepts "id=score" and a comma-separated list of them.
func (f *answerFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, raw, ok := strings.Cut(part, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return fmt.Errorf("expected id=score, got %q", part)
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || !domain.ValidScore(v) {
			return fmt.Errorf("score for %q must be %d-%d, got %q", id, domain.ScaleMin, domain.ScaleMax, raw)
		}
		f.answers[id] = v
	}
	return nil
}

func (f *answerFlag) String() string {
	ids := make([]string, 0, len(f.answers))
	for id := range f.answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s=%d", id, f.answers[id])
	}
	return strings.Join(parts, ",")
}

func (f *answerFlag) Type() string {
	return "id=score"
}

// answersFile is the YAML layout accepted by --answers.
type answersFile struct {
	Name    string         `yaml:"name"`
	Email   string         `yaml:"email"`
	Project string         `yaml:"project"`
	Answers map[string]int `yaml:"answers"`
}

func loadAnswersFile(path string) (*answersFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening answers file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var af answersFile
	if err := dec.Decode(&af); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	return &af, nil
}

// assessInput merges the answers file, flags and form results.
type assessInput struct {
	Respondent domain.Respondent
	Answers    domain.Answers
}

func (in *assessInput) applyFile(af *answersFile) {
	if af.Name != "" {
		in.Respondent.Name = af.Name
	}
	if af.Email != "" {
		in.Respondent.Email = af.Email
	}
	if af.Project != "" {
		in.Respondent.Project = af.Project
	}
	for id, v := range af.Answers {
		in.Answers[id] = v
	}
}

func (in *assessInput) applyFlags(name, email, project string, answers domain.Answers) {
	if name != "" {
		in.Respondent.Name = name
	}
	if email != "" {
		in.Respondent.Email = email
	}
	if project != "" {
		in.Respondent.Project = project
	}
	for id, v := range answers {
		in.Answers[id] = v
	}
}

// missing reports whether any respondent field or listed question is
// still unanswered.
func (in *assessInput) missing(items []domain.ChecklistItem) bool {
	if strings.TrimSpace(in.Respondent.Name) == "" ||
		strings.TrimSpace(in.Respondent.Email) == "" ||
		strings.TrimSpace(in.Respondent.Project) == "" {
		return true
	}
	for _, item := range items {
		if _, ok := in.Answers[item.ID]; !ok {
			return true
		}
	}
	return false
}
