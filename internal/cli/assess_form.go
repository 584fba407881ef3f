package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/cxready/internal/cli/formatter"
	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// errAssessmentCancelled is returned when the user leaves the form early.
var errAssessmentCancelled = errors.New("assessment cancelled")

// cxHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func cxHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.NoteTitle = lipgloss.NewStyle().Foreground(formatter.ColorPurple).Bold(true)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if err := validateRequired("email")(s); err != nil {
		return err
	}
	if !strings.Contains(s, "@") {
		return errors.New("enter a valid email address")
	}
	return nil
}

func scaleOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, domain.ScaleMax-domain.ScaleMin+1)
	for v := domain.ScaleMin; v <= domain.ScaleMax; v++ {
		opts = append(opts, huh.NewOption(formatter.ScaleLabel(v), v))
	}
	return opts
}

type wizardKeyMap struct {
	Select key.Binding
	Cancel key.Binding
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Cancel}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultWizardKeys() wizardKeyMap {
	return wizardKeyMap{
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	}
}

// assessmentWizard asks for the respondent details and every question that
// was not answered on the command line, one category per page.
type assessmentWizard struct {
	form      *huh.Form
	items     []domain.ChecklistItem
	values    map[string]*int
	keys      wizardKeyMap
	help      help.Model
	cancelled bool
}

func newAssessmentWizard(items []domain.ChecklistItem, in *assessInput) *assessmentWizard {
	w := &assessmentWizard{
		values: make(map[string]*int),
		keys:   defaultWizardKeys(),
		help:   help.New(),
	}

	var groups []*huh.Group
	var fields []huh.Field
	if strings.TrimSpace(in.Respondent.Name) == "" {
		fields = append(fields, huh.NewInput().Title("Your name").Value(&in.Respondent.Name).Validate(validateRequired("name")))
	}
	if strings.TrimSpace(in.Respondent.Email) == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&in.Respondent.Email).Validate(validateEmail))
	}
	if strings.TrimSpace(in.Respondent.Project) == "" {
		fields = append(fields, huh.NewInput().Title("Project").Value(&in.Respondent.Project).Validate(validateRequired("project name")))
	}
	if len(fields) > 0 {
		groups = append(groups, huh.NewGroup(fields...).Title("About you"))
	}

	var category string
	var questions []huh.Field
	flush := func() {
		if len(questions) > 0 {
			groups = append(groups, huh.NewGroup(questions...).Title(category))
		}
		questions = nil
	}
	for _, item := range items {
		if _, ok := in.Answers[item.ID]; ok {
			continue
		}
		if item.Category != category {
			flush()
			category = item.Category
		}
		v := new(int)
		w.values[item.ID] = v
		w.items = append(w.items, item)
		questions = append(questions, huh.NewSelect[int]().
			Title(item.Question).
			Description(fmt.Sprintf("%s · weight %s", item.Category, formatter.FormatWeight(item.Weight))).
			Options(scaleOptions()...).
			Value(v))
	}
	flush()

	if len(groups) > 0 {
		w.form = huh.NewForm(groups...).WithTheme(cxHuhTheme()).WithShowHelp(false)
	}
	return w
}

// empty reports whether there is nothing left to ask.
func (w *assessmentWizard) empty() bool {
	return w.form == nil
}

func (w *assessmentWizard) answered() int {
	n := 0
	for _, v := range w.values {
		if domain.ValidScore(*v) {
			n++
		}
	}
	return n
}

// apply copies the selected scores into answers.
func (w *assessmentWizard) apply(answers domain.Answers) {
	for id, v := range w.values {
		if domain.ValidScore(*v) {
			answers[id] = *v
		}
	}
}

func (w *assessmentWizard) Init() tea.Cmd {
	return w.form.Init()
}

func (w *assessmentWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, w.keys.Cancel) {
		w.cancelled = true
		return w, tea.Quit
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	switch w.form.State {
	case huh.StateCompleted:
		return w, tea.Quit
	case huh.StateAborted:
		w.cancelled = true
		return w, tea.Quit
	}
	return w, cmd
}

func (w *assessmentWizard) View() string {
	if w.form.State != huh.StateNormal {
		return ""
	}
	total := len(w.items)
	var b strings.Builder
	b.WriteString(formatter.Header("CX Self-Assessment"))
	b.WriteString("\n")
	if total > 0 {
		pct := 100 * float64(w.answered()) / float64(total)
		b.WriteString(fmt.Sprintf("%s %s\n\n",
			formatter.RenderCompactBar(pct, 20, true),
			formatter.Dim(fmt.Sprintf("%d of %d answered", w.answered(), total))))
	}
	b.WriteString(w.form.View())
	b.WriteString("\n")
	b.WriteString(w.help.View(w.keys))
	return b.String()
}

// runAssessmentWizard fills the gaps in `in` interactively.
func runAssessmentWizard(ctx context.Context, items []domain.ChecklistItem, in *assessInput, input io.Reader, output io.Writer) error {
	w := newAssessmentWizard(items, in)
	if w.empty() {
		return nil
	}

	p := tea.NewProgram(w, tea.WithContext(ctx), tea.WithInput(input), tea.WithOutput(output))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running assessment form: %w", err)
	}
	if w.cancelled {
		return errAssessmentCancelled
	}
	w.apply(in.Answers)
	return nil
}
