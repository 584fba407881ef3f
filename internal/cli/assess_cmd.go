package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/cxready/internal/app"
	"github.com/alexanderramin/cxready/internal/cli/formatter"
	"github.com/alexanderramin/cxready/internal/domain"
	"github.com/alexanderramin/cxready/internal/recommend"
	"github.com/spf13/cobra"
)

func newAssessCmd(a *App) *cobra.Command {
	var name, email, project, answersPath string
	var threshold int
	var dryRun, noInput bool
	answers := newAnswerFlag()

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Take the CX readiness self-assessment",
		Long: "Scores one answer per checklist question on a 1-3 scale, lists follow-up\n" +
			"checks for weak areas and appends the result to the assessment log.\n\n" +
			"In a terminal, anything not given by flags is asked for in a form.",
		Example: "  cxready assess\n" +
			"  cxready assess --name Ada --email ada@example.com --project Onboarding --answer 1=3,2=2,4=1\n" +
			"  cxready assess --answers answers.yaml --dry-run",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := a.Assessments
			items := svc.Catalog().Primary()

			in := &assessInput{Answers: domain.Answers{}}
			if answersPath != "" {
				af, err := loadAnswersFile(answersPath)
				if err != nil {
					return err
				}
				in.applyFile(af)
			}
			in.applyFlags(name, email, project, answers.answers)

			if in.missing(items) && !noInput && a.interactive() {
				if err := runAssessmentWizard(ctx, items, in, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
					if errors.Is(err, errAssessmentCancelled) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
						return nil
					}
					return err
				}
			}

			req := app.SubmitRequest{
				Respondent: in.Respondent,
				Answers:    in.Answers,
				Threshold:  threshold,
			}

			var resp *app.SubmitResponse
			var err error
			if dryRun {
				resp, err = svc.Preview(ctx, req)
			} else {
				resp, err = svc.Submit(ctx, req)
			}
			if err != nil {
				return withHint(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatAssessment(resp))
			if resp.LogErr != nil {
				return fmt.Errorf("score not saved: %w", resp.LogErr)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatSaved(resp, dryRun))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Respondent name")
	cmd.Flags().StringVar(&email, "email", "", "Respondent email")
	cmd.Flags().StringVar(&project, "project", "", "Project being assessed")
	cmd.Flags().VarP(answers, "answer", "a", "Answer as id=score (repeatable, or comma-separated)")
	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML file with name, email, project and answers")
	cmd.Flags().IntVar(&threshold, "threshold", 0, fmt.Sprintf("Answers below this are weak areas (default from config, %d)", recommend.DefaultThreshold))
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Score without saving to the log")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never open the interactive form")

	return cmd
}

// withHint adds a short next step for errors the user can fix.
func withHint(err error) error {
	switch {
	case errors.Is(err, domain.ErrScoring):
		return fmt.Errorf("%w\nanswer every question with a score from %d to %d (see `cxready catalog`)", err, domain.ScaleMin, domain.ScaleMax)
	case errors.Is(err, domain.ErrInvalidRespondent):
		return fmt.Errorf("%w\nset --name, --email and --project", err)
	case errors.Is(err, recommend.ErrInvalidThreshold):
		return fmt.Errorf("%w\n--threshold must be between %d and %d", err, domain.ScaleMin, domain.ScaleMax+1)
	default:
		return err
	}
}
