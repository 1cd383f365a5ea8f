package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"trainerbot/internal/app"
	"trainerbot/internal/core/tier"
	"trainerbot/internal/platform/config"
	grading "trainerbot/internal/services/grading/domain"
)

// consoleSink prints the status lifecycle and the result to w
type consoleSink struct {
	w io.Writer
}

func (s consoleSink) Pending(_ context.Context, sub grading.Submission) (grading.StatusHandle, error) {
	fmt.Fprintf(s.w, "%s grading %s ...\n", color.YellowString("⏳"), sub.TaskID)
	return grading.StatusHandle{}, nil
}

func (s consoleSink) Clear(context.Context, grading.StatusHandle) error { return nil }

func (s consoleSink) Deliver(_ context.Context, _ grading.Submission, r grading.Rendered) error {
	paint := color.New(tierColor(r.Tier), color.Bold).SprintFunc()
	fmt.Fprintf(s.w, "\n%s %s\n", r.Marker, paint(r.Label))
	fmt.Fprintf(s.w, "Score: %s\n\n", paint(fmt.Sprintf("%d/100", r.Score)))
	fmt.Fprintf(s.w, "%s\n", r.Feedback)
	if len(r.Suggestions) > 0 {
		fmt.Fprintln(s.w, "\nSuggestions:")
		for i, x := range r.Suggestions {
			fmt.Fprintf(s.w, "  %d. %s\n", i+1, x)
		}
	}
	return nil
}

func tierColor(t tier.Tier) color.Attribute {
	switch t {
	case tier.Top:
		return color.FgGreen
	case tier.Good:
		return color.FgCyan
	case tier.Passing:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

func gradeCmd() *cobra.Command {
	var (
		task     string
		provider string
	)
	cmd := &cobra.Command{
		Use:   "grade [answer...]",
		Short: "Grade an answer with the configured grader",
		Long: `Grade runs the same pipeline the bot runs and prints the rendered verdict.
The answer is read from the arguments, or from stdin when there are none.

Examples:
  trainerbot-cli grade --task cohort-analysis-sql "SELECT ..."
  trainerbot-cli grade --provider static < answer.sql`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider != "" {
				_ = os.Setenv("GRADER_PROVIDER", provider)
			}
			answer := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				answer = string(b)
			}

			ctx := cmd.Context()
			core, err := app.NewCore(ctx, config.New())
			if err != nil {
				return err
			}
			defer core.Close()

			if task == "" {
				def, err := core.Materials.Lookup.Default(ctx)
				if err != nil {
					return err
				}
				task = def.TaskID
			}

			sub := grading.NewSubmission(task, answer, grading.ChannelDirect, 0, 0)
			o, err := core.Grading.Service.Submit(ctx, sub, consoleSink{w: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			if o.Verdict.Source != grading.SourceGraded {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n(%s via %s)\n", o.Verdict.Source, core.GraderName)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&task, "task", "", "task id (default: the registry default)")
	cmd.Flags().StringVar(&provider, "provider", "", "override GRADER_PROVIDER: openai | gemini | static")
	return cmd
}
