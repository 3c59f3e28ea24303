package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/vocadrill/internal/async"
	"github.com/at-ishikawa/vocadrill/internal/bootstrap"
	"github.com/at-ishikawa/vocadrill/internal/cli"
	"github.com/at-ishikawa/vocadrill/internal/config"
	"github.com/at-ishikawa/vocadrill/internal/coordinator"
	"github.com/at-ishikawa/vocadrill/internal/definition"
	"github.com/at-ishikawa/vocadrill/internal/learning"
	"github.com/at-ishikawa/vocadrill/internal/quiz"
	"github.com/at-ishikawa/vocadrill/internal/report"
	"github.com/at-ishikawa/vocadrill/internal/study"
)

type quizOptions struct {
	familiar  []string
	retry     bool
	speak     bool
	writeYAML bool
	writePDF  bool
}

func (o *quizOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&o.familiar, "familiar", nil, "Words already known, skipped before the session starts")
	flags.BoolVar(&o.retry, "retry", true, "Offer to retry failed words after the session")
	flags.BoolVar(&o.speak, "speak", false, "Pronounce listening questions with say or espeak")
	flags.BoolVar(&o.writeYAML, "report", false, "Write the session report as YAML and Markdown")
	flags.BoolVar(&o.writePDF, "pdf", false, "Also convert the Markdown report to PDF")
}

func newQuizCommand() *cobra.Command {
	quizCommand := &cobra.Command{
		Use:   "quiz",
		Short: "Run a test session",
	}

	quizCommand.AddCommand(newQuizWordsCommand())
	quizCommand.AddCommand(newQuizPlanCommand())
	return quizCommand
}

func newQuizWordsCommand() *cobra.Command {
	var opts quizOptions
	var isNew bool
	command := &cobra.Command{
		Use:   "words <word>...",
		Short: "Test the given words without a plan",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runQuiz(cmd, cfg, opts, func(ctx context.Context, launcher *study.Launcher) (study.Result, error) {
				return launcher.Launch(ctx, nil, args, isNew)
			}, nil)
		},
	}
	command.Flags().BoolVar(&isNew, "new", false, "Use the new word sequence instead of the review one")
	opts.register(command)
	return command
}

func newQuizPlanCommand() *cobra.Command {
	var opts quizOptions
	var review bool
	command := &cobra.Command{
		Use:   "plan <planId>",
		Short: "Test today's words of a plan and report the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, err := parsePlanID(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := newPlanClient(cfg)
			if err != nil {
				return err
			}

			kind := study.KindAuto
			if review {
				kind = study.KindReview
			}
			return runQuiz(cmd, cfg, opts, func(ctx context.Context, launcher *study.Launcher) (study.Result, error) {
				return launcher.LaunchDaily(ctx, planID, kind)
			}, &planWiring{planID: planID, client: client})
		},
	}
	command.Flags().BoolVar(&review, "review", false, "Test the review words even when new words are available")
	opts.register(command)
	return command
}

type planWiring struct {
	planID int64
	client interface {
		study.PlanService
		coordinator.StatusReporter
	}
}

type launchFunc func(ctx context.Context, launcher *study.Launcher) (study.Result, error)

func runQuiz(cmd *cobra.Command, cfg *config.Config, opts quizOptions, launch launchFunc, plan *planWiring) error {
	out := cmd.OutOrStdout()
	app := bootstrap.New(bootstrap.DefaultShutdownTimeout)
	return app.Run(cmd.Context(), func(ctx context.Context) error {
		store, closeStore := openStore(ctx, cfg)
		app.AddShutdownHook("dictionary database", func(context.Context) error {
			return closeStore()
		})

		builder := quiz.NewBuilder(store, definition.NewSimplifier(nil), nil)
		dispatcher := async.NewDispatcher(cfg.Session.StatusWorkers)
		app.AddShutdownHook("status dispatcher", dispatcher.Close)

		var plans study.PlanService
		var reporter coordinator.StatusReporter
		if plan != nil {
			plans = plan.client
			reporter = plan.client
		}
		launcher := study.NewLauncher(plans, learning.NewFamiliarWords(opts.familiar...), nil)
		sessions := coordinator.New(builder, reporter, dispatcher,
			coordinator.WithStartPolicy(startPolicy(cfg)),
			coordinator.WithRefresher(launcher),
		)
		launcher.SetSessions(sessions)

		result, err := launch(ctx, launcher)
		if err != nil {
			return storeUnavailable(store, err)
		}
		if !result.Started {
			if result.EmptyBatch {
				_, _ = fmt.Fprintln(out, "No words to test today")
			} else {
				_, _ = fmt.Fprintf(out, "All words are familiar, nothing to test: %v\n", result.FamiliarWords)
			}
			if result.Progress != nil {
				printProgress(out, *result.Progress)
			}
			return nil
		}
		if len(result.FamiliarWords) > 0 {
			_, _ = fmt.Fprintf(out, "Skipping familiar words: %v\n", result.FamiliarWords)
		}

		cliOpts := []cli.Option{
			cli.WithIO(cmd.InOrStdin(), out),
			cli.WithRetryPrompt(opts.retry),
		}
		if opts.speak {
			speaker, err := cli.FindCommandSpeaker()
			if err != nil {
				slog.Default().Warn("text-to-speech is not available, showing hints instead", slog.Any("error", err))
			} else {
				cliOpts = append(cliOpts, cli.WithSpeaker(speaker))
			}
		}
		state, err := cli.NewInteractiveQuizCLI(sessions, builder, cliOpts...).Run(ctx)
		if err != nil {
			return err
		}
		if state.Phase != coordinator.PhaseCompleted {
			return nil
		}

		if opts.writeYAML || opts.writePDF {
			if err := writeReport(out, cfg, state, opts.writePDF); err != nil {
				return err
			}
		}
		sessions.Acknowledge()

		if plan != nil {
			sessions.Wait()
			if progress, ok := launcher.Progress(plan.planID); ok {
				printProgress(out, progress)
			}
		}
		return nil
	})
}

func writeReport(out io.Writer, cfg *config.Config, state coordinator.State, withPDF bool) error {
	sessionReport, err := report.FromState(state)
	if err != nil {
		return fmt.Errorf("report.FromState() > %w", err)
	}
	writer, err := report.NewWriter(cfg.Outputs.ReportDirectory, cfg.Outputs.ReportTemplate)
	if err != nil {
		return fmt.Errorf("report.NewWriter() > %w", err)
	}
	paths, err := writer.Write(sessionReport)
	if err != nil {
		return fmt.Errorf("writer.Write() > %w", err)
	}
	_, _ = fmt.Fprintf(out, "Report: %s\n", paths.Markdown)

	if !withPDF {
		return nil
	}
	paths, err = writer.WritePDF(sessionReport, paths)
	if err != nil {
		return fmt.Errorf("writer.WritePDF() > %w", err)
	}
	_, _ = fmt.Fprintf(out, "PDF: %s\n", paths.PDF)
	return nil
}
