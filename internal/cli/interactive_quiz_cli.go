package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/vocadrill/internal/coordinator"
	"github.com/at-ishikawa/vocadrill/internal/learning"
	"github.com/at-ishikawa/vocadrill/internal/quiz"
)

var (
	errEnd  = errors.New("end")
	errQuit = errors.New("quit")
)

const quitCommand = ":q"

// SessionController is the part of the coordinator the terminal drives.
type SessionController interface {
	State() coordinator.State
	CompleteCurrentTest(results []learning.WordTestResult) (coordinator.State, error)
	CancelSession() coordinator.State
	RetryFailedWords() (coordinator.State, error)
	Acknowledge() coordinator.State
}

// ChoiceSource builds the options of a multiple-choice question.
type ChoiceSource interface {
	Choices(question quiz.TestQuestion, testType learning.TestType, distractors int) []quiz.Choice
}

// InteractiveQuizCLI runs the tests of the active session in a terminal.
type InteractiveQuizCLI struct {
	sessions     SessionController
	choices      ChoiceSource
	speaker      Speaker
	recognizer   Recognizer
	distractors  int
	askRetry     bool
	now          func() time.Time
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

type Option func(*InteractiveQuizCLI)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(cli *InteractiveQuizCLI) {
		cli.stdinReader = bufio.NewReader(in)
		cli.stdoutWriter = out
	}
}

// WithSpeaker sets how listening tests pronounce words.
func WithSpeaker(speaker Speaker) Option {
	return func(cli *InteractiveQuizCLI) {
		cli.speaker = speaker
	}
}

// WithRecognizer sets how speaking tests hear the learner.
func WithRecognizer(recognizer Recognizer) Option {
	return func(cli *InteractiveQuizCLI) {
		cli.recognizer = recognizer
	}
}

// WithRetryPrompt asks to retry failed words after a session.
func WithRetryPrompt(enabled bool) Option {
	return func(cli *InteractiveQuizCLI) {
		cli.askRetry = enabled
	}
}

func WithClock(now func() time.Time) Option {
	return func(cli *InteractiveQuizCLI) {
		cli.now = now
	}
}

func NewInteractiveQuizCLI(sessions SessionController, choices ChoiceSource, opts ...Option) *InteractiveQuizCLI {
	cli := &InteractiveQuizCLI{
		sessions:     sessions,
		choices:      choices,
		distractors:  3,
		now:          time.Now,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
	for _, opt := range opts {
		opt(cli)
	}
	if cli.speaker == nil {
		cli.speaker = NewHintSpeaker(cli.stdoutWriter)
	}
	if cli.recognizer == nil {
		cli.recognizer = NewTypedRecognizer(cli.stdinReader, cli.stdoutWriter)
	}
	return cli
}

// Run shows tests until the session completes, the learner quits or the
// process is interrupted. Quitting or an interrupt cancels the session.
// It returns the final state.
func (cli *InteractiveQuizCLI) Run(ctx context.Context) (coordinator.State, error) {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := cli.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
		return cli.sessions.CancelSession(), nil
	case err := <-errCh:
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			_, _ = fmt.Fprintln(cli.stdoutWriter, "Session cancelled.")
			return cli.sessions.CancelSession(), nil
		}
		if err != nil {
			return cli.sessions.State(), fmt.Errorf("error: %w", err)
		}
	}
	return cli.sessions.State(), nil
}

// Session runs one test of the active session, or shows the results once
// it completed. It returns errEnd when there is nothing left to do.
func (cli *InteractiveQuizCLI) Session(ctx context.Context) error {
	state := cli.sessions.State()
	switch state.Phase {
	case coordinator.PhaseCompleted:
		cli.printOutcome(state)
		if cli.askRetry && len(state.Outcome.Verdicts) > len(state.Outcome.PassedWords()) {
			retry, err := cli.confirm("Retry the failed words?")
			if err != nil {
				return err
			}
			if retry {
				if _, err := cli.sessions.RetryFailedWords(); err != nil {
					return fmt.Errorf("sessions.RetryFailedWords() > %w", err)
				}
				return nil
			}
		}
		return errEnd
	case coordinator.PhaseActive:
	default:
		return errEnd
	}

	testType, _ := state.CurrentTestType()
	session := state.Session
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "\n[%d/%d] %s\n",
		session.CurrentTestIndex+1, len(session.TestSequence), testType.Title())

	results := make([]learning.WordTestResult, 0, len(state.Questions))
	for _, question := range state.Questions {
		result, err := cli.ask(ctx, question, testType)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	if _, err := cli.sessions.CompleteCurrentTest(results); err != nil {
		return fmt.Errorf("sessions.CompleteCurrentTest() > %w", err)
	}
	return nil
}

func (cli *InteractiveQuizCLI) ask(ctx context.Context, question quiz.TestQuestion, testType learning.TestType) (learning.WordTestResult, error) {
	var answer string
	var isCorrect bool
	var err error
	switch {
	case quiz.IsMultipleChoice(testType):
		answer, isCorrect, err = cli.askChoice(question, testType)
	case testType == learning.TestTypeChineseToEnglishSelect:
		answer, isCorrect, err = cli.askLetters(question)
	case testType == learning.TestTypeChineseToEnglishSpell:
		answer, isCorrect, err = cli.askSpelling(question)
	case testType == learning.TestTypeListening:
		answer, isCorrect, err = cli.askListening(ctx, question)
	case testType == learning.TestTypeSpeechRecognition:
		answer, isCorrect, err = cli.askSpeaking(ctx, question)
	default:
		return learning.WordTestResult{}, fmt.Errorf("unsupported test type: %s", testType)
	}
	if err != nil {
		return learning.WordTestResult{}, err
	}

	cli.printVerdict(question, isCorrect)
	return learning.WordTestResult{
		Word:            question.Word,
		ChineseExpected: question.ChineseText,
		UserAnswer:      answer,
		IsCorrect:       isCorrect,
		TestType:        testType,
		Timestamp:       cli.now(),
	}, nil
}

func (cli *InteractiveQuizCLI) readLine() (string, error) {
	line, err := cli.stdinReader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == quitCommand {
		return "", errQuit
	}
	return line, nil
}

func (cli *InteractiveQuizCLI) confirm(prompt string) (bool, error) {
	_, _ = fmt.Fprintf(cli.stdoutWriter, "%s [y/N]: ", prompt)
	line, err := cli.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, errQuit) {
			return false, nil
		}
		return false, err
	}
	return strings.EqualFold(line, "y") || strings.EqualFold(line, "yes"), nil
}

func (cli *InteractiveQuizCLI) printVerdict(question quiz.TestQuestion, isCorrect bool) {
	if isCorrect {
		_, _ = fmt.Fprint(cli.stdoutWriter, "✅ ")
		_, _ = color.New(color.FgGreen).Fprintf(cli.stdoutWriter, "It's correct. %s: %s\n",
			cli.bold.Sprint(question.Word), question.ChineseText)
	} else {
		_, _ = fmt.Fprint(cli.stdoutWriter, "❌ ")
		_, _ = color.New(color.FgRed).Fprintf(cli.stdoutWriter, "It's wrong. %s: %s\n",
			cli.bold.Sprint(question.Word), question.ChineseText)
	}
	if question.FullDefinition != "" && question.FullDefinition != question.ChineseText {
		_, _ = fmt.Fprintf(cli.stdoutWriter, "   %s\n", cli.italic.Sprint(question.FullDefinition))
	}
	if question.ExampleSentences != "" {
		_, _ = fmt.Fprintf(cli.stdoutWriter, "   %s\n", question.ExampleSentences)
	}
}

func (cli *InteractiveQuizCLI) printOutcome(state coordinator.State) {
	outcome := state.Outcome
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "\nSession finished: %d/%d correct (%.0f%%)\n",
		outcome.CorrectCount, outcome.TotalCount, outcome.Accuracy*100)
	for _, verdict := range outcome.Verdicts {
		if verdict.IsCorrect {
			_, _ = color.New(color.FgGreen).Fprintf(cli.stdoutWriter, "  ✓ %s\n", verdict.Word)
		} else {
			_, _ = color.New(color.FgRed).Fprintf(cli.stdoutWriter, "  ✗ %s\n", verdict.Word)
		}
	}
	for _, word := range outcome.SkippedWords {
		_, _ = fmt.Fprintf(cli.stdoutWriter, "  - %s (no definition, skipped)\n", word)
	}
}
