package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/at-ishikawa/vocadrill/internal/quiz"
)

// Speaker pronounces the word of a listening question.
type Speaker interface {
	Speak(ctx context.Context, question quiz.TestQuestion) error
}

// Recognizer returns what the learner said for the expected word.
type Recognizer interface {
	Recognize(ctx context.Context, expected string) (string, error)
}

// HintSpeaker is used when no text-to-speech is available. It shows the
// example sentence with the word blanked out, or the word's shape.
type HintSpeaker struct {
	w io.Writer
}

func NewHintSpeaker(w io.Writer) *HintSpeaker {
	return &HintSpeaker{w: w}
}

func (s *HintSpeaker) Speak(_ context.Context, question quiz.TestQuestion) error {
	sentence := blankWord(question.ExampleSentences, question.Word)
	if sentence != "" && sentence != question.ExampleSentences {
		_, err := fmt.Fprintf(s.w, "🔇 %s\n", sentence)
		return err
	}
	_, err := fmt.Fprintf(s.w, "🔇 %s (%s)\n", maskWord(question.Word), question.ChineseText)
	return err
}

func blankWord(sentence, word string) string {
	if sentence == "" || word == "" {
		return sentence
	}
	lower := strings.ToLower(sentence)
	target := strings.ToLower(word)
	if len(lower) != len(sentence) || len(target) != len(word) {
		return sentence
	}
	var b strings.Builder
	for {
		i := strings.Index(lower, target)
		if i < 0 {
			b.WriteString(sentence)
			return b.String()
		}
		b.WriteString(sentence[:i])
		b.WriteString(strings.Repeat("_", len([]rune(word))))
		sentence = sentence[i+len(target):]
		lower = lower[i+len(target):]
	}
}

// CommandSpeaker runs a text-to-speech command such as say or espeak with
// the word as its last argument.
type CommandSpeaker struct {
	name string
	args []string
}

var errNoSpeechCommand = errors.New("no text-to-speech command found")

// FindCommandSpeaker returns a CommandSpeaker for the first of say and
// espeak found on PATH.
func FindCommandSpeaker() (*CommandSpeaker, error) {
	for _, name := range []string{"say", "espeak"} {
		if path, err := exec.LookPath(name); err == nil {
			return &CommandSpeaker{name: path}, nil
		}
	}
	return nil, errNoSpeechCommand
}

func (s *CommandSpeaker) Speak(ctx context.Context, question quiz.TestQuestion) error {
	args := append(append([]string{}, s.args...), question.Word)
	if err := exec.CommandContext(ctx, s.name, args...).Run(); err != nil {
		return fmt.Errorf("exec %s > %w", s.name, err)
	}
	return nil
}

// TypedRecognizer stands in for a microphone: the learner types what they
// would say.
type TypedRecognizer struct {
	r *bufio.Reader
	w io.Writer
}

func NewTypedRecognizer(r *bufio.Reader, w io.Writer) *TypedRecognizer {
	return &TypedRecognizer{r: r, w: w}
}

func (t *TypedRecognizer) Recognize(_ context.Context, _ string) (string, error) {
	_, _ = fmt.Fprint(t.w, "Say it (type): ")
	line, err := t.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == quitCommand {
		return "", errQuit
	}
	return line, nil
}
