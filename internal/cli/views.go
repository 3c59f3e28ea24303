package cli

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/at-ishikawa/vocadrill/internal/learning"
	"github.com/at-ishikawa/vocadrill/internal/quiz"
)

func (cli *InteractiveQuizCLI) askChoice(question quiz.TestQuestion, testType learning.TestType) (string, bool, error) {
	if quiz.ShowsMeaningChoices(testType) {
		_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", question.Word)
	} else {
		_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", question.ChineseText)
	}

	choices := cli.choices.Choices(question, testType, cli.distractors)
	for i, choice := range choices {
		_, _ = fmt.Fprintf(cli.stdoutWriter, "  %d) %s\n", i+1, choice.Text)
	}

	for {
		_, _ = fmt.Fprint(cli.stdoutWriter, "Your choice: ")
		line, err := cli.readLine()
		if err != nil {
			return "", false, err
		}
		index, err := strconv.Atoi(line)
		if err != nil || index < 1 || index > len(choices) {
			_, _ = fmt.Fprintf(cli.stdoutWriter, "Enter a number from 1 to %d\n", len(choices))
			continue
		}
		choice := choices[index-1]
		return choice.Text, choice.IsCorrect, nil
	}
}

func (cli *InteractiveQuizCLI) askLetters(question quiz.TestQuestion) (string, bool, error) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", question.ChineseText)
	_, _ = fmt.Fprintf(cli.stdoutWriter, "Letters: %s\n", strings.Join(scrambleLetters(question.Word, rand.Shuffle), " "))
	return cli.askWord(question, "Word: ")
}

func (cli *InteractiveQuizCLI) askSpelling(question quiz.TestQuestion) (string, bool, error) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", question.ChineseText)
	_, _ = fmt.Fprintf(cli.stdoutWriter, "Hint: %s\n", maskWord(question.Word))
	return cli.askWord(question, "Word: ")
}

func (cli *InteractiveQuizCLI) askListening(ctx context.Context, question quiz.TestQuestion) (string, bool, error) {
	if err := cli.speaker.Speak(ctx, question); err != nil {
		return "", false, fmt.Errorf("speaker.Speak() > %w", err)
	}
	return cli.askWord(question, "What did you hear? ")
}

func (cli *InteractiveQuizCLI) askSpeaking(ctx context.Context, question quiz.TestQuestion) (string, bool, error) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s", question.Word)
	_, _ = fmt.Fprintf(cli.stdoutWriter, "  %s\n", question.ChineseText)
	heard, err := cli.recognizer.Recognize(ctx, question.Word)
	if err != nil {
		return "", false, err
	}
	return heard, matchesWord(heard, question.Word), nil
}

func (cli *InteractiveQuizCLI) askWord(question quiz.TestQuestion, prompt string) (string, bool, error) {
	_, _ = fmt.Fprint(cli.stdoutWriter, prompt)
	line, err := cli.readLine()
	if err != nil {
		return "", false, err
	}
	return line, matchesWord(line, question.Word), nil
}

func matchesWord(answer, word string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(word))
}

// maskWord keeps the first letter and spaces and hides the rest.
func maskWord(word string) string {
	runes := []rune(word)
	masked := make([]string, len(runes))
	for i, r := range runes {
		switch {
		case i == 0, r == ' ', r == '-':
			masked[i] = string(r)
		default:
			masked[i] = "_"
		}
	}
	return strings.Join(masked, " ")
}

func scrambleLetters(word string, shuffle func(n int, swap func(i, j int))) []string {
	var letters []string
	for _, r := range strings.ToLower(word) {
		if r == ' ' {
			continue
		}
		letters = append(letters, string(r))
	}
	shuffle(len(letters), func(i, j int) {
		letters[i], letters[j] = letters[j], letters[i]
	})
	return letters
}
