// Package report writes finished sessions to YAML, Markdown and PDF files.
package report

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/vocadrill/internal/coordinator"
	"github.com/at-ishikawa/vocadrill/internal/learning"
)

//go:embed templates/session-report.md.go.tmpl
var fallbackTemplate string

const fallbackTemplateName = "session-report.md.go.tmpl"

var ErrNoOutcome = errors.New("session has no outcome")

// SessionReport is the saved form of a completed session.
type SessionReport struct {
	SessionID        uuid.UUID                 `yaml:"session_id"`
	PlanID           *int64                    `yaml:"plan_id,omitempty"`
	IsNewWordSession bool                      `yaml:"is_new_word_session"`
	StartTime        time.Time                 `yaml:"start_time"`
	Accuracy         float64                   `yaml:"accuracy"`
	CorrectCount     int                       `yaml:"correct_count"`
	TotalCount       int                       `yaml:"total_count"`
	Verdicts         []learning.WordVerdict    `yaml:"verdicts"`
	SkippedWords     []string                  `yaml:"skipped_words,omitempty"`
	Results          []learning.WordTestResult `yaml:"results"`
}

// FailedResults returns the incorrect answers in the order given.
func (r SessionReport) FailedResults() []learning.WordTestResult {
	var failed []learning.WordTestResult
	for _, result := range r.Results {
		if !result.IsCorrect {
			failed = append(failed, result)
		}
	}
	return failed
}

// FromState builds the report of a Completed state.
func FromState(state coordinator.State) (SessionReport, error) {
	if state.Phase != coordinator.PhaseCompleted || state.Outcome == nil {
		return SessionReport{}, ErrNoOutcome
	}
	outcome := state.Outcome
	return SessionReport{
		SessionID:        outcome.SessionID,
		PlanID:           outcome.PlanID,
		IsNewWordSession: outcome.IsNewWordSession,
		StartTime:        state.Session.StartTime,
		Accuracy:         outcome.Accuracy,
		CorrectCount:     outcome.CorrectCount,
		TotalCount:       outcome.TotalCount,
		Verdicts:         outcome.Verdicts,
		SkippedWords:     outcome.SkippedWords,
		Results:          state.Session.Results,
	}, nil
}

// Paths are the files written for one report.
type Paths struct {
	YAML     string
	Markdown string
	// PDF is empty until WritePDF runs.
	PDF string
}

type Writer struct {
	directory string
	template  *template.Template
}

// NewWriter creates a Writer saving into directory. An empty or unreadable
// templatePath falls back to the embedded template.
func NewWriter(directory, templatePath string) (*Writer, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return nil, err
	}
	return &Writer{
		directory: directory,
		template:  tmpl,
	}, nil
}

func parseTemplate(templatePath string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
		"percent": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},
	}

	if templatePath != "" {
		tmpl, err := template.New(filepath.Base(templatePath)).
			Funcs(funcMap).
			ParseFiles(templatePath)
		if err == nil {
			return tmpl, nil
		}
		slog.Default().Warn("failed to parse the report template, using the default one",
			slog.String("templatePath", templatePath),
			slog.Any("error", err),
		)
	}

	tmpl, err := template.New(fallbackTemplateName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// Write saves report as YAML and Markdown files named after its start time
// and session ID.
func (w *Writer) Write(report SessionReport) (Paths, error) {
	if err := os.MkdirAll(w.directory, 0755); err != nil {
		return Paths{}, fmt.Errorf("os.MkdirAll(%s) > %w", w.directory, err)
	}
	base := filepath.Join(w.directory, fmt.Sprintf("%s-%s",
		report.StartTime.Format("20060102-150405"),
		report.SessionID.String()[:8],
	))
	paths := Paths{
		YAML:     base + ".yml",
		Markdown: base + ".md",
	}

	if err := writeYAML(paths.YAML, report); err != nil {
		return Paths{}, err
	}
	if err := w.writeMarkdown(paths.Markdown, report); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

func writeYAML(path string, report SessionReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	return nil
}

func (w *Writer) writeMarkdown(path string, report SessionReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := w.template.Execute(file, report); err != nil {
		return fmt.Errorf("template.Execute() > %w", err)
	}
	return nil
}

// ReadYAML loads a report written by Write.
func ReadYAML(path string) (SessionReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SessionReport{}, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var report SessionReport
	if err := yaml.Unmarshal(content, &report); err != nil {
		return SessionReport{}, fmt.Errorf("yaml.Unmarshal() > %w", err)
	}
	return report, nil
}
