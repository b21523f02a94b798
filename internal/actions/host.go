// Package actions adapts the process to its hosting platform: GitHub
// Actions when running on a runner, plain console output otherwise.
// It covers input resolution, workflow-command logging, output and
// step-summary publication, and the ambient repository identity.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Host defines the behavior the run orchestrator needs from the hosting
// platform. The concrete implementation talks to a real Actions runner;
// tests substitute a fake.
type Host interface {
	GetInput(name string) string
	GetBoolInput(name string) bool
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	SetOutput(name, value string) error
	AddMask(value string)
	WriteSummary(rows [][2]string)
	SetFailed(message string)
	Failed() bool
	Repo() (owner, repo string, ok bool)
}

// Delimiter for multiline values in the GITHUB_OUTPUT file format.
const outputDelimiter = "ghadelimiter"

// GitHubHost is the concrete implementation of the Host interface.
// All of its ambient dependencies (environment, log writer, sink file
// paths) are captured as fields so runs stay reproducible in tests.
type GitHubHost struct {
	inputs      map[string]string
	getenv      func(string) string
	log         io.Writer
	outputPath  string
	summaryPath string
	failed      bool
}

// NewHost creates a host wired to the real process environment.
// The inputs map is the structured parameter store consulted before the
// INPUT_* environment fallback; nil means environment-only resolution.
func NewHost(inputs map[string]string) *GitHubHost {
	return &GitHubHost{
		inputs:      inputs,
		getenv:      os.Getenv,
		log:         os.Stdout,
		outputPath:  os.Getenv("GITHUB_OUTPUT"),
		summaryPath: os.Getenv("GITHUB_STEP_SUMMARY"),
	}
}

// GetInput resolves a named input: the structured store first, then the
// environment variable INPUT_<UPPER_SNAKE>. Returns the empty string
// when neither source has a value; it never fails.
func (h *GitHubHost) GetInput(name string) string {
	if v, ok := h.inputs[name]; ok && v != "" {
		return v
	}
	return h.getenv(inputEnvName(name))
}

// GetBoolInput reports whether the resolved input is one of the
// accepted truthy spellings: "true", "1" or "yes", case-insensitive.
func (h *GitHubHost) GetBoolInput(name string) bool {
	switch strings.ToLower(h.GetInput(name)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// inputEnvName maps an input name to its environment fallback,
// e.g. "who-to-greet" -> "INPUT_WHO_TO_GREET".
func inputEnvName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return "INPUT_" + strings.ToUpper(name)
}

// Infof writes a plain informational line to the host log.
func (h *GitHubHost) Infof(format string, args ...any) {
	fmt.Fprintf(h.log, format+"\n", args...)
}

// Warningf emits a non-fatal warning workflow command.
func (h *GitHubHost) Warningf(format string, args ...any) {
	fmt.Fprintf(h.log, "::warning::%s\n", escapeData(fmt.Sprintf(format, args...)))
}

// AddMask registers a value with the runner's secret redaction, so the
// value is scrubbed from any subsequent log output.
func (h *GitHubHost) AddMask(value string) {
	fmt.Fprintf(h.log, "::add-mask::%s\n", escapeData(value))
}

// SetFailed reports the run as failed through the host and records the
// terminal failure state. It does not terminate the process.
func (h *GitHubHost) SetFailed(message string) {
	h.failed = true
	fmt.Fprintf(h.log, "::error::%s\n", escapeData(message))
}

// Failed reports whether SetFailed has been called during this run.
func (h *GitHubHost) Failed() bool {
	return h.failed
}

// SetOutput publishes a named output by appending to the GITHUB_OUTPUT
// file. When no output file is configured (local, non-hosted runs) the
// output is written as a log line instead.
func (h *GitHubHost) SetOutput(name, value string) error {
	if h.outputPath == "" {
		h.Infof("Output %s: %s", name, value)
		return nil
	}
	f, err := os.OpenFile(h.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s=%s\n", name, value)
	if strings.Contains(value, "\n") {
		// Multiline values use the heredoc form of the output file format.
		line = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, outputDelimiter, value, outputDelimiter)
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write output %q: %w", name, err)
	}
	return nil
}

// WriteSummary renders the given Field/Value rows as a markdown table
// into the step summary sink. If the sink is unavailable or the write
// fails, each row is written as a plain log line instead; the summary
// itself never fails the run.
func (h *GitHubHost) WriteSummary(rows [][2]string) {
	if h.summaryPath != "" && h.writeSummaryFile(rows) == nil {
		return
	}
	for _, row := range rows {
		h.Infof("%s: %s", row[0], row[1])
	}
}

func (h *GitHubHost) writeSummaryFile(rows [][2]string) error {
	var b strings.Builder
	b.WriteString("| Field | Value |\n")
	b.WriteString("| --- | --- |\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
	}
	f, err := os.OpenFile(h.summaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Repo returns the owner and name of the repository this run executes
// for, derived from the ambient GITHUB_REPOSITORY variable. ok is false
// when the variable is unset or not of the owner/name form.
func (h *GitHubHost) Repo() (string, string, bool) {
	owner, repo, found := strings.Cut(h.getenv("GITHUB_REPOSITORY"), "/")
	if !found || owner == "" || repo == "" {
		return "", "", false
	}
	return owner, repo, true
}

// escapeData encodes the characters the workflow command syntax
// reserves for message data.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
