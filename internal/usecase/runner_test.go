package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/greeting-action/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the stats fetch without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchRepoStats(ctx context.Context, owner, repo string) (*domain.RepoStats, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RepoStats), args.Error(1)
}

// fakeHost is an in-memory implementation of the actions.Host interface
// that records everything the orchestrator does to it.
type fakeHost struct {
	inputs    map[string]string
	owner     string
	repo      string
	repoOK    bool
	outputErr error

	infos     []string
	warnings  []string
	outputs   map[string]string
	masks     []string
	summary   [][2]string
	failedMsg string
	failed    bool
}

func newFakeHost(inputs map[string]string) *fakeHost {
	return &fakeHost{
		inputs:  inputs,
		outputs: make(map[string]string),
	}
}

func (h *fakeHost) GetInput(name string) string { return h.inputs[name] }

func (h *fakeHost) GetBoolInput(name string) bool {
	switch strings.ToLower(h.GetInput(name)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func (h *fakeHost) Infof(format string, args ...any) {
	h.infos = append(h.infos, fmt.Sprintf(format, args...))
}

func (h *fakeHost) Warningf(format string, args ...any) {
	h.warnings = append(h.warnings, fmt.Sprintf(format, args...))
}

func (h *fakeHost) SetOutput(name, value string) error {
	if h.outputErr != nil {
		return h.outputErr
	}
	h.outputs[name] = value
	return nil
}

func (h *fakeHost) AddMask(value string) { h.masks = append(h.masks, value) }

func (h *fakeHost) WriteSummary(rows [][2]string) { h.summary = rows }

func (h *fakeHost) SetFailed(message string) {
	h.failed = true
	h.failedMsg = message
}

func (h *fakeHost) Failed() bool { return h.failed }

func (h *fakeHost) Repo() (string, string, bool) { return h.owner, h.repo, h.repoOK }

// newTestRunner wires a Runner with a fixed clock and a discarded debug logger.
func newTestRunner(host *fakeHost, fetcher *mockFetcher) *Runner {
	runner := NewRunner(host, fetcher, log.New(io.Discard, "", 0))
	runner.clock = func() time.Time {
		return time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	return runner
}

func TestRunner_Run_GreetingOnly(t *testing.T) {
	host := newFakeHost(map[string]string{
		"who-to-greet":   "World",
		"message-prefix": "Hello",
	})
	fetcher := new(mockFetcher)
	runner := newTestRunner(host, fetcher)

	runner.Run(context.Background())

	assert.False(t, host.Failed())
	assert.Equal(t, "Hello, World!", host.outputs["message"])
	assert.NotContains(t, host.outputs, "time")
	assert.NotContains(t, host.outputs, "repo-stats")
	fetcher.AssertNotCalled(t, "FetchRepoStats")

	assert.Contains(t, host.infos, "Token provided: No")
	assert.Contains(t, host.infos, "Action completed successfully")
	assert.Equal(t, [][2]string{{"Greeting", "Hello, World!"}}, host.summary)
	assert.Equal(t, []string{"my-secret-value"}, host.masks)
}

func TestRunner_Run_Defaults(t *testing.T) {
	host := newFakeHost(nil)
	runner := newTestRunner(host, new(mockFetcher))

	runner.Run(context.Background())

	assert.False(t, host.Failed())
	assert.Equal(t, "Hello, World!", host.outputs["message"])
}

func TestRunner_Run_IncludeTime(t *testing.T) {
	testCases := []struct {
		name       string
		value      string
		expectTime bool
	}{
		{"spelled true", "true", true},
		{"numeric truthy", "1", true},
		{"yes is truthy", "yes", true},
		{"false stays off", "false", false},
		{"unset stays off", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			host := newFakeHost(map[string]string{"include-time": tc.value})
			runner := newTestRunner(host, new(mockFetcher))

			runner.Run(context.Background())

			assert.False(t, host.Failed())
			if tc.expectTime {
				assert.Equal(t, "2023-01-01T12:00:00.000Z", host.outputs["time"])
				assert.Contains(t, host.summary, [2]string{"Timestamp", "2023-01-01T12:00:00.000Z"})
			} else {
				assert.NotContains(t, host.outputs, "time")
			}
		})
	}
}

func TestRunner_Run_FetchesStats(t *testing.T) {
	host := newFakeHost(map[string]string{"github-token": "ghp_test"})
	host.owner, host.repo, host.repoOK = "octocat", "hello-world", true

	stats := &domain.RepoStats{
		Name:     "octocat/hello-world",
		Stars:    42,
		Forks:    7,
		Issues:   3,
		Language: "Go",
		Size:     128,
		Created:  "2023-01-01T10:00:00Z",
		Updated:  "2023-06-15T08:30:00Z",
	}
	fetcher := new(mockFetcher)
	fetcher.On("FetchRepoStats", mock.Anything, "octocat", "hello-world").Return(stats, nil).Once()

	runner := newTestRunner(host, fetcher)
	runner.Run(context.Background())

	assert.False(t, host.Failed())
	assert.Contains(t, host.infos, "Token provided: Yes")

	// The published output must round-trip back into the original record.
	var decoded domain.RepoStats
	require.NoError(t, json.Unmarshal([]byte(host.outputs["repo-stats"]), &decoded))
	assert.Equal(t, *stats, decoded)

	assert.Contains(t, host.summary, [2]string{"Repository", "octocat/hello-world"})
	assert.Contains(t, host.summary, [2]string{"Stars", "42"})
	assert.Contains(t, host.summary, [2]string{"Open Issues", "3"})
	fetcher.AssertExpectations(t)
}

func TestRunner_Run_FetchFailureDegrades(t *testing.T) {
	host := newFakeHost(map[string]string{"github-token": "ghp_test"})
	host.owner, host.repo, host.repoOK = "octocat", "hello-world", true

	fetcher := new(mockFetcher)
	fetcher.On("FetchRepoStats", mock.Anything, "octocat", "hello-world").
		Return(nil, errors.New("api rate limit exceeded")).Once()

	runner := newTestRunner(host, fetcher)
	runner.Run(context.Background())

	// The run continues and succeeds with absent stats.
	assert.False(t, host.Failed())
	assert.Equal(t, "Hello, World!", host.outputs["message"])
	assert.NotContains(t, host.outputs, "repo-stats")

	require.Len(t, host.warnings, 1)
	assert.Contains(t, host.warnings[0], "api rate limit exceeded")

	assert.Equal(t, [][2]string{{"Greeting", "Hello, World!"}}, host.summary)
	fetcher.AssertExpectations(t)
}

func TestRunner_Run_SkipsFetchWithoutPreconditions(t *testing.T) {
	testCases := []struct {
		name   string
		token  string
		repoOK bool
	}{
		{"no token", "", true},
		{"no repository identity", "ghp_test", false},
		{"neither", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			host := newFakeHost(map[string]string{"github-token": tc.token})
			host.owner, host.repo, host.repoOK = "octocat", "hello-world", tc.repoOK
			fetcher := new(mockFetcher)

			runner := newTestRunner(host, fetcher)
			runner.Run(context.Background())

			assert.False(t, host.Failed())
			assert.NotContains(t, host.outputs, "repo-stats")
			fetcher.AssertNotCalled(t, "FetchRepoStats")
		})
	}
}

func TestRunner_Run_NilFetcher(t *testing.T) {
	host := newFakeHost(map[string]string{"github-token": "ghp_test"})
	host.owner, host.repo, host.repoOK = "octocat", "hello-world", true

	runner := NewRunner(host, nil, log.New(io.Discard, "", 0))
	runner.Run(context.Background())

	assert.False(t, host.Failed())
	assert.NotContains(t, host.outputs, "repo-stats")
}

func TestRunner_Run_OutputFailureReportsFailure(t *testing.T) {
	host := newFakeHost(nil)
	host.outputErr = errors.New("Test error")

	runner := newTestRunner(host, new(mockFetcher))

	// Must not panic and must not propagate the error.
	assert.NotPanics(t, func() {
		runner.Run(context.Background())
	})

	assert.True(t, host.Failed())
	assert.Equal(t, "Action failed with error: Test error", host.failedMsg)
	// The failure aborts the remaining steps.
	assert.Empty(t, host.masks)
	assert.Nil(t, host.summary)
}
