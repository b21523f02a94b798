// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/naka-gawa/greeting-action/internal/actions"
	"github.com/naka-gawa/greeting-action/internal/domain"
	"github.com/naka-gawa/greeting-action/internal/gateway"
	"github.com/naka-gawa/greeting-action/internal/greeting"
)

// Input defaults applied when neither the parameter store nor the
// environment provides a value.
const (
	defaultSubject = "World"
	defaultPrefix  = "Hello"
)

// demoSecret is registered with the runner's secret redaction on every
// run to demonstrate the masking capability.
const demoSecret = "my-secret-value"

// Runner is the use case that orchestrates a single action run.
// It sequences input resolution, greeting formatting, the optional
// stats fetch, output publication and the step summary.
type Runner struct {
	host    actions.Host
	fetcher gateway.Fetcher
	clock   func() time.Time
	logger  *log.Logger
}

// NewRunner creates a new Runner instance.
func NewRunner(host actions.Host, fetcher gateway.Fetcher, logger *log.Logger) *Runner {
	return &Runner{
		host:    host,
		fetcher: fetcher,
		clock:   time.Now,
		logger:  logger,
	}
}

// Run executes one full action run. Its outward contract is "never
// throws": any step failure aborts the remaining steps and is reported
// through the host's failure mechanism, and Run returns normally. The
// terminal state is observable via the host's Failed method.
func (r *Runner) Run(ctx context.Context) {
	if err := r.run(ctx); err != nil {
		r.host.SetFailed(fmt.Sprintf("Action failed with error: %s", err))
	}
}

func (r *Runner) run(ctx context.Context) error {
	r.logger.Println("Usecase: Starting action run...")

	subject := r.host.GetInput("who-to-greet")
	if subject == "" {
		subject = defaultSubject
	}
	includeTime := r.host.GetBoolInput("include-time")
	prefix := r.host.GetInput("message-prefix")
	if prefix == "" {
		prefix = defaultPrefix
	}
	token := r.host.GetInput("github-token")

	r.host.Infof("Greeting target: %s", subject)
	r.host.Infof("Include time: %t", includeTime)
	r.host.Infof("Message prefix: %s", prefix)
	// The token value itself must never reach a log line.
	tokenProvided := "No"
	if token != "" {
		tokenProvided = "Yes"
	}
	r.host.Infof("Token provided: %s", tokenProvided)

	message := greeting.Format(prefix, subject)
	r.host.Infof("Greeting: %s", message)
	if err := r.host.SetOutput("message", message); err != nil {
		return err
	}

	var timestamp string
	if includeTime {
		timestamp = greeting.Timestamp(r.clock())
		r.host.Infof("Current time: %s", timestamp)
		if err := r.host.SetOutput("time", timestamp); err != nil {
			return err
		}
	}

	stats, err := r.fetchStats(ctx, token)
	if err != nil {
		return err
	}

	r.host.AddMask(demoSecret)

	r.host.WriteSummary(summaryRows(message, timestamp, stats))

	r.host.Infof("Action completed successfully")
	r.logger.Println("Usecase: Run complete.")
	return nil
}

// fetchStats performs the single best-effort stats fetch and publishes
// the repo-stats output. The fetch runs only when a token and a fully
// resolved repository identity are both present; a fetch failure is
// reported as exactly one warning and degrades to absent stats rather
// than failing the run.
func (r *Runner) fetchStats(ctx context.Context, token string) (*domain.RepoStats, error) {
	owner, repo, ok := r.host.Repo()
	if token == "" || !ok || r.fetcher == nil {
		r.logger.Println("Usecase: Skipping stats fetch, token or repository identity absent.")
		return nil, nil
	}

	stats, err := r.fetcher.FetchRepoStats(ctx, owner, repo)
	if err != nil {
		r.host.Warningf("Failed to fetch repo stats: %s", err)
		return nil, nil
	}

	r.host.Infof("Repository %s has %d stars, %d forks and %d open issues",
		stats.Name, stats.Stars, stats.Forks, stats.Issues)
	payload, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal repo stats to JSON: %w", err)
	}
	if err := r.host.SetOutput("repo-stats", string(payload)); err != nil {
		return nil, err
	}
	return stats, nil
}

// summaryRows builds the Field/Value rows of the step summary table.
// Timestamp and stats rows appear only when present.
func summaryRows(message, timestamp string, stats *domain.RepoStats) [][2]string {
	rows := [][2]string{{"Greeting", message}}
	if timestamp != "" {
		rows = append(rows, [2]string{"Timestamp", timestamp})
	}
	if stats != nil {
		rows = append(rows,
			[2]string{"Repository", stats.Name},
			[2]string{"Stars", strconv.Itoa(stats.Stars)},
			[2]string{"Forks", strconv.Itoa(stats.Forks)},
			[2]string{"Open Issues", strconv.Itoa(stats.Issues)},
			[2]string{"Language", stats.Language},
			[2]string{"Size (KB)", strconv.Itoa(stats.Size)},
			[2]string{"Created", stats.Created},
			[2]string{"Updated", stats.Updated},
		)
	}
	return rows
}
