package provision

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/captainpacket/fwd/internal/models"
)

const (
	// DefaultConcurrency bounds the number of accounts worked on at once.
	// Keeps a large organization from triggering an IAM rate-limit storm.
	DefaultConcurrency = 16

	// taskTimeout caps how long one account's task may run. A hung remote
	// call becomes a categorized failure for that account only.
	taskTimeout = 2 * time.Minute
)

// AccountFunc performs one operation inside one account and returns its
// outcome. Implementations must not panic across accounts; any error
// belongs in the returned outcome.
type AccountFunc func(ctx context.Context, account models.Account) models.AccountOutcome

// Orchestrator fans an operation out over all accounts with bounded
// concurrency and collects exactly one outcome per account.
type Orchestrator struct {
	Concurrency int
}

func NewOrchestrator(concurrency int) *Orchestrator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{Concurrency: concurrency}
}

// RunForEachAccount runs fn once per account. Tasks run concurrently; a
// failure in one account never cancels another. The call returns after
// every task has finished, with outcomes sorted by account ID so output is
// reproducible regardless of completion order.
func (o *Orchestrator) RunForEachAccount(ctx context.Context, accounts []models.Account, fn AccountFunc) []models.AccountOutcome {
	outcomes := make([]models.AccountOutcome, len(accounts))

	sem := make(chan struct{}, o.Concurrency)
	var wg sync.WaitGroup

	for i, account := range accounts {
		wg.Add(1)
		go func(slot int, account models.Account) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				outcomes[slot] = models.AccountOutcome{Account: account, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
			defer cancel()

			outcomes[slot] = fn(taskCtx, account)
		}(i, account)
	}
	wg.Wait()

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Account.ID < outcomes[j].Account.ID
	})
	return outcomes
}
