package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"centavo/internal/domain/recurring"
)

// RecurringJob materializes one user's due recurring transactions.
type RecurringJob struct {
	userID  int64
	service *recurring.Service
}

// NewRecurringJob creates a materialization job for one user.
func NewRecurringJob(userID int64, service *recurring.Service) *RecurringJob {
	return &RecurringJob{userID: userID, service: service}
}

// Execute creates real transactions for every due entry, one per missed
// period, and advances the schedules.
func (j *RecurringJob) Execute(ctx context.Context) error {
	created, err := j.service.MaterializeDue(ctx, j.userID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recurring materialization failed: %w", err)
	}

	if created > 0 {
		log.Printf("Recurring: created %d transactions for user %d", created, j.userID)
	}
	return nil
}

// UserID returns the user ID associated with this job
func (j *RecurringJob) UserID() string {
	return strconv.FormatInt(j.userID, 10)
}

// Description returns a human-readable description of the job
func (j *RecurringJob) Description() string {
	return fmt.Sprintf("Recurring transaction run for user %d", j.userID)
}

// Refresher is the slice of the rates cache the refresh job needs.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RatesRefreshJob refreshes the exchange rate snapshot so scheduled
// conversions and the next requests use fresh rates.
type RatesRefreshJob struct {
	cache Refresher
}

// NewRatesRefreshJob creates a rate refresh job.
func NewRatesRefreshJob(cache Refresher) *RatesRefreshJob {
	return &RatesRefreshJob{cache: cache}
}

// Execute fetches a new snapshot from the provider.
func (j *RatesRefreshJob) Execute(ctx context.Context) error {
	if err := j.cache.Refresh(ctx); err != nil {
		// Conversions keep serving the previous snapshot until the next run
		return fmt.Errorf("rate refresh failed: %w", err)
	}
	return nil
}

// UserID returns "system"; the job is not user-scoped.
func (j *RatesRefreshJob) UserID() string {
	return "system"
}

// Description returns a human-readable description of the job
func (j *RatesRefreshJob) Description() string {
	return "Exchange rate refresh"
}

// NewJobProvider builds the scheduler's job provider: one rate refresh plus
// one materialization job per user with due entries.
func NewJobProvider(recurringRepo recurring.Repository, recurringService *recurring.Service, cache Refresher) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		jobs := []Job{NewRatesRefreshJob(cache)}

		userIDs, err := recurringRepo.ListUserIDsWithDue(ctx, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("failed to list users with due entries: %w", err)
		}

		for _, userID := range userIDs {
			jobs = append(jobs, NewRecurringJob(userID, recurringService))
		}

		return jobs, nil
	}
}
