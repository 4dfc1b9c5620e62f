package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestParseScheduleTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ScheduleTime
		wantErr bool
	}{
		{"06:30", ScheduleTime{Hour: 6, Minute: 30}, false},
		{"00:00", ScheduleTime{Hour: 0, Minute: 0}, false},
		{"23:59", ScheduleTime{Hour: 23, Minute: 59}, false},
		{"24:00", ScheduleTime{}, true},
		{"12:60", ScheduleTime{}, true},
		{"noon", ScheduleTime{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScheduleTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRunFiresOncePerMinute(t *testing.T) {
	s := &Scheduler{scheduleTimes: []ScheduleTime{{Hour: 6, Minute: 30}}}

	at := time.Date(2026, 8, 30, 6, 30, 0, 0, time.UTC)
	if !s.shouldRun(at) {
		t.Fatal("expected first tick at 06:30 to fire")
	}
	if s.shouldRun(at.Add(20 * time.Second)) {
		t.Error("second tick in the same minute must not fire again")
	}
	if s.shouldRun(time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)) {
		t.Error("unscheduled time must not fire")
	}
	// Same wall time next day fires again
	if !s.shouldRun(at.AddDate(0, 0, 1)) {
		t.Error("expected 06:30 the next day to fire")
	}
}

type countingJob struct {
	mu    sync.Mutex
	runs  int
	errOn int
}

func (j *countingJob) Execute(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs++
	if j.errOn != 0 && j.runs == j.errOn {
		return errors.New("boom")
	}
	return nil
}

func (j *countingJob) UserID() string      { return "1" }
func (j *countingJob) Description() string { return "counting job" }

func TestWorkerPoolProcessesJobs(t *testing.T) {
	pool := NewWorkerPool(3, 0, 10)
	pool.Start()

	job := &countingJob{}
	for i := 0; i < 5; i++ {
		if err := pool.Submit(job); err != nil {
			t.Fatalf("unexpected submit error: %v", err)
		}
	}

	pool.ShutdownWithTimeout(5 * time.Second)

	job.mu.Lock()
	defer job.mu.Unlock()
	if job.runs != 5 {
		t.Errorf("expected 5 runs, got %d", job.runs)
	}
}

func TestWorkerPoolDropsWhenQueueFull(t *testing.T) {
	// No workers started, queue of 1: the second submit must be rejected
	pool := NewWorkerPool(1, 0, 1)

	job := &countingJob{}
	if err := pool.Submit(job); err != nil {
		t.Fatalf("first submit should fit the queue: %v", err)
	}
	if err := pool.Submit(job); err == nil {
		t.Error("expected an error when the queue is full")
	}
}
