package jobs

import (
	"fmt"
	"time"

	"carrotrent-backend/internal/config"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/metrics"
	"carrotrent-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals repository.RentalRepository
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(rentals repository.RentalRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		rentals: rentals,
		config:  cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery and records the run.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func() error) (err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		metrics.RecordJobRun(jobName, time.Since(start), err == nil)
	}()

	logger.Info("Starting job", "job", jobName)
	if err = jobFunc(); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
	return nil
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() error {
	return jr.ReportOverdueRentals()
}
