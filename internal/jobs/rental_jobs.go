package jobs

import (
	"context"
	"fmt"
	"time"

	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/metrics"
)

const ReportOverdueRentalsJob = "ReportOverdueRentals"

// ReportOverdueRentals logs issued rentals that are past their agreed end
// date and publishes their count. Rental state is never changed.
func (jr *JobRunner) ReportOverdueRentals() error {
	return jr.runWithRecovery(ReportOverdueRentalsJob, func() error {
		ctx := context.Background()
		now := jr.now()

		overdue, err := jr.rentals.ListOverdue(ctx, now)
		if err != nil {
			return fmt.Errorf("list overdue rentals: %w", err)
		}

		for _, rt := range overdue {
			logger.Warn("Rental is overdue",
				"rental_id", rt.ID,
				"client_id", rt.ClientID,
				"vehicle_id", rt.VehicleID,
				"end_date", rt.EndDate,
				"overdue_for", now.Sub(rt.EndDate).Truncate(time.Minute))
		}

		metrics.SetOverdueRentals(len(overdue))
		logger.Info("Overdue rentals reported", "count", len(overdue))
		return nil
	})
}
