package service

import (
	"fmt"
	"log"
	"time"

	"kembara/internal/repository"
)

type JobService struct {
	Repo              *repository.JobRepository
	PendingPaymentAge time.Duration
}

func NewJobService(repo *repository.JobRepository, pendingPaymentAge time.Duration) *JobService {
	return &JobService{Repo: repo, PendingPaymentAge: pendingPaymentAge}
}

// CompleteFinishedBookings marks ongoing bookings whose drop time has
// passed as completed.
func (s *JobService) CompleteFinishedBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	bookingIDs, err := s.Repo.OngoingBookingIDsPastDrop()
	if err != nil {
		return fmt.Errorf("cron job: failed to get ongoing bookings past drop time: %w", err)
	}

	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No ongoing bookings found past their drop time.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.UpdateBookingStatuses(bookingIDs, StatusCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}

// ExpireStalePayments fails hitpay payments that stayed pending past the
// configured cutoff, usually abandoned checkouts whose webhook never came.
func (s *JobService) ExpireStalePayments() error {
	cutoff := time.Now().UTC().Add(-s.PendingPaymentAge)
	n, err := s.Repo.ExpireStalePayments(cutoff)
	if err != nil {
		return fmt.Errorf("cron job: failed to expire stale payments: %w", err)
	}
	if n > 0 {
		log.Printf("Cron Job: Marked %d stale pending payments as 'failed'.", n)
	}
	return nil
}
