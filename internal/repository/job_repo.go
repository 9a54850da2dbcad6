package repository

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// OngoingBookingIDsPastDrop finds ongoing bookings whose drop time has
// passed, candidates for automatic completion.
func (r *JobRepository) OngoingBookingIDsPastDrop() ([]string, error) {
	rows, err := r.DB.Query(`SELECT id FROM bookings WHERE status = 'ongoing' AND drop_datetime < NOW()`)
	if err != nil {
		return nil, fmt.Errorf("error querying ongoing bookings past drop time: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) UpdateBookingStatuses(ids []string, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.Exec(
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d bookings to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// ExpireStalePayments fails hitpay payments that stayed pending past the
// cutoff. No booking cascade, matching the webhook failed path.
func (r *JobRepository) ExpireStalePayments(before time.Time) (int64, error) {
	result, err := r.DB.Exec(
		`UPDATE payments SET status = 'failed' WHERE status = 'pending' AND method = 'hitpay' AND created_at < $1`,
		before)
	if err != nil {
		return 0, fmt.Errorf("error expiring stale payments: %w", err)
	}
	return result.RowsAffected()
}
