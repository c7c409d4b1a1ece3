package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Get returns the active-timer record, or nil when no timer is running.
func (s *Store) Get() (*ActiveTimer, error) {
	var propertyID, startTime string
	err := s.db.QueryRow(`SELECT property_id, start_time FROM active_timer WHERE id = 1`).
		Scan(&propertyID, &startTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active timer: %w", err)
	}
	t := &ActiveTimer{PropertyID: propertyID}
	t.StartTime, _ = time.Parse(time.RFC3339, startTime)
	return t, nil
}

// Set records the active timer. Last write wins; the table holds one row.
func (s *Store) Set(t ActiveTimer) error {
	_, err := s.db.Exec(
		`INSERT INTO active_timer (id, property_id, start_time) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET property_id = excluded.property_id, start_time = excluded.start_time`,
		t.PropertyID, t.StartTime.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set active timer: %w", err)
	}
	return nil
}

// Clear removes the active-timer record. A no-op when none exists.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM active_timer WHERE id = 1`); err != nil {
		return fmt.Errorf("clear active timer: %w", err)
	}
	return nil
}
