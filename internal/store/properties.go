package store

import (
	"database/sql"
	"fmt"
	"time"
)

// LoadAll returns every persisted property with its time entries attached in
// stored list order. A fresh database yields an empty slice, not an error.
func (s *Store) LoadAll() ([]Property, error) {
	rows, err := s.db.Query(
		`SELECT id, name, street, house_number, city, created_at FROM properties ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	defer rows.Close()

	props := []Property{}
	index := map[string]int{}
	for rows.Next() {
		var p Property
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Street, &p.HouseNumber, &p.City, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.TimeEntries = []TimeEntry{}
		index[p.ID] = len(props)
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	entryRows, err := s.db.Query(
		`SELECT property_id, start_time, end_time, duration, date FROM time_entries ORDER BY property_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("load time entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var propertyID, startTime, date string
		var endTime sql.NullString
		var duration sql.NullInt64
		if err := entryRows.Scan(&propertyID, &startTime, &endTime, &duration, &date); err != nil {
			return nil, err
		}
		e := TimeEntry{Date: date}
		e.StartTime, _ = time.Parse(time.RFC3339, startTime)
		if endTime.Valid {
			t, _ := time.Parse(time.RFC3339, endTime.String)
			e.EndTime = &t
		}
		if duration.Valid {
			d := duration.Int64
			e.Duration = &d
		}
		if i, ok := index[propertyID]; ok {
			props[i].TimeEntries = append(props[i].TimeEntries, e)
		}
	}
	return props, entryRows.Err()
}

// SaveAll overwrites the persisted property list with the given one. The
// write is all-or-nothing: no partial-record updates exist at this layer.
func (s *Store) SaveAll(props []Property) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save properties: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM time_entries`); err != nil {
		return fmt.Errorf("clear time entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM properties`); err != nil {
		return fmt.Errorf("clear properties: %w", err)
	}

	for _, p := range props {
		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := tx.Exec(
			`INSERT INTO properties (id, name, street, house_number, city, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Street, p.HouseNumber, p.City, createdAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert property %s: %w", p.ID, err)
		}
		for pos, e := range p.TimeEntries {
			var endTime any
			var duration any
			if e.EndTime != nil {
				endTime = e.EndTime.Format(time.RFC3339)
			}
			if e.Duration != nil {
				duration = *e.Duration
			}
			_, err := tx.Exec(
				`INSERT INTO time_entries (property_id, position, start_time, end_time, duration, date) VALUES (?, ?, ?, ?, ?, ?)`,
				p.ID, pos, e.StartTime.Format(time.RFC3339), endTime, duration, e.Date,
			)
			if err != nil {
				return fmt.Errorf("insert entry for %s: %w", p.ID, err)
			}
		}
	}

	return tx.Commit()
}

// DeleteByID removes one property and, via cascade, all its time entries.
// Deleting an unknown id is a no-op.
func (s *Store) DeleteByID(id string) error {
	if _, err := s.db.Exec(`DELETE FROM properties WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete property %s: %w", id, err)
	}
	return nil
}
