package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blogem/freelancer-oauth/models"
)

// AuditRepository handles auth event persistence
type AuditRepository interface {
	Create(event *models.AuthEvent) error
	RecentByEmail(email string, limit int) ([]models.AuthEvent, error)
}

type sqliteAuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &sqliteAuditRepository{db: db}
}

// Create inserts a new auth event
func (r *sqliteAuditRepository) Create(event *models.AuthEvent) error {
	query := `
		INSERT INTO auth_events (timestamp, user_email, action, user_agent, ip_address)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(
		query,
		time.Now(),
		event.UserEmail,
		event.Action,
		event.UserAgent,
		event.IPAddress,
	)

	return err
}

// RecentByEmail returns the most recent auth events for a user
func (r *sqliteAuditRepository) RecentByEmail(email string, limit int) ([]models.AuthEvent, error) {
	query := `
		SELECT id, timestamp, user_email, action, user_agent, ip_address
		FROM auth_events
		WHERE user_email = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, email, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query auth events: %w", err)
	}
	defer rows.Close()

	var events []models.AuthEvent
	for rows.Next() {
		var event models.AuthEvent
		if err := rows.Scan(
			&event.ID,
			&event.Timestamp,
			&event.UserEmail,
			&event.Action,
			&event.UserAgent,
			&event.IPAddress,
		); err != nil {
			return nil, fmt.Errorf("failed to scan auth event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
