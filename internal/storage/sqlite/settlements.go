package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, group_id, from_user_id, to_user_id, amount, note, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.GroupID, string(settlement.From), string(settlement.To),
		settlement.Amount.String(), nullable(settlement.Note), string(settlement.CreatedBy), settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, note, created_by, created_at
		 FROM settlements WHERE group_id = ? ORDER BY created_at DESC, id`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by group: %w", err)
	}
	return scanSettlements(rows)
}

// ListSettlementsByUser retrieves all settlements touching the user, across
// all groups.
func (s *SQLiteStore) ListSettlementsByUser(ctx context.Context, userID models.UserID) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_user_id, to_user_id, amount, note, created_by, created_at
		 FROM settlements WHERE from_user_id = ? OR to_user_id = ? ORDER BY created_at DESC, id`,
		string(userID), string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by user: %w", err)
	}
	return scanSettlements(rows)
}

func scanSettlements(rows *sql.Rows) ([]*models.Settlement, error) {
	defer rows.Close()
	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var from, to, amount, createdBy string
		var note sql.NullString

		if err := rows.Scan(&settlement.ID, &settlement.GroupID, &from, &to,
			&amount, &note, &createdBy, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		settlement.From = models.UserID(from)
		settlement.To = models.UserID(to)
		settlement.CreatedBy = models.UserID(createdBy)
		d, err := scanDecimal(amount)
		if err != nil {
			return nil, err
		}
		settlement.Amount = d
		if note.Valid {
			settlement.Note = note.String
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}
