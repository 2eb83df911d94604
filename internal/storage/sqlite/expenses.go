package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// CreateExpense persists a new expense together with its strategy input and
// merged obligations in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, title, amount, paid_by, strategy, note, category, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Title, expense.Amount.String(), string(expense.PaidBy),
		string(expense.Strategy), nullable(expense.Note), nullable(expense.Category),
		string(expense.CreatedBy), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertExpenseChildren(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateExpense rewrites an expense and all of its child rows, including the
// stored obligations, in one transaction.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET group_id = ?, title = ?, amount = ?, paid_by = ?, strategy = ?, note = ?, category = ?
		 WHERE id = ?`,
		expense.GroupID, expense.Title, expense.Amount.String(), string(expense.PaidBy),
		string(expense.Strategy), nullable(expense.Note), nullable(expense.Category), expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	for _, table := range []string{"expense_participants", "expense_shares", "obligations"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE expense_id = ?", expense.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	// Item involvement rows cascade from the items delete.
	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_items WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear expense_items: %w", err)
	}

	if err := insertExpenseChildren(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertExpenseChildren writes participants, shares, items and obligations
// for an expense inside the caller's transaction.
func insertExpenseChildren(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for i, uid := range expense.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id, position) VALUES (?, ?, ?)",
			expense.ID, string(uid), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i, share := range expense.Shares {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, user_id, amount, weight, position) VALUES (?, ?, ?, ?, ?)",
			expense.ID, string(share.User), share.Amount.String(), share.Weight.String(), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	for i := range expense.Items {
		item := &expense.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_items (id, expense_id, label, amount, paid_by, position) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, expense.ID, item.Label, item.Amount.String(), string(item.PaidBy), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		for _, uid := range item.Involved {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_item_involved (item_id, user_id) VALUES (?, ?)",
				item.ID, string(uid),
			)
			if err != nil {
				return fmt.Errorf("failed to insert item involvement: %w", err)
			}
		}
	}

	for i, o := range expense.Obligations {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO obligations (expense_id, from_user_id, to_user_id, amount, position) VALUES (?, ?, ?, ?, ?)",
			expense.ID, string(o.From), string(o.To), o.Amount.String(), i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert obligation: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense by ID, including strategy input and
// obligations.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := s.scanExpenseRow(ctx, s.db.QueryRowContext(ctx,
		`SELECT id, group_id, title, amount, paid_by, strategy, note, category, created_by, created_at
		 FROM expenses WHERE id = ?`, expenseID,
	))
	if err != nil {
		return nil, err
	}
	if err := s.loadExpenseChildren(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, title, amount, paid_by, strategy, note, category, created_by, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := s.scanExpenseRow(ctx, rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadExpenseChildren(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// DeleteExpense removes an expense; child rows cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListObligationsByGroup returns every persisted obligation for expenses in
// the group. Feed for group-scoped aggregation.
func (s *SQLiteStore) ListObligationsByGroup(ctx context.Context, groupID string) ([]models.Obligation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.from_user_id, o.to_user_id, o.amount
		 FROM obligations o JOIN expenses e ON e.id = o.expense_id
		 WHERE e.group_id = ?`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations by group: %w", err)
	}
	return scanObligations(rows)
}

// ListObligationsByUser returns every persisted obligation touching the
// user, across all groups. Feed for user-scoped aggregation.
func (s *SQLiteStore) ListObligationsByUser(ctx context.Context, userID models.UserID) ([]models.Obligation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT from_user_id, to_user_id, amount
		 FROM obligations WHERE from_user_id = ? OR to_user_id = ?`,
		string(userID), string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations by user: %w", err)
	}
	return scanObligations(rows)
}

func scanObligations(rows *sql.Rows) ([]models.Obligation, error) {
	defer rows.Close()
	var obligations []models.Obligation
	for rows.Next() {
		var from, to, amount string
		if err := rows.Scan(&from, &to, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan obligation: %w", err)
		}
		d, err := scanDecimal(amount)
		if err != nil {
			return nil, err
		}
		obligations = append(obligations, models.Obligation{
			From: models.UserID(from), To: models.UserID(to), Amount: d,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate obligations: %w", err)
	}
	return obligations, nil
}

// rowScanner abstracts QueryRow and Rows for shared expense scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanExpenseRow(ctx context.Context, row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount, paidBy, strategy, createdBy string
	var note, category sql.NullString

	err := row.Scan(&expense.ID, &expense.GroupID, &expense.Title, &amount, &paidBy,
		&strategy, &note, &category, &createdBy, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	expense.Amount, err = scanDecimal(amount)
	if err != nil {
		return nil, err
	}
	expense.PaidBy = models.UserID(paidBy)
	expense.Strategy = models.SplitStrategy(strategy)
	expense.CreatedBy = models.UserID(createdBy)
	if note.Valid {
		expense.Note = note.String
	}
	if category.Valid {
		expense.Category = category.String
	}
	return expense, nil
}

func (s *SQLiteStore) loadExpenseChildren(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM expense_participants WHERE expense_id = ? ORDER BY position", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		expense.Participants = append(expense.Participants, models.UserID(uid))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	shareRows, err := s.db.QueryContext(ctx,
		"SELECT user_id, amount, weight FROM expense_shares WHERE expense_id = ? ORDER BY position", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	for shareRows.Next() {
		var uid, amount, weight string
		if err := shareRows.Scan(&uid, &amount, &weight); err != nil {
			shareRows.Close()
			return fmt.Errorf("failed to scan share: %w", err)
		}
		share := models.Share{User: models.UserID(uid)}
		if share.Amount, err = scanDecimal(amount); err != nil {
			shareRows.Close()
			return err
		}
		if share.Weight, err = scanDecimal(weight); err != nil {
			shareRows.Close()
			return err
		}
		expense.Shares = append(expense.Shares, share)
	}
	shareRows.Close()
	if err := shareRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, label, amount, paid_by FROM expense_items WHERE expense_id = ? ORDER BY position", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	for itemRows.Next() {
		var item models.LineItem
		var amount, paidBy string
		if err := itemRows.Scan(&item.ID, &item.Label, &amount, &paidBy); err != nil {
			itemRows.Close()
			return fmt.Errorf("failed to scan item: %w", err)
		}
		if item.Amount, err = scanDecimal(amount); err != nil {
			itemRows.Close()
			return err
		}
		item.PaidBy = models.UserID(paidBy)
		expense.Items = append(expense.Items, item)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	for i := range expense.Items {
		item := &expense.Items[i]
		involvedRows, err := s.db.QueryContext(ctx,
			"SELECT user_id FROM expense_item_involved WHERE item_id = ? ORDER BY user_id", item.ID)
		if err != nil {
			return fmt.Errorf("failed to get item involvement: %w", err)
		}
		for involvedRows.Next() {
			var uid string
			if err := involvedRows.Scan(&uid); err != nil {
				involvedRows.Close()
				return fmt.Errorf("failed to scan item involvement: %w", err)
			}
			item.Involved = append(item.Involved, models.UserID(uid))
		}
		involvedRows.Close()
		if err := involvedRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate item involvement: %w", err)
		}
	}

	obligationRows, err := s.db.QueryContext(ctx,
		"SELECT from_user_id, to_user_id, amount FROM obligations WHERE expense_id = ? ORDER BY position", expense.ID)
	if err != nil {
		return fmt.Errorf("failed to get obligations: %w", err)
	}
	expense.Obligations, err = scanObligations(obligationRows)
	if err != nil {
		return err
	}
	return nil
}

// nullable maps an empty string to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
