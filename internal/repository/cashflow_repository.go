package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Greggwolin/landscape-sub003/internal/apperrors"
	"github.com/Greggwolin/landscape-sub003/internal/model"
)

// CashFlowRepository provides data access methods for the cash_flow table.
type CashFlowRepository struct {
	db *sql.DB
}

// NewCashFlowRepository creates a new CashFlowRepository with the provided database connection.
func NewCashFlowRepository(db *sql.DB) *CashFlowRepository {
	return &CashFlowRepository{db: db}
}

// GetCashFlowsOnProjectID retrieves all cash flows for a project ordered by date.
// Returns an empty slice for a project with no cash flows.
func (s *CashFlowRepository) GetCashFlowsOnProjectID(projectID string) ([]model.CashFlow, error) {
	query := `
          SELECT id, project_id, period_id, date, amount, created_at
          FROM cash_flow
          WHERE project_id = ?
          ORDER BY date, period_id
      `
	rows, err := s.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash_flow table: %w", err)
	}
	defer rows.Close()

	flows := []model.CashFlow{}

	for rows.Next() {
		cf, err := scanCashFlow(rows)
		if err != nil {
			return nil, err
		}
		flows = append(flows, cf)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash_flow table: %w", err)
	}

	return flows, nil
}

// GetCashFlowOnID retrieves a single cash flow by its UUID.
func (s *CashFlowRepository) GetCashFlowOnID(cashFlowID string) (model.CashFlow, error) {
	query := `
          SELECT id, project_id, period_id, date, amount, created_at
          FROM cash_flow
          WHERE id = ?
      `
	cf, err := scanCashFlow(s.db.QueryRow(query, cashFlowID))
	if err == sql.ErrNoRows {
		return model.CashFlow{}, apperrors.ErrCashFlowNotFound
	}
	if err != nil {
		return model.CashFlow{}, err
	}

	return cf, nil
}

// CreateCashFlow inserts a new cash flow row.
// The unique (project_id, period_id) constraint surfaces as ErrDuplicateEntry.
func (s *CashFlowRepository) CreateCashFlow(cf model.CashFlow) error {
	query := `
          INSERT INTO cash_flow (id, project_id, period_id, date, amount)
          VALUES (?, ?, ?, ?, ?)
      `
	_, err := s.db.Exec(query,
		cf.ID,
		cf.ProjectID,
		cf.PeriodID,
		cf.Date.Format("2006-01-02"),
		cf.Amount.String(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert into cash_flow table: %w", err)
	}

	return nil
}

// UpdateCashFlow updates the period, date and amount of an existing cash flow.
func (s *CashFlowRepository) UpdateCashFlow(cf model.CashFlow) error {
	query := `
          UPDATE cash_flow
          SET period_id = ?, date = ?, amount = ?
          WHERE id = ?
      `
	result, err := s.db.Exec(query,
		cf.PeriodID,
		cf.Date.Format("2006-01-02"),
		cf.Amount.String(),
		cf.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to update cash_flow table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCashFlowNotFound
	}

	return nil
}

// DeleteCashFlow removes a single cash flow row.
func (s *CashFlowRepository) DeleteCashFlow(cashFlowID string) error {
	result, err := s.db.Exec("DELETE FROM cash_flow WHERE id = ?", cashFlowID)
	if err != nil {
		return fmt.Errorf("failed to delete from cash_flow table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCashFlowNotFound
	}

	return nil
}

func scanCashFlow(row scanner) (model.CashFlow, error) {
	var cf model.CashFlow
	var dateStr, amountStr, createdStr string

	err := row.Scan(
		&cf.ID,
		&cf.ProjectID,
		&cf.PeriodID,
		&dateStr,
		&amountStr,
		&createdStr,
	)
	if err == sql.ErrNoRows {
		return model.CashFlow{}, err
	}
	if err != nil {
		return model.CashFlow{}, fmt.Errorf("failed to scan cash_flow table results: %w", err)
	}

	if cf.Date, err = ParseTime(dateStr); err != nil {
		return model.CashFlow{}, err
	}
	if cf.CreatedAt, err = ParseTime(createdStr); err != nil {
		// created_at comes back as "2006-01-02 15:04:05" from sqlite
		cf.CreatedAt, err = ParseSQLiteTimestamp(createdStr)
		if err != nil {
			return model.CashFlow{}, err
		}
	}
	if cf.Amount, err = ParseDecimal(amountStr); err != nil {
		return model.CashFlow{}, err
	}

	return cf, nil
}
