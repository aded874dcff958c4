package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Greggwolin/landscape-sub003/internal/model"
)

// MaterializedRepository provides data access methods for the waterfall_period_materialized table.
type MaterializedRepository struct {
	db *sql.DB
}

// NewMaterializedRepository creates a new repository instance.
func NewMaterializedRepository(db *sql.DB) *MaterializedRepository {
	return &MaterializedRepository{db: db}
}

// GetMaterializedPeriods retrieves pre-calculated waterfall periods for a project.
// This method streams results using a callback pattern to minimize memory usage.
//
// The materialized table contains per-period waterfall results that have been
// pre-calculated and stored, eliminating the need to re-run the engine on each
// read request.
//
// The callback pattern allows the caller to process records one at a time
// without loading the entire result set into memory, which is efficient for
// projects with long cash flow histories.
//
// Returns an error if the query fails or if the callback returns an error during processing.
func (r *MaterializedRepository) GetMaterializedPeriods(
	projectID string,
	callback func(record model.WaterfallPeriodMaterialized) error,
) error {

	query := `
		SELECT id, project_id, period_id, date, net_cash_flow, cumulative_cash_flow,
		       lp_contribution, gp_contribution, lp_distribution, gp_distribution,
		       lp_irr, gp_irr, calculated_at
		FROM waterfall_period_materialized
		WHERE project_id = ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return fmt.Errorf("failed to query waterfall_period_materialized: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record model.WaterfallPeriodMaterialized
		var dateStr, calculatedAtStr string
		var netStr, cumStr, lpContribStr, gpContribStr, lpDistStr, gpDistStr string
		var lpIRR, gpIRR sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.ProjectID,
			&record.PeriodID,
			&dateStr,
			&netStr,
			&cumStr,
			&lpContribStr,
			&gpContribStr,
			&lpDistStr,
			&gpDistStr,
			&lpIRR,
			&gpIRR,
			&calculatedAtStr,
		)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		record.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}

		record.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		if record.NetCashFlow, err = ParseDecimal(netStr); err != nil {
			return err
		}
		if record.CumulativeCashFlow, err = ParseDecimal(cumStr); err != nil {
			return err
		}
		if record.LPContribution, err = ParseDecimal(lpContribStr); err != nil {
			return err
		}
		if record.GPContribution, err = ParseDecimal(gpContribStr); err != nil {
			return err
		}
		if record.LPDistribution, err = ParseDecimal(lpDistStr); err != nil {
			return err
		}
		if record.GPDistribution, err = ParseDecimal(gpDistStr); err != nil {
			return err
		}
		if record.LPIRR, err = ParseNullDecimal(lpIRR); err != nil {
			return err
		}
		if record.GPIRR, err = ParseNullDecimal(gpIRR); err != nil {
			return err
		}

		if err := callback(record); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// ReplaceMaterializedPeriods replaces the materialized period set for a
// project in one transaction. A refresh is always a full rewrite because any
// cash flow change can alter every later period.
func (r *MaterializedRepository) ReplaceMaterializedPeriods(projectID string, records []model.WaterfallPeriodMaterialized) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec("DELETE FROM waterfall_period_materialized WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("failed to delete from waterfall_period_materialized: %w", err)
	}

	query := `
		INSERT INTO waterfall_period_materialized (
			id, project_id, period_id, date, net_cash_flow, cumulative_cash_flow,
			lp_contribution, gp_contribution, lp_distribution, gp_distribution,
			lp_irr, gp_irr, calculated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, record := range records {
		_, err := tx.Exec(query,
			record.ID,
			projectID,
			record.PeriodID,
			record.Date.Format("2006-01-02"),
			record.NetCashFlow.String(),
			record.CumulativeCashFlow.String(),
			record.LPContribution.String(),
			record.GPContribution.String(),
			record.LPDistribution.String(),
			record.GPDistribution.String(),
			NullDecimalString(record.LPIRR),
			NullDecimalString(record.GPIRR),
			record.CalculatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert into waterfall_period_materialized: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit materialized transaction: %w", err)
	}

	return nil
}
