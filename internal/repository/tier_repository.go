package repository

import (
	"database/sql"
	"fmt"

	"github.com/Greggwolin/landscape-sub003/internal/model"
)

// TierRepository provides data access methods for the waterfall_tier table.
type TierRepository struct {
	db *sql.DB
}

// NewTierRepository creates a new TierRepository with the provided database connection.
func NewTierRepository(db *sql.DB) *TierRepository {
	return &TierRepository{db: db}
}

// GetTiersOnProjectID retrieves all tiers for a project ordered by tier number.
// Returns an empty slice for a project with no configured tiers.
func (s *TierRepository) GetTiersOnProjectID(projectID string) ([]model.WaterfallTierConfig, error) {
	query := `
          SELECT id, project_id, tier_number, tier_name,
                 irr_hurdle, emx_hurdle, lp_split_pct, gp_split_pct
          FROM waterfall_tier
          WHERE project_id = ?
          ORDER BY tier_number
      `
	rows, err := s.db.Query(query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query waterfall_tier table: %w", err)
	}
	defer rows.Close()

	tiers := []model.WaterfallTierConfig{}

	for rows.Next() {
		var t model.WaterfallTierConfig
		var irrHurdle, emxHurdle sql.NullString
		var lpSplit, gpSplit string

		err := rows.Scan(
			&t.ID,
			&t.ProjectID,
			&t.TierNumber,
			&t.TierName,
			&irrHurdle,
			&emxHurdle,
			&lpSplit,
			&gpSplit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waterfall_tier table results: %w", err)
		}

		if t.IRRHurdle, err = ParseNullDecimal(irrHurdle); err != nil {
			return nil, err
		}
		if t.EMxHurdle, err = ParseNullDecimal(emxHurdle); err != nil {
			return nil, err
		}
		if t.LPSplitPct, err = ParseDecimal(lpSplit); err != nil {
			return nil, err
		}
		if t.GPSplitPct, err = ParseDecimal(gpSplit); err != nil {
			return nil, err
		}

		tiers = append(tiers, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating waterfall_tier table: %w", err)
	}

	return tiers, nil
}

// ReplaceTiers replaces the full tier configuration for a project in one
// transaction. Tier configuration is always written as a set because the
// engine validates tiers as a whole.
func (s *TierRepository) ReplaceTiers(projectID string, tiers []model.WaterfallTierConfig) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec("DELETE FROM waterfall_tier WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("failed to delete from waterfall_tier table: %w", err)
	}

	query := `
          INSERT INTO waterfall_tier (
              id, project_id, tier_number, tier_name,
              irr_hurdle, emx_hurdle, lp_split_pct, gp_split_pct
          ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
      `
	for _, t := range tiers {
		_, err := tx.Exec(query,
			t.ID,
			projectID,
			t.TierNumber,
			t.TierName,
			NullDecimalString(t.IRRHurdle),
			NullDecimalString(t.EMxHurdle),
			t.LPSplitPct.String(),
			t.GPSplitPct.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert into waterfall_tier table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit waterfall_tier transaction: %w", err)
	}

	return nil
}
