package repository

import (
	"database/sql"
	"fmt"

	"github.com/Greggwolin/landscape-sub003/internal/apperrors"
	"github.com/Greggwolin/landscape-sub003/internal/model"
)

// ProjectRepository provides data access methods for the project table.
// Waterfall settings live on the project row and are loaded with the project.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository with the provided database connection.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetProjects retrieves projects from the database based on filter criteria.
// Returns an empty slice if no projects match.
func (s *ProjectRepository) GetProjects(filter model.ProjectFilter) ([]model.Project, error) {
	query := `
          SELECT id, name, description, is_archived,
                 hurdle_method, num_tiers, return_of_capital, gp_catch_up,
                 lp_ownership, preferred_return_pct
          FROM project
          WHERE 1=1
      `
	var args []any

	if !filter.IncludeArchived {
		query += " AND is_archived = ?"
		args = append(args, 0)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project table: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}

	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project table: %w", err)
	}

	return projects, nil
}

// GetProjectOnID retrieves a single project by its UUID.
func (s *ProjectRepository) GetProjectOnID(projectID string) (model.Project, error) {
	query := `
          SELECT id, name, description, is_archived,
                 hurdle_method, num_tiers, return_of_capital, gp_catch_up,
                 lp_ownership, preferred_return_pct
          FROM project
          WHERE id = ?
      `
	row := s.db.QueryRow(query, projectID)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return model.Project{}, apperrors.ErrProjectNotFound
	}
	if err != nil {
		return model.Project{}, err
	}

	return p, nil
}

// CreateProject inserts a new project row including its waterfall settings.
func (s *ProjectRepository) CreateProject(p model.Project) error {
	query := `
          INSERT INTO project (
              id, name, description, is_archived,
              hurdle_method, num_tiers, return_of_capital, gp_catch_up,
              lp_ownership, preferred_return_pct
          ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
      `
	_, err := s.db.Exec(query,
		p.ID,
		p.Name,
		p.Description,
		p.IsArchived,
		string(p.Settings.HurdleMethod),
		p.Settings.NumTiers,
		string(p.Settings.ReturnOfCapital),
		p.Settings.GPCatchUp,
		p.Settings.LPOwnership.String(),
		p.Settings.PreferredReturnPct.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into project table: %w", err)
	}

	return nil
}

// UpdateProject updates an existing project row including its waterfall settings.
func (s *ProjectRepository) UpdateProject(p model.Project) error {
	query := `
          UPDATE project
          SET name = ?, description = ?, is_archived = ?,
              hurdle_method = ?, num_tiers = ?, return_of_capital = ?, gp_catch_up = ?,
              lp_ownership = ?, preferred_return_pct = ?
          WHERE id = ?
      `
	result, err := s.db.Exec(query,
		p.Name,
		p.Description,
		p.IsArchived,
		string(p.Settings.HurdleMethod),
		p.Settings.NumTiers,
		string(p.Settings.ReturnOfCapital),
		p.Settings.GPCatchUp,
		p.Settings.LPOwnership.String(),
		p.Settings.PreferredReturnPct.String(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// DeleteProject removes a project. Tiers, cash flows and materialized periods
// are removed by the foreign key cascade.
func (s *ProjectRepository) DeleteProject(projectID string) error {
	result, err := s.db.Exec("DELETE FROM project WHERE id = ?", projectID)
	if err != nil {
		return fmt.Errorf("failed to delete from project table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows so project scanning is shared.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (model.Project, error) {
	var p model.Project
	var hurdleMethod, returnOfCapital string
	var lpOwnership, preferredReturn string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.IsArchived,
		&hurdleMethod,
		&p.Settings.NumTiers,
		&returnOfCapital,
		&p.Settings.GPCatchUp,
		&lpOwnership,
		&preferredReturn,
	)
	if err == sql.ErrNoRows {
		return model.Project{}, err
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to scan project table results: %w", err)
	}

	p.Settings.HurdleMethod = model.HurdleMethod(hurdleMethod)
	p.Settings.ReturnOfCapital = model.ReturnOfCapitalOrder(returnOfCapital)

	if p.Settings.LPOwnership, err = ParseDecimal(lpOwnership); err != nil {
		return model.Project{}, err
	}
	if p.Settings.PreferredReturnPct, err = ParseDecimal(preferredReturn); err != nil {
		return model.Project{}, err
	}

	return p, nil
}
