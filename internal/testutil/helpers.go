package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/Greggwolin/landscape-sub003/internal/repository"
	"github.com/Greggwolin/landscape-sub003/internal/service"
)

// NewTestProjectService wires a ProjectService against the given test database.
func NewTestProjectService(t *testing.T, db *sql.DB) *service.ProjectService {
	t.Helper()

	projectRepo := repository.NewProjectRepository(db)
	tierRepo := repository.NewTierRepository(db)

	return service.NewProjectService(
		projectRepo,
		tierRepo,
	)
}

// NewTestCashFlowService wires a CashFlowService against the given test database.
func NewTestCashFlowService(t *testing.T, db *sql.DB) *service.CashFlowService {
	t.Helper()

	projectRepo := repository.NewProjectRepository(db)
	cashFlowRepo := repository.NewCashFlowRepository(db)

	return service.NewCashFlowService(
		projectRepo,
		cashFlowRepo,
	)
}

// NewTestWaterfallService wires a WaterfallService against the given test database.
func NewTestWaterfallService(t *testing.T, db *sql.DB) *service.WaterfallService {
	t.Helper()

	projectRepo := repository.NewProjectRepository(db)
	tierRepo := repository.NewTierRepository(db)
	cashFlowRepo := repository.NewCashFlowRepository(db)

	return service.NewWaterfallService(
		projectRepo,
		tierRepo,
		cashFlowRepo,
	)
}

// NewTestMaterializedService wires a MaterializedService against the given test database.
func NewTestMaterializedService(t *testing.T, db *sql.DB) *service.MaterializedService {
	t.Helper()

	projectRepo := repository.NewProjectRepository(db)
	materializedRepo := repository.NewMaterializedRepository(db)

	return service.NewMaterializedService(
		projectRepo,
		materializedRepo,
		NewTestWaterfallService(t, db),
	)
}

// MakeID generates a random UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeProjectName generates a unique project name for testing.
func MakeProjectName(base string) string {
	if base == "" {
		base = "Project"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))] //nolint:gosec // Test helper, not security sensitive
	}
	return string(b)
}
