package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Greggwolin/landscape-sub003/internal/api/handlers"
	"github.com/Greggwolin/landscape-sub003/internal/model"
	"github.com/Greggwolin/landscape-sub003/internal/testutil"
)

func TestProjectHandler_CreateProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewProjectHandler(testutil.NewTestProjectService(t, db))

	t.Run("creates a project from a valid request", func(t *testing.T) {
		body := `{
			"name": "Sunset Ridge",
			"description": "Phase 1",
			"settings": {
				"hurdleMethod": "irr",
				"numTiers": 2,
				"returnOfCapital": "lp_first",
				"lpOwnership": 0.9,
				"preferredReturnPct": 8
			}
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/project", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.CreateProject(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var project model.Project
		if err := json.NewDecoder(w.Body).Decode(&project); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if project.ID == "" {
			t.Error("Expected a generated project ID")
		}
		if project.Settings.HurdleMethod != model.HurdleIRR {
			t.Errorf("Expected hurdle method irr, got %s", project.Settings.HurdleMethod)
		}

		testutil.AssertRowCount(t, db, "project", 1)
	})

	t.Run("rejects invalid settings", func(t *testing.T) {
		body := `{
			"name": "Bad Settings",
			"settings": {
				"hurdleMethod": "npv",
				"numTiers": 9,
				"returnOfCapital": "lp_first",
				"lpOwnership": 0.9,
				"preferredReturnPct": 8
			}
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/project", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.CreateProject(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		body := `{"name": "Typo", "setings": {}}`
		req := httptest.NewRequest(http.MethodPost, "/api/project", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.CreateProject(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestProjectHandler_ReplaceTiers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewProjectHandler(testutil.NewTestProjectService(t, db))

	t.Run("replaces the tier set", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)
		testutil.NewTier(project.ID, 1).Build(t, db)

		body := `{
			"tiers": [
				{"tierNumber": 1, "tierName": "Pref", "lpSplitPct": 90, "gpSplitPct": 10},
				{"tierNumber": 2, "tierName": "Residual", "lpSplitPct": 70, "gpSplitPct": 30}
			]
		}`
		req := testutil.NewRequestWithBody(
			http.MethodPut,
			"/api/project/"+project.ID+"/tiers",
			body,
			map[string]string{"uuid": project.ID},
		)
		w := httptest.NewRecorder()
		handler.ReplaceTiers(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "waterfall_tier", 2)
	})

	t.Run("rejects non-contiguous tier numbers", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)

		body := `{
			"tiers": [
				{"tierNumber": 1, "lpSplitPct": 90, "gpSplitPct": 10},
				{"tierNumber": 3, "lpSplitPct": 70, "gpSplitPct": 30}
			]
		}`
		req := testutil.NewRequestWithBody(
			http.MethodPut,
			"/api/project/"+project.ID+"/tiers",
			body,
			map[string]string{"uuid": project.ID},
		)
		w := httptest.NewRecorder()
		handler.ReplaceTiers(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestCashFlowHandler(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := handlers.NewCashFlowHandler(testutil.NewTestCashFlowService(t, db))

	t.Run("creates a cash flow", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)

		body := `{"periodId": 1, "date": "2023-01-15", "amount": -1000000}`
		req := testutil.NewRequestWithBody(
			http.MethodPost,
			"/api/project/"+project.ID+"/cashflow",
			body,
			map[string]string{"uuid": project.ID},
		)
		w := httptest.NewRecorder()
		handler.CreateCashFlow(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)

		body := `{"periodId": 1, "date": "2023-01-15", "amount": 0}`
		req := testutil.NewRequestWithBody(
			http.MethodPost,
			"/api/project/"+project.ID+"/cashflow",
			body,
			map[string]string{"uuid": project.ID},
		)
		w := httptest.NewRecorder()
		handler.CreateCashFlow(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 409 for a duplicate period", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)
		testutil.NewCashFlow(project.ID, 1).Build(t, db)

		body := `{"periodId": 1, "date": "2023-02-15", "amount": 500}`
		req := testutil.NewRequestWithBody(
			http.MethodPost,
			"/api/project/"+project.ID+"/cashflow",
			body,
			map[string]string{"uuid": project.ID},
		)
		w := httptest.NewRecorder()
		handler.CreateCashFlow(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}
