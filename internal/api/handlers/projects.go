package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Greggwolin/landscape-sub003/internal/api/request"
	"github.com/Greggwolin/landscape-sub003/internal/api/response"
	"github.com/Greggwolin/landscape-sub003/internal/apperrors"
	"github.com/Greggwolin/landscape-sub003/internal/service"
	"github.com/Greggwolin/landscape-sub003/internal/validation"
)

// ProjectHandler handles HTTP requests for project endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the projectService.
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler with the provided service dependency.
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Projects handles GET requests to retrieve all projects.
//
// Endpoint: GET /api/project
// Response: 200 OK with array of Project
// Error: 500 Internal Server Error if retrieval fails
func (h *ProjectHandler) Projects(w http.ResponseWriter, _ *http.Request) {
	projects, err := h.projectService.GetAllProjects()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve projects", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET requests to retrieve a single project by ID.
//
// Endpoint: GET /api/project/{uuid}
// Response: 200 OK with Project
// Error: 400 Bad Request if project ID is invalid (validated by middleware)
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	project, err := h.projectService.GetProject(projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve project", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, project)
}

// CreateProject handles POST requests to create a new project.
// Validates the request body, including the embedded waterfall settings.
//
// Endpoint: POST /api/project
// Request Body: CreateProjectRequest (name, description, settings)
// Response: 201 Created with Project
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateProjectRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateProject(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	project, err := h.projectService.CreateProject(req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create project", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, project)
}

// UpdateProject handles PUT requests to update an existing project.
//
// Endpoint: PUT /api/project/{uuid}
// Request Body: UpdateProjectRequest (all fields optional)
// Response: 200 OK with updated Project
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if update fails
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateProjectRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateProject(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	project, err := h.projectService.UpdateProject(projectID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update project", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE requests to remove a project and all its
// dependent records.
//
// Endpoint: DELETE /api/project/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if deletion fails
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	if err := h.projectService.DeleteProject(projectID); err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete project", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Tiers handles GET requests to retrieve a project's tier configuration.
//
// Endpoint: GET /api/project/{uuid}/tiers
// Response: 200 OK with array of WaterfallTierConfig
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ProjectHandler) Tiers(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	tiers, err := h.projectService.GetTiers(projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve tiers", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, tiers)
}

// ReplaceTiers handles PUT requests to replace a project's full tier
// configuration. Tiers are always written as a complete set.
//
// Endpoint: PUT /api/project/{uuid}/tiers
// Request Body: ReplaceTiersRequest
// Response: 200 OK with array of WaterfallTierConfig
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if the write fails
func (h *ProjectHandler) ReplaceTiers(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.ReplaceTiersRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateReplaceTiers(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	tiers, err := h.projectService.ReplaceTiers(projectID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to replace tiers", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, tiers)
}
