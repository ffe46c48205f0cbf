package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/nkarpov/portfolio-site-backend/cache"
	"github.com/nkarpov/portfolio-site-backend/catalog"
	"github.com/nkarpov/portfolio-site-backend/errs"
	"github.com/nkarpov/portfolio-site-backend/models"
)

// projectStore is the slice of the project repository the handler
// needs. *database.ProjectRepo satisfies it.
type projectStore interface {
	FindAll() ([]*models.Project, error)
	FindPublished(category, tech string) ([]*models.Project, error)
	DistinctCategories() ([]string, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Add(project *models.Project) error
	Update(project *models.Project) error
	SetFeatured(id uuid.UUID, featured bool) error
	SetStatus(id uuid.UUID, status string) error
	Delete(id uuid.UUID) error
}

type projectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projects     projectStore
	catalogCache *cache.CatalogCache
}

func newProjectHandler(projects projectStore, catalogCache *cache.CatalogCache, production bool) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:    NewResponder(logger, production),
		logger:       logger,
		projects:     projects,
		catalogCache: catalogCache,
	}
}

// listProjects serves the public catalog: filter, search, sort and
// paginate published projects. showAll is only honored for an
// authenticated admin session.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		params := catalog.Params{
			Page:     atoiDefault(q.Get("page"), 1),
			Limit:    catalog.DefaultLimit,
			Search:   q.Get("search"),
			Category: q.Get("category"),
			Tech:     q.Get("tech"),
			Sort:     q.Get("sort"),
		}
		if raw := q.Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit <= 0 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("limit", "must be a positive integer"))
				return
			}
			params.Limit = limit
		}
		params.IncludeDrafts = q.Get("showAll") == "true" && ctxIsAdmin(r.Context())

		cacheKey := cache.Key(params.Page, params.Limit, params.Search,
			params.Category, params.Tech, params.Sort, params.IncludeDrafts)
		if payload, ok := h.catalogCache.Get(r.Context(), cacheKey); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(payload)
			return
		}

		var (
			projects []*models.Project
			err      error
		)
		if params.IncludeDrafts {
			projects, err = h.projects.FindAll()
		} else {
			// Category/tech equality predicates are pushed down to the store.
			projects, err = h.projects.FindPublished(params.Category, params.Tech)
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "projects", err))
			return
		}

		result, err := catalog.Query(projects, params)
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("limit", err.Error()))
			return
		}

		response := map[string]any{
			"success":     true,
			"projects":    nonNil(result.Projects),
			"totalPages":  result.TotalPages,
			"currentPage": result.Page,
			"total":       result.Total,
		}

		if payload, err := json.Marshal(response); err == nil {
			h.catalogCache.Set(r.Context(), cacheKey, payload)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(payload)
			return
		}
		h.responder.WriteJSON(w, response)
	}
}

// listFilters supplies the listing page dropdowns with the distinct
// categories and technologies actually present across all projects.
// Categories come from a pushed-down DISTINCT; technologies need a full
// scan and a set union. The two queries run concurrently.
func (h projectHandler) listFilters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categories, technologies []string

		var g errgroup.Group
		g.Go(func() error {
			var err error
			categories, err = h.projects.DistinctCategories()
			return err
		})
		g.Go(func() error {
			projects, err := h.projects.FindAll()
			if err != nil {
				return err
			}
			technologies = catalog.DistinctTechnologies(projects)
			return nil
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("scan", "projects", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success":      true,
			"categories":   emptyIfNil(categories),
			"technologies": emptyIfNil(technologies),
		})
	}
}

// getProject returns a single project. The payload is duplicated under
// both "project" and "data" for legacy callers.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, apiErr := h.findByPathID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"project": project,
			"data":    project,
		})
	}
}

// createProject stores a new project document.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if project.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if project.Status == "" {
			project.Status = models.StatusDraft
		}

		if err := h.projects.Add(&project); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("create", "project", err))
			return
		}

		h.catalogCache.Invalidate(r.Context())

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"data":    project,
		})
	}
}

// updateProject replaces every editable field of an existing project.
// The id comes from the path, or from the body ("id" or "_id") for
// legacy callers.
func (h projectHandler) updateProject() http.HandlerFunc {
	type updateRequest struct {
		models.Project
		LegacyID uuid.UUID `json:"_id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		project := req.Project
		bodyID := project.ID
		if bodyID == uuid.Nil {
			bodyID = req.LegacyID
		}

		projectID, apiErr := pathOrBodyID(r, bodyID)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Проект не найден"))
			return
		}

		project.ID = projectID
		project.CreatedAt = existing.CreatedAt

		if err := h.projects.Update(&project); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", "project", err))
			return
		}

		h.catalogCache.Invalidate(r.Context())

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"data":    project,
		})
	}
}

type quickActionRequest struct {
	Featured *bool   `json:"featured,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// patchProject performs the catalog-management quick actions: toggling
// featured and switching draft/published, leaving other fields alone.
func (h projectHandler) patchProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, apiErr := h.findByPathID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		var req quickActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Featured == nil && req.Status == nil {
			h.responder.WriteError(w, errs.NewBadRequestError("nothing to update"))
			return
		}

		if req.Featured != nil {
			if err := h.projects.SetFeatured(project.ID, *req.Featured); err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("update", "project", err))
				return
			}
			project.Featured = *req.Featured
		}
		if req.Status != nil {
			if *req.Status != models.StatusDraft && *req.Status != models.StatusPublished {
				h.responder.WriteError(w, errs.NewInvalidFieldError("status", fmt.Sprintf("unknown status %q", *req.Status)))
				return
			}
			if err := h.projects.SetStatus(project.ID, *req.Status); err != nil {
				h.responder.WriteError(w, errs.NewDatabaseError("update", "project", err))
				return
			}
			project.Status = *req.Status
		}

		h.catalogCache.Invalidate(r.Context())

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"data":    project,
		})
	}
}

// deleteProject hard-deletes a project. The id comes from the path, or
// from the body ("_id" or "id") for legacy callers.
func (h projectHandler) deleteProject() http.HandlerFunc {
	type deleteRequest struct {
		LegacyID string `json:"_id"`
		ID       string `json:"id"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		projectIDStr := chi.URLParam(r, "projectID")
		if projectIDStr == "" {
			var req deleteRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
				projectIDStr = req.ID
				if projectIDStr == "" {
					projectIDStr = req.LegacyID
				}
			}
		}
		if projectIDStr == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
			return
		}

		projectID, err := uuid.Parse(projectIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projects.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Проект не найден"))
			return
		}

		if err := h.projects.Delete(projectID); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "project", err))
			return
		}

		h.catalogCache.Invalidate(r.Context())

		h.responder.WriteJSON(w, map[string]any{
			"success": true,
			"message": "Проект удалён",
		})
	}
}

// findByPathID resolves the {projectID} path parameter to a stored
// project.
func (h projectHandler) findByPathID(r *http.Request) (*models.Project, *errs.ApiErr) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return nil, errs.NewBadRequestError("missing projectID")
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid projectID")
	}

	project, err := h.projects.FindByID(projectID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("Проект не найден")
	}
	return project, nil
}

// pathOrBodyID prefers the {projectID} path parameter, falling back to
// the id carried in the decoded body.
func pathOrBodyID(r *http.Request, bodyID uuid.UUID) (uuid.UUID, *errs.ApiErr) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		if bodyID == uuid.Nil {
			return uuid.Nil, errs.NewBadRequestError("missing projectID")
		}
		return bodyID, nil
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}

func atoiDefault(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// nonNil keeps empty lists serializing as [] instead of null.
func nonNil(projects []*models.Project) []*models.Project {
	if projects == nil {
		return []*models.Project{}
	}
	return projects
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
