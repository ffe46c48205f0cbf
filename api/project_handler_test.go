package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/nkarpov/portfolio-site-backend/models"
)

// fakeProjects is an in-memory projectStore.
type fakeProjects struct {
	order []uuid.UUID
	items map[uuid.UUID]*models.Project
}

func newFakeProjects(projects ...*models.Project) *fakeProjects {
	s := &fakeProjects{items: map[uuid.UUID]*models.Project{}}
	for _, p := range projects {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		s.order = append(s.order, p.ID)
		s.items[p.ID] = p
	}
	return s
}

func (s *fakeProjects) FindAll() ([]*models.Project, error) {
	var out []*models.Project
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}

func (s *fakeProjects) FindPublished(category, tech string) ([]*models.Project, error) {
	var out []*models.Project
	for _, id := range s.order {
		p := s.items[id]
		if p.Status == models.StatusPublished {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProjects) DistinctCategories() ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, id := range s.order {
		c := s.items[id].Category
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeProjects) FindByID(id uuid.UUID) (*models.Project, error) {
	return s.items[id], nil
}

func (s *fakeProjects) Add(p *models.Project) error {
	p.ID = uuid.New()
	s.order = append(s.order, p.ID)
	s.items[p.ID] = p
	return nil
}

func (s *fakeProjects) Update(p *models.Project) error {
	s.items[p.ID] = p
	return nil
}

func (s *fakeProjects) SetFeatured(id uuid.UUID, featured bool) error {
	s.items[id].Featured = featured
	return nil
}

func (s *fakeProjects) SetStatus(id uuid.UUID, status string) error {
	s.items[id].Status = status
	return nil
}

func (s *fakeProjects) Delete(id uuid.UUID) error {
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func projectRouter(store projectStore) *chi.Mux {
	h := newProjectHandler(store, nil, false)
	r := chi.NewRouter()
	r.Get("/api/projects", h.listProjects())
	r.Get("/api/projects/filters", h.listFilters())
	r.Get("/api/projects/{projectID}", h.getProject())
	r.Post("/api/projects", h.createProject())
	r.Put("/api/projects/{projectID}", h.updateProject())
	r.Patch("/api/projects/{projectID}", h.patchProject())
	r.Delete("/api/projects/{projectID}", h.deleteProject())
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]any{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("response is not JSON: %v: %s", err, rec.Body.String())
		}
	}
	return rec, decoded
}

func published(title, category string, techs ...string) *models.Project {
	return &models.Project{
		ID:           uuid.New(),
		Title:        title,
		Status:       models.StatusPublished,
		Category:     category,
		Technologies: datatypes.NewJSONSlice(techs),
		CreatedAt:    time.Now(),
	}
}

func TestListProjectsEnvelope(t *testing.T) {
	router := projectRouter(newFakeProjects(
		published("Первый", "Web"),
		published("Второй", "Web"),
		&models.Project{ID: uuid.New(), Title: "Черновик", Status: models.StatusDraft},
	))

	rec, body := doJSON(t, router, http.MethodGet, "/api/projects", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["success"] != true {
		t.Error("success flag missing")
	}
	if got := body["total"].(float64); got != 2 {
		t.Errorf("total = %v, want 2 (draft must be excluded)", got)
	}
	if got := body["totalPages"].(float64); got != 1 {
		t.Errorf("totalPages = %v", got)
	}
	if got := body["currentPage"].(float64); got != 1 {
		t.Errorf("currentPage = %v", got)
	}
	if got := len(body["projects"].([]any)); got != 2 {
		t.Errorf("projects length = %d", got)
	}
}

func TestListProjectsShowAllIgnoredWithoutSession(t *testing.T) {
	router := projectRouter(newFakeProjects(
		&models.Project{ID: uuid.New(), Title: "Черновик", Status: models.StatusDraft},
	))

	_, body := doJSON(t, router, http.MethodGet, "/api/projects?showAll=true", nil)
	if got := body["total"].(float64); got != 0 {
		t.Errorf("total = %v, want 0: showAll must require an admin session", got)
	}
}

func TestListProjectsUnknownCategory(t *testing.T) {
	router := projectRouter(newFakeProjects(published("Первый", "Web")))

	_, body := doJSON(t, router, http.MethodGet, "/api/projects?category=NonexistentCategory", nil)
	if got := body["total"].(float64); got != 0 {
		t.Errorf("total = %v, want 0", got)
	}
	if got := len(body["projects"].([]any)); got != 0 {
		t.Errorf("projects = %v, want []", body["projects"])
	}
}

func TestListProjectsInvalidLimit(t *testing.T) {
	router := projectRouter(newFakeProjects())

	rec, body := doJSON(t, router, http.MethodGet, "/api/projects?limit=0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["success"] != false {
		t.Error("error envelope must carry success:false")
	}
}

func TestGetProjectNotFound(t *testing.T) {
	router := projectRouter(newFakeProjects())

	rec, body := doJSON(t, router, http.MethodGet, "/api/projects/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["success"] != false || body["error"] != "Проект не найден" {
		t.Errorf("body = %v", body)
	}
}

func TestGetProjectDuplicatesPayload(t *testing.T) {
	project := published("Первый", "Web")
	router := projectRouter(newFakeProjects(project))

	rec, body := doJSON(t, router, http.MethodGet, "/api/projects/"+project.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// data duplicated for legacy callers
	for _, key := range []string{"project", "data"} {
		payload, ok := body[key].(map[string]any)
		if !ok || payload["title"] != "Первый" {
			t.Errorf("%s payload = %v", key, body[key])
		}
	}
}

func TestCreateProjectRequiresTitle(t *testing.T) {
	router := projectRouter(newFakeProjects())

	rec, body := doJSON(t, router, http.MethodPost, "/api/projects", map[string]any{"title": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["field"] != "title" {
		t.Errorf("field = %v", body["field"])
	}
}

func TestCreateProjectDefaultsToDraft(t *testing.T) {
	store := newFakeProjects()
	router := projectRouter(store)

	rec, body := doJSON(t, router, http.MethodPost, "/api/projects", map[string]any{"title": "Новый"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	data := body["data"].(map[string]any)
	if data["status"] != models.StatusDraft {
		t.Errorf("status = %v, want draft", data["status"])
	}
	if len(store.items) != 1 {
		t.Errorf("stored %d projects", len(store.items))
	}
}

func TestPatchProjectTogglesFeaturedOnly(t *testing.T) {
	project := published("Первый", "Web", "Go")
	store := newFakeProjects(project)
	router := projectRouter(store)

	rec, _ := doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/projects/%s", project.ID), map[string]any{"featured": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	stored := store.items[project.ID]
	if !stored.Featured {
		t.Error("featured not persisted")
	}
	if stored.Title != "Первый" || stored.Status != models.StatusPublished || len(stored.Technologies) != 1 {
		t.Errorf("other fields changed: %+v", stored)
	}
}

func TestPatchProjectRejectsUnknownStatus(t *testing.T) {
	project := published("Первый", "Web")
	router := projectRouter(newFakeProjects(project))

	rec, _ := doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/projects/%s", project.ID), map[string]any{"status": "archived"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteProjectNotFound(t *testing.T) {
	router := projectRouter(newFakeProjects())

	rec, body := doJSON(t, router, http.MethodDelete, "/api/projects/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["success"] != false || body["error"] != "Проект не найден" {
		t.Errorf("body = %v", body)
	}
}

func TestDeleteProjectRemoves(t *testing.T) {
	project := published("Первый", "Web")
	store := newFakeProjects(project)
	router := projectRouter(store)

	rec, body := doJSON(t, router, http.MethodDelete, "/api/projects/"+project.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["success"] != true {
		t.Errorf("body = %v", body)
	}
	if len(store.items) != 0 {
		t.Error("project not deleted")
	}
}

func TestListFiltersDeduplicatedSorted(t *testing.T) {
	router := projectRouter(newFakeProjects(
		published("Первый", "Web", "a", "b"),
		published("Второй", "Mobile", "b", "c"),
		published("Третий", "Web"),
	))

	rec, body := doJSON(t, router, http.MethodGet, "/api/projects/filters", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	techs := body["technologies"].([]any)
	want := []any{"a", "b", "c"}
	if len(techs) != len(want) {
		t.Fatalf("technologies = %v, want %v", techs, want)
	}
	for i := range want {
		if techs[i] != want[i] {
			t.Errorf("technologies[%d] = %v, want %v", i, techs[i], want[i])
		}
	}
	if cats := body["categories"].([]any); len(cats) != 2 {
		t.Errorf("categories = %v", cats)
	}
}

func TestUpdateProjectIDFromBody(t *testing.T) {
	project := published("Старый", "Web")
	store := newFakeProjects(project)
	h := newProjectHandler(store, nil, false)
	r := chi.NewRouter()
	r.Put("/api/projects", h.updateProject())

	rec, _ := doJSON(t, r, http.MethodPut, "/api/projects", map[string]any{
		"id":    project.ID.String(),
		"title": "Обновлённый",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if store.items[project.ID].Title != "Обновлённый" {
		t.Errorf("title = %q", store.items[project.ID].Title)
	}
}

func TestUpdateProjectLegacyIDFromBody(t *testing.T) {
	project := published("Старый", "Web")
	store := newFakeProjects(project)
	h := newProjectHandler(store, nil, false)
	r := chi.NewRouter()
	r.Put("/api/projects", h.updateProject())

	rec, _ := doJSON(t, r, http.MethodPut, "/api/projects", map[string]any{
		"_id":   project.ID.String(),
		"title": "Обновлённый",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if store.items[project.ID].Title != "Обновлённый" {
		t.Errorf("title = %q", store.items[project.ID].Title)
	}
}
