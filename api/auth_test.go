package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func authRouter(t *testing.T, password string) *chi.Mux {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	h := newAuthHandler(hash, []byte(testSecret), false)
	m := newAuthMiddleware([]byte(testSecret), false)

	r := chi.NewRouter()
	r.Post("/api/auth/login", h.login())
	r.Group(func(r chi.Router) {
		r.Use(m.authenticate)
		r.Post("/api/projects", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
	})
	return r
}

func login(t *testing.T, router http.Handler, password string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{"password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := map[string]any{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestUnauthenticatedWriteRejected(t *testing.T) {
	router := authRouter(t, "correct-horse")

	req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body := map[string]any{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["success"] != false || body["error"] != "Требуется авторизация" {
		t.Errorf("body = %v", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := authRouter(t, "correct-horse")

	rec, body := login(t, router, "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("body = %v", body)
	}
}

func TestLoginIssuesWorkingSession(t *testing.T) {
	router := authRouter(t, "correct-horse")

	rec, body := login(t, router, "correct-horse")
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token in %v", body)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authRec := httptest.NewRecorder()
	router.ServeHTTP(authRec, req)

	if authRec.Code != http.StatusCreated {
		t.Errorf("authenticated write status = %d, want 201", authRec.Code)
	}
}

func TestBogusTokenRejected(t *testing.T) {
	router := authRouter(t, "correct-horse")

	req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
