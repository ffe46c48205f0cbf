package errs

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestNewDatabaseErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name  string
		cause error
		want  int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"connection refused", errors.New("dial tcp: connection refused"), http.StatusServiceUnavailable},
		{"duplicate key", errors.New(`duplicate key value violates unique constraint "projects_pkey"`), http.StatusConflict},
		{"generic", errors.New("syntax error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiErr := NewDatabaseError("find", "project", tc.cause)
			if apiErr.StatusCode != tc.want {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tc.want)
			}
			if apiErr.Cause == nil {
				t.Error("cause not preserved")
			}
		})
	}
}

func TestApiErrUnwrap(t *testing.T) {
	err := NewDatabaseError("find", "project", gorm.ErrRecordNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Error("database not-found error must unwrap to ErrNotFound")
	}

	var apiErr *ApiErr
	if !errors.As(error(err), &apiErr) {
		t.Error("errors.As failed for *ApiErr")
	}
}

func TestGetFullErrorIncludesCause(t *testing.T) {
	err := NewDatabaseError("find", "project", errors.New("timeout"))
	full := err.GetFullError()
	if full == err.Error() {
		t.Errorf("GetFullError() = %q, cause missing", full)
	}
}
