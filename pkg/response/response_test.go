package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/test", nil)
	handler(c)
	c.Writer.WriteHeaderNow()
	return w
}

func parseError(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return body
}

func TestOK(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		OK(c, gin.H{"name": "Backyard"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body["name"] != "Backyard" {
		t.Errorf("expected name Backyard, got %q", body["name"])
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, gin.H{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", w.Code)
	}
}

func TestNoContent(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		NoContent(c)
	})

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
}

func TestErrorWithValidation(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewValidation("name", "Project name is required"))
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	body := parseError(t, w)
	if body.Message != "Project name is required" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Field != "name" {
		t.Errorf("expected field name, got %q", body.Field)
	}
}

func TestErrorWithAuthError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewAuthError())
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	body := parseError(t, w)
	if body.Message != "Invalid credentials" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Field != "" {
		t.Errorf("expected no field, got %q", body.Field)
	}
}

func TestErrorWithNotFound(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewNotFound("Project not found"))
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestErrorWithUpstream(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewUpstream("Address search failed"))
	})

	if w.Code != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", w.Code)
	}
}

func TestErrorHidesUnknownErrors(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	body := parseError(t, w)
	if body.Message != "Internal server error" {
		t.Errorf("internal details leaked: %q", body.Message)
	}
}

func TestErrorUnwrapsWrappedAppError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), NewNotFound("Fence line not found"))
	w := performRequest(func(c *gin.Context) {
		Error(c, wrapped)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestUnauthorized(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Unauthorized(c, "Authentication required")
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
	body := parseError(t, w)
	if body.Message != "Authentication required" {
		t.Errorf("unexpected message %q", body.Message)
	}
}
