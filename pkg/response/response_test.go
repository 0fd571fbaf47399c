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

func TestSuccess(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Success(c, map[string]string{"name": "test"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var data map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if data["name"] != "test" {
		t.Errorf("expected name 'test', got %q", data["name"])
	}
}

func TestCreated(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Created(c, map[string]int{"id": 1})
	})

	if w.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
}

func TestBadRequest(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		BadRequest(c, "invalid input")
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	body := parseError(t, w)
	if body.Error != "invalid request" {
		t.Errorf("expected error 'invalid request', got %q", body.Error)
	}
	if body.Details != "invalid input" {
		t.Errorf("expected details 'invalid input', got %q", body.Details)
	}
}

func TestUnauthorized(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Unauthorized(c, "token expired")
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	body := parseError(t, w)
	if body.Error != "unauthorized" {
		t.Errorf("expected error 'unauthorized', got %q", body.Error)
	}
}

func TestForbidden(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Forbidden(c, "admin required")
	})

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}

	body := parseError(t, w)
	if body.Details != "admin required" {
		t.Errorf("expected details 'admin required', got %q", body.Details)
	}
}

func TestNotFound(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		NotFound(c, "resource not found")
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestServerError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		ServerError(c, "boom")
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestError_WithAppError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, NewForbidden("only the project creator can delete the project"))
	})

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}

	body := parseError(t, w)
	if body.Error != "forbidden" {
		t.Errorf("expected error 'forbidden', got %q", body.Error)
	}
	if body.Details != "only the project creator can delete the project" {
		t.Errorf("unexpected details %q", body.Details)
	}
}

func TestError_WithGenericError(t *testing.T) {
	w := performRequest(func(c *gin.Context) {
		Error(c, errors.New("pq: connection reset"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	body := parseError(t, w)
	if body.Details == "pq: connection reset" {
		t.Error("internal error details should not leak to the caller")
	}
}

func TestNewValidation_StableOrder(t *testing.T) {
	err := NewValidation(map[string]string{
		"name":        "must be between 3 and 150 characters",
		"description": "must be between 10 and 1000 characters",
	})

	want := "description: must be between 10 and 1000 characters; name: must be between 3 and 150 characters"
	if err.Details != want {
		t.Errorf("Details = %q, expected %q", err.Details, want)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("HTTPStatus = %d, expected 400", err.HTTPStatus)
	}
}

func TestAppError_ErrorInterface(t *testing.T) {
	err := NewNotFound("project not found")
	if err.Error() != "not found: project not found" {
		t.Errorf("unexpected Error() %q", err.Error())
	}
}
