package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"topspot/internal/adapter/http/middleware"
	"topspot/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	ownerUser      = entities.User{ID: "owner-1", Role: entities.RoleOwner, Verified: true, AdminVerified: true}
	contractorUser = entities.User{ID: "contractor-1", Role: entities.RoleContractor, Verified: true, ContractorStatus: entities.ContractorActive}
	adminUser      = entities.User{ID: "admin-1", Role: entities.RoleAdmin, Verified: true}
)

// routerAs returns a router whose requests run as u. A zero user means anonymous.
func routerAs(u entities.User) *gin.Engine {
	r := gin.New()
	if u.ID != "" {
		r.Use(func(c *gin.Context) {
			middleware.SetCurrentUser(c, u)
			c.Next()
		})
	}
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, r http.Handler, method, path string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response %q: %v", w.Body.String(), err)
	}
	return body
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
