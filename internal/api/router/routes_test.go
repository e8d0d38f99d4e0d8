// Package router - Test đăng ký route CRUD và middleware qua group.Use.
package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

// stubCRUDHandler ghi lại operation được gọi, đủ để test việc đăng ký route
type stubCRUDHandler struct {
	calls []string
}

func (s *stubCRUDHandler) record(c fiber.Ctx, op string) error {
	s.calls = append(s.calls, op)
	return c.SendStatus(fiber.StatusOK)
}

func (s *stubCRUDHandler) InsertOne(c fiber.Ctx) error          { return s.record(c, "insert-one") }
func (s *stubCRUDHandler) Find(c fiber.Ctx) error               { return s.record(c, "find") }
func (s *stubCRUDHandler) FindOne(c fiber.Ctx) error            { return s.record(c, "find-one") }
func (s *stubCRUDHandler) FindOneById(c fiber.Ctx) error        { return s.record(c, "find-by-id") }
func (s *stubCRUDHandler) FindWithPagination(c fiber.Ctx) error { return s.record(c, "paginate") }
func (s *stubCRUDHandler) UpdateById(c fiber.Ctx) error         { return s.record(c, "update-by-id") }
func (s *stubCRUDHandler) DeleteById(c fiber.Ctx) error         { return s.record(c, "delete-by-id") }
func (s *stubCRUDHandler) CountDocuments(c fiber.Ctx) error     { return s.record(c, "count") }
func (s *stubCRUDHandler) Distinct(c fiber.Ctx) error           { return s.record(c, "distinct") }
func (s *stubCRUDHandler) DocumentExists(c fiber.Ctx) error     { return s.record(c, "exists") }

func testRequest(t *testing.T, app *fiber.App, method, path string, headers map[string]string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s lỗi: %v", method, path, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRegisterCRUDRoutes_ReadOnlyConfig(t *testing.T) {
	app := fiber.New()
	v1 := app.Group("/api/v1")
	r := NewRouter(app)

	stub := &stubCRUDHandler{}
	r.RegisterCRUDRoutes(v1, "/jobs", stub, ReadOnlyConfig, nil, nil)

	// Các operation đọc phải được đăng ký
	readPaths := []string{
		"/api/v1/jobs/find",
		"/api/v1/jobs/find-one",
		"/api/v1/jobs/find-by-id/665f1f77bcf86cd799439011",
		"/api/v1/jobs/find-with-pagination",
		"/api/v1/jobs/count",
		"/api/v1/jobs/distinct/status",
		"/api/v1/jobs/exists",
	}
	for _, path := range readPaths {
		if code := testRequest(t, app, http.MethodGet, path, nil); code != fiber.StatusOK {
			t.Errorf("GET %s = %d, muốn 200", path, code)
		}
	}
	if len(stub.calls) != len(readPaths) {
		t.Errorf("số handler được gọi = %d, muốn %d: %v", len(stub.calls), len(readPaths), stub.calls)
	}

	// Các operation ghi không được đăng ký với ReadOnlyConfig
	if code := testRequest(t, app, http.MethodPost, "/api/v1/jobs/insert-one", nil); code == fiber.StatusOK {
		t.Error("POST insert-one không được đăng ký với config chỉ đọc")
	}
	if code := testRequest(t, app, http.MethodPut, "/api/v1/jobs/update-by-id/665f1f77bcf86cd799439011", nil); code == fiber.StatusOK {
		t.Error("PUT update-by-id không được đăng ký với config chỉ đọc")
	}
	if code := testRequest(t, app, http.MethodDelete, "/api/v1/jobs/delete-by-id/665f1f77bcf86cd799439011", nil); code == fiber.StatusOK {
		t.Error("DELETE delete-by-id không được đăng ký với config chỉ đọc")
	}
}

func TestRegisterCRUDRoutes_MiddlewareGuardsRoutes(t *testing.T) {
	app := fiber.New()
	v1 := app.Group("/api/v1")
	r := NewRouter(app)

	guard := func(c fiber.Ctx) error {
		if c.Get("X-API-Key") != "test-key" {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.Next()
	}

	stub := &stubCRUDHandler{}
	r.RegisterCRUDRoutes(v1, "/movies", stub, ReadOnlyConfig, []fiber.Handler{guard}, []fiber.Handler{guard})

	// Thiếu key: middleware chặn, handler không được gọi
	if code := testRequest(t, app, http.MethodGet, "/api/v1/movies/find", nil); code != fiber.StatusUnauthorized {
		t.Errorf("thiếu API key: status = %d, muốn 401", code)
	}
	if len(stub.calls) != 0 {
		t.Errorf("handler bị gọi dù middleware chặn: %v", stub.calls)
	}

	// Có key: đi qua middleware tới handler
	headers := map[string]string{"X-API-Key": "test-key"}
	if code := testRequest(t, app, http.MethodGet, "/api/v1/movies/find", headers); code != fiber.StatusOK {
		t.Errorf("có API key: status = %d, muốn 200", code)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "find" {
		t.Errorf("calls = %v, muốn [find]", stub.calls)
	}
}

func TestRegisterRouteWithMiddleware_AppliesMiddlewareViaGroup(t *testing.T) {
	app := fiber.New()
	v1 := app.Group("/api/v1")

	var middlewareRan bool
	mw := func(c fiber.Ctx) error {
		middlewareRan = true
		return c.Next()
	}
	handler := func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}

	RegisterRouteWithMiddleware(v1, "/ping", "GET", "/", []fiber.Handler{mw}, handler)

	if code := testRequest(t, app, http.MethodGet, "/api/v1/ping/", nil); code != fiber.StatusOK {
		t.Fatalf("status = %d, muốn 200", code)
	}
	if !middlewareRan {
		t.Error("middleware đăng ký qua group.Use không được gọi")
	}
}
