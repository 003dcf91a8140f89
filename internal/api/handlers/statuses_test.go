package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulthanallaudeen/priya-task/internal/api/dto"
	"github.com/sulthanallaudeen/priya-task/internal/api/handlers"
	"github.com/sulthanallaudeen/priya-task/internal/api/middleware"
	"github.com/sulthanallaudeen/priya-task/internal/statuses"
	"github.com/sulthanallaudeen/priya-task/internal/testutil"
)

func setupStatusTestRouter(t *testing.T) (*chi.Mux, *testutil.TestSetup) {
	t.Helper()
	tc := testutil.NewTestContext(t)

	handler := handlers.NewStatusHandler(statuses.NewService(tc.DB))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tc.AuthService))

		r.Get("/api/v1/statuses", handler.List)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/api/v1/statuses", handler.Create)
			r.Patch("/api/v1/statuses/{id}", handler.Rename)
			r.Delete("/api/v1/statuses/{id}", handler.Delete)
		})
	})

	return r, tc
}

func TestStatusHandler_List(t *testing.T) {
	router, tc := setupStatusTestRouter(t)
	defer tc.Cleanup()

	testutil.CreateTestStatus(t, tc.DB, "To Do")
	testutil.CreateTestStatus(t, tc.DB, "Done")

	t.Run("any authenticated user can read the catalog", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/statuses", nil, tc.UserToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp dto.StatusListResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Len(t, resp.Statuses, 2)
	})

	t.Run("unauthenticated is 401", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/v1/statuses", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestStatusHandler_Create(t *testing.T) {
	router, tc := setupStatusTestRouter(t)
	defer tc.Cleanup()

	t.Run("admin creates a status", func(t *testing.T) {
		body := map[string]string{"name": "In Review"}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/statuses", body, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp map[string]dto.StatusResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "In Review", resp["status"].Name)
		assert.NotEmpty(t, resp["status"].ID)
	})

	t.Run("duplicate name is 409", func(t *testing.T) {
		body := map[string]string{"name": "in review"}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/statuses", body, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("regular user is 403", func(t *testing.T) {
		body := map[string]string{"name": "Blocked"}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/statuses", body, tc.UserToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("name too short is 400", func(t *testing.T) {
		body := map[string]string{"name": "X"}

		req := testutil.AuthenticatedRequest(t, "POST", "/api/v1/statuses", body, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestStatusHandler_Rename(t *testing.T) {
	router, tc := setupStatusTestRouter(t)
	defer tc.Cleanup()

	status := testutil.CreateTestStatus(t, tc.DB, "To Do")
	other := testutil.CreateTestStatus(t, tc.DB, "Done")

	t.Run("success", func(t *testing.T) {
		body := map[string]string{"name": "Backlog"}

		req := testutil.AuthenticatedRequest(t, "PATCH",
			"/api/v1/statuses/"+status.ID.String(), body, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp map[string]dto.StatusResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Backlog", resp["status"].Name)
	})

	t.Run("collision is 409", func(t *testing.T) {
		body := map[string]string{"name": "Backlog"}

		req := testutil.AuthenticatedRequest(t, "PATCH",
			"/api/v1/statuses/"+other.ID.String(), body, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		body := map[string]string{"name": "Whatever"}

		req := testutil.AuthenticatedRequest(t, "PATCH",
			"/api/v1/statuses/"+uuid.NewString(), body, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestStatusHandler_Delete(t *testing.T) {
	router, tc := setupStatusTestRouter(t)
	defer tc.Cleanup()

	used := testutil.CreateTestStatus(t, tc.DB, "In Use")
	unused := testutil.CreateTestStatus(t, tc.DB, "Unused")
	testutil.CreateTestTask(t, tc.DB, used.ID, tc.User.ID, "Anchor")

	t.Run("status with tasks is 409", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE",
			"/api/v1/statuses/"+used.ID.String(), nil, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unused status deletes", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE",
			"/api/v1/statuses/"+unused.ID.String(), nil, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)

		service := statuses.NewService(tc.DB)
		_, err := service.Get(testutil.TestContext(t), unused.ID)
		require.ErrorIs(t, err, statuses.ErrStatusNotFound)
	})

	t.Run("regular user is 403", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE",
			"/api/v1/statuses/"+used.ID.String(), nil, tc.UserToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
