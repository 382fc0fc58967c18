package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"communityboard/internal/models"
	"communityboard/internal/repository"
	"communityboard/internal/service"
)

func TestGetUsersHandler(t *testing.T) {
	t.Run("returns a page of users", func(t *testing.T) {
		mockUserService := new(MockUserService)
		mockUserService.On("ListUsers", mock.Anything, repository.ListUsersParams{Limit: 20}).
			Return(&service.UserPage{
				Users:   []models.User{{UserID: "u1"}, {UserID: "u2"}},
				LastID:  "u2",
				HasMore: true,
			}, nil)

		handler := newTestHandlers(new(MockAuthService), new(MockPostService), mockUserService)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		rec := httptest.NewRecorder()

		handler.GetUsers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Users   []models.User `json:"users"`
			LastID  *string       `json:"lastId"`
			HasMore bool          `json:"hasMore"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Users, 2)
		require.NotNil(t, resp.LastID)
		assert.Equal(t, "u2", *resp.LastID)
		assert.True(t, resp.HasMore)
	})

	t.Run("passes limit and cursor through", func(t *testing.T) {
		mockUserService := new(MockUserService)
		mockUserService.On("ListUsers", mock.Anything, repository.ListUsersParams{
			Limit:    50,
			CursorID: "u9",
		}).Return(&service.UserPage{Users: []models.User{}}, nil)

		handler := newTestHandlers(new(MockAuthService), new(MockPostService), mockUserService)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users?limit=50&lastId=u9", nil)
		rec := httptest.NewRecorder()

		handler.GetUsers(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockUserService.AssertExpectations(t)
	})
}

func TestUpdateUserRoleHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "promote to admin",
			body: `{"role":"admin"}`,
			mockSetup: func(users *MockUserService) {
				users.On("SetRole", mock.Anything, "u1", "admin").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"User role updated to admin successfully"}`,
		},
		{
			name: "demote to user",
			body: `{"role":"user"}`,
			mockSetup: func(users *MockUserService) {
				users.On("SetRole", mock.Anything, "u1", "user").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"User role updated to user successfully"}`,
		},
		{
			name:           "unknown role is rejected",
			body:           `{"role":"superuser"}`,
			mockSetup:      func(users *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Valid role (user or admin) is required"}`,
		},
		{
			name:           "missing role is rejected",
			body:           `{}`,
			mockSetup:      func(users *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Valid role (user or admin) is required"}`,
		},
		{
			name: "unknown user returns 404",
			body: `{"role":"admin"}`,
			mockSetup: func(users *MockUserService) {
				users.On("SetRole", mock.Anything, "u1", "admin").
					Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"User not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserService := new(MockUserService)
			tt.mockSetup(mockUserService)

			handler := newTestHandlers(new(MockAuthService), new(MockPostService), mockUserService)

			req := httptest.NewRequest(http.MethodPatch, "/api/admin/users/u1/role", bytes.NewReader([]byte(tt.body)))
			req = mux.SetURLVars(req, map[string]string{"id": "u1"})
			rec := httptest.NewRecorder()

			handler.UpdateUserRole(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}
