package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	createFunc  func(ctx context.Context, id uuid.UUID, sessionID, name, email string) (*User, error)
	listFunc    func(ctx context.Context) ([]User, error)
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*User, error)
}

func (m *mockStore) Create(ctx context.Context, id uuid.UUID, sessionID, name, email string) (*User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, id, sessionID, name, email)
	}
	return &User{ID: id, SessionID: sessionID, Name: name, Email: email}, nil
}

func (m *mockStore) List(ctx context.Context) ([]User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []User{}, nil
}

func (m *mockStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func newTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store, 720*time.Hour, false).RegisterRoutes(r)
	return r
}

func TestCreateUser(t *testing.T) {
	var gotSessionID string
	store := &mockStore{
		createFunc: func(ctx context.Context, id uuid.UUID, sessionID, name, email string) (*User, error) {
			gotSessionID = sessionID
			return &User{ID: id, SessionID: sessionID, Name: name, Email: email}, nil
		},
	}
	r := newTestRouter(store)

	body := `{"name":"Jane","email":"jane@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionId", cookies[0].Name)
	assert.Equal(t, gotSessionID, cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 30*24*60*60, cookies[0].MaxAge)
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	r := newTestRouter(&mockStore{})

	body := `{"name":"Jane","email":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// The cookie is issued before the body is validated, so even a rejected
// request leaves the caller with a fresh session cookie.
func TestCreateUser_CookieIssuedOnInvalidBody(t *testing.T) {
	r := newTestRouter(&mockStore{})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionId", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestListUsers(t *testing.T) {
	userID := uuid.New()
	store := &mockStore{
		listFunc: func(ctx context.Context) ([]User, error) {
			return []User{{ID: userID, Name: "Jane", Email: "jane@example.com"}}, nil
		},
	}
	r := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Users []User `json:"users"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Len(t, response.Users, 1)
	assert.Equal(t, userID, response.Users[0].ID)
}

func TestGetUser_NotFoundIsNull(t *testing.T) {
	r := newTestRouter(&mockStore{})

	req := httptest.NewRequest(http.MethodGet, "/users/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}

func TestGetUser_InvalidID(t *testing.T) {
	r := newTestRouter(&mockStore{})

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
