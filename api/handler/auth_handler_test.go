package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crewbase/api/middleware"
	"crewbase/internal/entity"
	"crewbase/internal/repository"
	"crewbase/internal/service"
	"crewbase/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	nextID uint
	users  map[uint]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: make(map[uint]*entity.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uint) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) FindByResetToken(_ context.Context, token string) (*entity.User, error) {
	for _, user := range r.users {
		if user.ResetPasswordToken != nil && *user.ResetPasswordToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) FindByRoleIn(_ context.Context, roles []entity.Role) ([]entity.User, error) {
	var result []entity.User
	for _, user := range r.users {
		for _, role := range roles {
			if user.Role == role {
				result = append(result, *user)
				break
			}
		}
	}
	return result, nil
}

func (r *memoryUserRepo) Save(_ context.Context, user *entity.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) Transaction(_ context.Context, fn func(repository.UserRepository) error) error {
	return fn(r)
}

type noopEmailSender struct{}

func (noopEmailSender) SendPasswordResetEmail(context.Context, *entity.User, string) error {
	return nil
}

func newTestApp(t *testing.T) (*echo.Echo, *memoryUserRepo, *utils.JWTManager) {
	t.Helper()

	repo := newMemoryUserRepo()
	manager := &utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}

	svc := service.NewAccountService(
		repo,
		nil,
		noopEmailSender{},
		service.BcryptPasswordHasher{Cost: 4},
		service.JWTAccessIssuer{Manager: manager},
		service.HexResetTokenGenerator{},
		service.DefaultCatalog(),
		service.RealClock{},
		service.AccountConfig{ResetTokenTTL: time.Hour},
	)

	h := NewAuthHandler(svc, validator.New())
	guard := middleware.AuthMiddleware{JWT: manager}

	e := echo.New()
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/create-password-reset-token", h.CreatePasswordResetToken)
	e.POST("/auth/verify-token", h.VerifyToken, guard.RequireAuth)
	e.GET("/auth/get-user", h.GetUser, guard.RequireAuth)
	e.GET("/auth/get-workers", h.GetWorkers, guard.RequireAuth,
		middleware.RequireRole(entity.RoleAdmin, entity.RoleWorker))
	e.POST("/auth/add-admin", h.AddAdmin, guard.RequireAuth,
		middleware.RequireRole(entity.RoleAdmin))
	return e, repo, manager
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		data, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerBody() map[string]string {
	return map[string]string{
		"name":      "Ana",
		"lastName":  "Ruiz",
		"email":     "ana@example.com",
		"password":  "secret123",
		"birthdate": "01/05/1990",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	e, _, _ := newTestApp(t)

	rec := doJSON(t, e, http.MethodPost, "/auth/register", registerBody(), "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "user created successfully")

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/auth/register", registerBody(), "")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "email already in use")
	})

	t.Run("malformed birthdate rejected by validation", func(t *testing.T) {
		body := registerBody()
		body["email"] = "other@example.com"
		body["birthdate"] = "1990-05-01"
		rec := doJSON(t, e, http.MethodPost, "/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/auth/register", `{"name":"A","extra":true}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	e, _, _ := newTestApp(t)
	require.Equal(t, http.StatusCreated, doJSON(t, e, http.MethodPost, "/auth/register", registerBody(), "").Code)

	rec := doJSON(t, e, http.MethodPost, "/auth/login",
		map[string]string{"email": "ana@example.com", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Token)

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		wrong := doJSON(t, e, http.MethodPost, "/auth/login",
			map[string]string{"email": "ana@example.com", "password": "wrongpass"}, "")
		unknown := doJSON(t, e, http.MethodPost, "/auth/login",
			map[string]string{"email": "ghost@example.com", "password": "whatever1"}, "")
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	})
}

func TestAuthenticatedEndpoints(t *testing.T) {
	e, repo, manager := newTestApp(t)
	ctx := context.Background()

	admin := &entity.User{Name: "Ada", LastName: "Admin", Email: "ada@example.com",
		PasswordHash: "x", Birthdate: "01/01/1980", Active: true, Role: entity.RoleAdmin}
	regular := &entity.User{Name: "Uma", LastName: "User", Email: "uma@example.com",
		PasswordHash: "x", Birthdate: "03/03/1995", Active: true, Role: entity.RoleUser}
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.Create(ctx, regular))

	adminToken, _, err := manager.IssueAccessToken(admin.ID, admin.Email, int(admin.Role))
	require.NoError(t, err)
	userToken, _, err := manager.IssueAccessToken(regular.ID, regular.Email, int(regular.Role))
	require.NoError(t, err)

	t.Run("get-user requires a token", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/auth/get-user", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("verify-token echoes the verified claims", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/auth/verify-token", nil, userToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var claims struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
			Role  int    `json:"role"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &claims))
		assert.Equal(t, regular.ID, claims.ID)
		assert.Equal(t, "uma@example.com", claims.Email)
		assert.Equal(t, int(entity.RoleUser), claims.Role)
	})

	t.Run("verify-token rejects a missing token", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/auth/verify-token", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("get-user returns the profile", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/auth/get-user", nil, userToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Uma"`)
		assert.NotContains(t, rec.Body.String(), "PasswordHash")
	})

	t.Run("get-workers forbidden for plain users", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/auth/get-workers", nil, userToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("get-workers for admin excludes plain users", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodGet, "/auth/get-workers", nil, adminToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ada@example.com")
		assert.NotContains(t, rec.Body.String(), "uma@example.com")
	})

	t.Run("add-admin promotes the target", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/auth/add-admin",
			map[string]uint{"id": regular.ID}, adminToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":1`)
	})

	t.Run("add-admin forbidden for non-admins", func(t *testing.T) {
		rec := doJSON(t, e, http.MethodPost, "/auth/add-admin",
			map[string]uint{"id": admin.ID}, userToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestPasswordResetTokenEndpointUnknownEmail(t *testing.T) {
	e, _, _ := newTestApp(t)
	rec := doJSON(t, e, http.MethodPost, "/auth/create-password-reset-token",
		map[string]string{"email": "ghost@example.com"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
