package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/models"
	"papertrade/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	createUserFn        func(username, password string) (*models.User, error)
	getUserByUsernameFn func(username string) (*models.User, error)
	getUserByIDFn       func(id uint) (*models.User, error)
	verifyPasswordFn    func(user *models.User, password string) bool
}

func (m *mockUserService) CreateUser(username, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(username, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByUsername(username string) (*models.User, error) {
	if m.getUserByUsernameFn != nil {
		return m.getUserByUsernameFn(username)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id uint) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) VerifyPassword(user *models.User, password string) bool {
	if m.verifyPasswordFn != nil {
		return m.verifyPasswordFn(user, password)
	}
	return true
}

type mockAuditService struct{}

func (m *mockAuditService) Log(_ uint, _, _ string, _ uint, _ string, _ map[string]interface{}) {}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	r.GET("/profile", injectUserID(1), handler.GetProfile)
	return r
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func testUser(id uint, username string) *models.User {
	return &models.User{
		Base:     models.Base{ID: id},
		Username: username,
		Cash:     models.DefaultCash,
	}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(username, _ string) (*models.User, error) {
				return testUser(1, username), nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"alice","password":"password123","confirmation":"password123"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == nil || result["token"] == "" {
			t.Error("expected non-empty token")
		}
		user := result["user"].(map[string]interface{})
		if user["username"] != "alice" {
			t.Errorf("expected username alice, got %v", user["username"])
		}
		if user["cash"] != "10000.00" {
			t.Errorf("expected starting cash 10000.00, got %v", user["cash"])
		}
	})

	t.Run("returns 400 on missing username", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"password":"password123","confirmation":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on missing confirmation", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"alice","password":"password123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when passwords do not match", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"alice","password":"password123","confirmation":"different456"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"alice","password":"short","confirmation":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate username", func(t *testing.T) {
		userSvc := &mockUserService{
			createUserFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrUsernameTaken
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/register",
			`{"username":"alice","password":"password123","confirmation":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "USERNAME_TAKEN")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByUsernameFn: func(username string) (*models.User, error) {
				return testUser(1, username), nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"username":"alice","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] == nil || result["token"] == "" {
			t.Error("expected non-empty token")
		}
	})

	t.Run("returns 401 on unknown username", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByUsernameFn: func(_ string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"username":"nobody","password":"password123"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 401 on wrong password", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByUsernameFn: func(username string) (*models.User, error) {
				return testUser(1, username), nil
			},
			verifyPasswordFn: func(_ *models.User, _ string) bool {
				return false
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login",
			`{"username":"alice","password":"wrong"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on missing fields", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "POST", "/auth/login", `{"username":"alice"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_GetProfile(t *testing.T) {
	t.Run("returns 200 with user data", func(t *testing.T) {
		userSvc := &mockUserService{
			getUserByIDFn: func(id uint) (*models.User, error) {
				return testUser(id, "alice"), nil
			},
		}
		handler := NewAuthHandler(userSvc, &mockAuditService{})
		r := setupAuthRouter(handler)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["username"] != "alice" {
			t.Errorf("expected username alice, got %v", user["username"])
		}
	})

	t.Run("returns 401 without user in context", func(t *testing.T) {
		handler := NewAuthHandler(&mockUserService{}, &mockAuditService{})
		r := gin.New()
		r.GET("/profile", handler.GetProfile)

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
