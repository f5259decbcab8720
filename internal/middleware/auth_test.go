package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"papertrade/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/test", func(c *gin.Context) {
		userID := c.GetUint("userID")
		username := c.GetString("username")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "username": username})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{Username: "alice"}
	user.ID = 42

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid_token",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing_header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong_scheme",
			authHeader: "Basic " + token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed_header",
			authHeader: token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage_token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter()
			rec := doAuthRequest(router, tt.authHeader)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddlewareSetsContext(t *testing.T) {
	user := &models.User{Username: "bob"}
	user.ID = 7

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	r := gin.New()
	r.Use(AuthMiddleware())

	var gotID uint
	var gotName string
	r.GET("/test", func(c *gin.Context) {
		gotID = c.GetUint("userID")
		gotName = c.GetString("username")
		c.Status(http.StatusOK)
	})

	rec := doAuthRequest(r, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotID != 7 {
		t.Errorf("userID = %d, want 7", gotID)
	}
	if gotName != "bob" {
		t.Errorf("username = %q, want %q", gotName, "bob")
	}
}
