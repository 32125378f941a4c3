package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/usecase"
	"github.com/Donelpee/travelcover-insurance/pkg/logger"
)

type stubUserRepo struct {
	user *entity.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	hash, err := usecase.HashPassword("s3cret")
	require.NoError(t, err)
	user := &entity.User{
		ID: 1, Email: "ops@example.com", PasswordHash: hash, Active: true,
		Role: &entity.Role{Name: "operator", Permissions: []entity.Permission{{Key: PermManifestWrite}}},
	}
	auth := usecase.NewAuthService(&stubUserRepo{user: user}, "test-secret", time.Hour, logger.NewNop())

	r := gin.New()
	secured := r.Group("", AuthRequired(auth))
	secured.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	secured.GET("/guarded", RequirePermission(PermCatalogWrite), func(c *gin.Context) { c.Status(http.StatusOK) })
	secured.GET("/granted", RequirePermission(PermManifestWrite), func(c *gin.Context) { c.Status(http.StatusOK) })

	token, _, err := auth.Login(context.Background(), "ops@example.com", "s3cret")
	require.NoError(t, err)

	do := func(path, bearer string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusUnauthorized, do("/open", ""))
	assert.Equal(t, http.StatusUnauthorized, do("/open", "garbage"))
	assert.Equal(t, http.StatusOK, do("/open", token))
	assert.Equal(t, http.StatusForbidden, do("/guarded", token), "missing permission")
	assert.Equal(t, http.StatusOK, do("/granted", token))
}
