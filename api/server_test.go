package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/reconcile"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	logging.Log = logrus.New()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("auth.jwtSecret", "s3cret")
	viper.Set("storage.backend", "relational")
	viper.Set("auth.tokenTTL", "2h")

	conf := ReadConfig()
	assert.Equal(t, "relational", conf.Backend)
	assert.Equal(t, "s3cret", conf.JWTSecret)
	assert.Equal(t, 2*time.Hour, conf.TokenTTL)
	assert.Equal(t, 8080, conf.Port)
	assert.Equal(t, "Persons", conf.Tables.Persons)
	assert.True(t, conf.SeedEnabled)
}

func TestOpenBackend(t *testing.T) {
	logging.Log = logrus.New()

	b, err := OpenBackend(context.Background(), StorageConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.Equal(t, "memory", b.Name)

	_, err = OpenBackend(context.Background(), StorageConfig{Backend: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestBuildEngine(t *testing.T) {
	logging.Log = logrus.New()
	ctx := context.Background()

	b, err := OpenBackend(ctx, StorageConfig{Backend: "memory"})
	require.NoError(t, err)
	require.NoError(t, SeedBackend(ctx, b, &Config{AuthConfig: AuthConfig{DefaultAdminUser: "admin", DefaultAdminPassword: "admin123"}}))

	issuer, err := auth.NewTokenIssuer("s3cret", time.Hour)
	require.NoError(t, err)
	r := BuildEngine(gin.TestMode, b, issuer, reconcile.NewReconciler(b))

	req := httptest.NewRequest(http.MethodGet, "/api/persons", nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "Juan")

	req = httptest.NewRequest(http.MethodPost, "/api/admin/reconcile", nil)
	res = httptest.NewRecorder()
	r.ServeHTTP(res, req)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
