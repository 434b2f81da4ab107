package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	tu "github.com/alex-pricope/nomination-board/api/controllers/testing"
	"github.com/alex-pricope/nomination-board/api/models"
	"github.com/alex-pricope/nomination-board/api/transport"
	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/reconcile"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/alex-pricope/nomination-board/voting"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router  *gin.Engine
	backend *storage.Backend
	persons []*storage.Person
}

// setupTestRouter wires every controller over a fresh seeded memory backend.
func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	logging.Log = logrus.New()
	logging.Log.SetLevel(logrus.WarnLevel)

	b := storage.NewMemoryBackend()
	require.NoError(t, storage.Seed(context.Background(), b, storage.SeedOptions{
		AdminUsername: "admin",
		AdminPassword: "admin123",
	}))
	persons, err := b.Persons.GetAll(context.Background())
	require.NoError(t, err)

	issuer, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	service := voting.NewService(b)

	r := transport.NewRouter(gin.TestMode)
	NewPersonsController(service, issuer).RegisterRoutes(r)
	NewNominationsController(service, issuer).RegisterRoutes(r)
	NewPointsController(service, issuer).RegisterRoutes(r)
	NewAdminController(b.Admins, issuer, reconcile.NewReconciler(b)).RegisterRoutes(r)

	return &testEnv{router: r, backend: b, persons: persons}
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	res := tu.PerformRequest(e.router, http.MethodPost, "/api/admin/login", models.LoginRequest{Username: "admin", Password: "admin123"}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	body, err := tu.Decode[models.LoginResponse](res)
	require.NoError(t, err)
	require.NotEmpty(t, body.Token)
	return body.Token
}
