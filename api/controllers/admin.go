package controllers

import (
	"errors"
	"net/http"

	"github.com/alex-pricope/nomination-board/api/models"
	"github.com/alex-pricope/nomination-board/api/transport"
	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/reconcile"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	admins     storage.AdminStorage
	issuer     *auth.TokenIssuer
	reconciler *reconcile.Reconciler
}

func NewAdminController(admins storage.AdminStorage, issuer *auth.TokenIssuer, reconciler *reconcile.Reconciler) *AdminController {
	return &AdminController{
		admins:     admins,
		issuer:     issuer,
		reconciler: reconciler,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/api/admin/login", c.login)

	group := engine.Group("/api/admin", transport.AdminAuthMiddleware(c.issuer))
	group.POST("/reconcile", c.reconcile)
}

// login godoc
// @Summary Exchange admin credentials for a session token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/login [post]
func (c *AdminController) login(g *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(g, &req) {
		return
	}

	admin, err := c.admins.Authenticate(g.Request.Context(), req.Username, req.Password)
	if errors.Is(err, storage.ErrNotFound) {
		logging.Log.Warnf("ADMIN: failed login for %q", req.Username)
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid username or password"})
		return
	}
	if err != nil {
		logging.Log.Errorf("ADMIN: login for %q failed: %v", req.Username, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.MsgLogin})
		return
	}

	token, session, err := c.issuer.Issue(admin.ID, admin.Username)
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to issue token for %s: %v", admin.Username, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.MsgLogin})
		return
	}

	logging.Log.Infof("ADMIN: %s signed in", admin.Username)
	g.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		Username:  session.Username,
		ExpiresAt: session.ExpiresAt,
	})
}

// @Security AdminToken
// reconcile godoc
// @Summary Recompute stored points from the ledger
// @Tags admin
// @Produce json
// @Success 200 {object} models.ReconcileResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/reconcile [post]
func (c *AdminController) reconcile(g *gin.Context) {
	drifts, err := c.reconciler.Run(g.Request.Context())
	if err != nil {
		respondError(g, "RECONCILE", err, models.MsgReconcile)
		return
	}
	logging.Log.Infof("ADMIN: %s ran reconciliation", transport.SessionFrom(g).Username)
	g.JSON(http.StatusOK, models.ReconcileResponse{Repaired: len(drifts), Drifts: drifts})
}
