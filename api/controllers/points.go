package controllers

import (
	"net/http"

	"github.com/alex-pricope/nomination-board/api/models"
	"github.com/alex-pricope/nomination-board/api/transport"
	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/voting"
	"github.com/gin-gonic/gin"
)

type PointsController struct {
	service *voting.Service
	issuer  *auth.TokenIssuer
}

func NewPointsController(service *voting.Service, issuer *auth.TokenIssuer) *PointsController {
	return &PointsController{
		service: service,
		issuer:  issuer,
	}
}

func (c *PointsController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/admin/points", transport.AdminAuthMiddleware(c.issuer))
	group.POST("/:id/reverse", c.reversePoint)
}

// @Security AdminToken
// reversePoint godoc
// @Summary Reverse a ledger entry
// @Description Marks the entry void and appends a negative entry with the given reason
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Ledger entry ID"
// @Param request body voting.PointInput true "Reason"
// @Success 201 {object} models.PointChangeResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/admin/points/{id}/reverse [post]
func (c *PointsController) reversePoint(g *gin.Context) {
	var req voting.PointInput
	if !bindJSON(g, &req) {
		return
	}
	person, reversal, err := c.service.ReversePoint(g.Request.Context(), transport.SessionFrom(g), g.Param("id"), req)
	if err != nil {
		respondError(g, "POINTS", err, models.MsgReversePoint)
		return
	}
	g.JSON(http.StatusCreated, models.TransformPointChange(person, reversal))
}
