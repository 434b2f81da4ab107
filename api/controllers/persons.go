package controllers

import (
	"net/http"

	"github.com/alex-pricope/nomination-board/api/models"
	"github.com/alex-pricope/nomination-board/api/transport"
	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/voting"
	"github.com/gin-gonic/gin"
)

type PersonsController struct {
	service *voting.Service
	issuer  *auth.TokenIssuer
}

func NewPersonsController(service *voting.Service, issuer *auth.TokenIssuer) *PersonsController {
	return &PersonsController{
		service: service,
		issuer:  issuer,
	}
}

func (c *PersonsController) RegisterRoutes(engine *gin.Engine) {
	public := engine.Group("/api/persons")
	public.GET("", c.leaderboard)
	public.GET("/:id/points", c.pointHistory)

	admin := engine.Group("/api/admin/persons", transport.AdminAuthMiddleware(c.issuer))
	admin.POST("", c.createPerson)
	admin.PUT("/:id", c.updatePerson)
	admin.DELETE("/:id", c.deletePerson)
	admin.POST("/:id/points", c.awardPoint)
}

// leaderboard godoc
// @Summary Ranked list of persons
// @Description Persons sorted by points, ties share a position and carry a T marker
// @Tags persons
// @Produce json
// @Success 200 {array} models.LeaderboardEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /api/persons [get]
func (c *PersonsController) leaderboard(g *gin.Context) {
	ranked, err := c.service.Leaderboard(g.Request.Context())
	if err != nil {
		respondError(g, "PERSON", err, models.MsgListPersons)
		return
	}
	g.JSON(http.StatusOK, models.TransformLeaderboard(ranked))
}

// pointHistory godoc
// @Summary Point ledger of a person, newest first
// @Tags persons
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {array} models.PointEntryResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/persons/{id}/points [get]
func (c *PersonsController) pointHistory(g *gin.Context) {
	entries, err := c.service.PointHistory(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, "POINTS", err, models.MsgLoadPoints)
		return
	}
	g.JSON(http.StatusOK, models.TransformPointHistory(entries))
}

// @Security AdminToken
// createPerson godoc
// @Summary Create a person
// @Tags admin
// @Accept json
// @Produce json
// @Param request body voting.PersonInput true "Person"
// @Success 201 {object} models.PersonResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/admin/persons [post]
func (c *PersonsController) createPerson(g *gin.Context) {
	var req voting.PersonInput
	if !bindJSON(g, &req) {
		return
	}
	person, err := c.service.CreatePerson(g.Request.Context(), transport.SessionFrom(g), req)
	if err != nil {
		respondError(g, "PERSON", err, models.MsgCreatePerson)
		return
	}
	g.JSON(http.StatusCreated, models.TransformPerson(person))
}

// @Security AdminToken
// updatePerson godoc
// @Summary Update name or description of a person
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param request body models.UpdatePersonRequest true "Changes"
// @Success 200 {object} models.PersonResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/persons/{id} [put]
func (c *PersonsController) updatePerson(g *gin.Context) {
	var req models.UpdatePersonRequest
	if !bindJSON(g, &req) {
		return
	}
	person, err := c.service.UpdatePerson(g.Request.Context(), transport.SessionFrom(g), g.Param("id"), voting.PersonChanges{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(g, "PERSON", err, models.MsgUpdatePerson)
		return
	}
	g.JSON(http.StatusOK, models.TransformPerson(person))
}

// @Security AdminToken
// deletePerson godoc
// @Summary Delete a person with its nominations, votes and ledger
// @Tags admin
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/persons/{id} [delete]
func (c *PersonsController) deletePerson(g *gin.Context) {
	id := g.Param("id")
	if err := c.service.DeletePerson(g.Request.Context(), transport.SessionFrom(g), id); err != nil {
		respondError(g, "PERSON", err, models.MsgDeletePerson)
		return
	}
	g.JSON(http.StatusOK, gin.H{"deleted": id})
}

// @Security AdminToken
// awardPoint godoc
// @Summary Add one point to a person
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param request body voting.PointInput true "Reason"
// @Success 201 {object} models.PointChangeResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/persons/{id}/points [post]
func (c *PersonsController) awardPoint(g *gin.Context) {
	var req voting.PointInput
	if !bindJSON(g, &req) {
		return
	}
	person, entry, err := c.service.AwardPoint(g.Request.Context(), transport.SessionFrom(g), g.Param("id"), req)
	if err != nil {
		respondError(g, "POINTS", err, models.MsgAwardPoint)
		return
	}
	logging.Log.Infof("POINTS: %s now has %d points", person.Name, person.Points)
	g.JSON(http.StatusCreated, models.TransformPointChange(person, entry))
}
