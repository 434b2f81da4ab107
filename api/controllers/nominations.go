package controllers

import (
	"net/http"

	"github.com/alex-pricope/nomination-board/api/models"
	"github.com/alex-pricope/nomination-board/api/transport"
	"github.com/alex-pricope/nomination-board/auth"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/alex-pricope/nomination-board/voting"
	"github.com/gin-gonic/gin"
)

type NominationsController struct {
	service *voting.Service
	issuer  *auth.TokenIssuer
}

func NewNominationsController(service *voting.Service, issuer *auth.TokenIssuer) *NominationsController {
	return &NominationsController{
		service: service,
		issuer:  issuer,
	}
}

func (c *NominationsController) RegisterRoutes(engine *gin.Engine) {
	public := engine.Group("/api/nominations")
	public.GET("", c.listNominations)
	public.POST("", c.submitNomination)
	public.GET("/:id/votes", c.listVotes)
	public.POST("/:id/votes", c.castVote)

	admin := engine.Group("/api/admin/nominations", transport.AdminAuthMiddleware(c.issuer))
	admin.POST("/:id/approve", c.resolve(storage.NominationApproved))
	admin.POST("/:id/reject", c.resolve(storage.NominationRejected))
}

// listNominations godoc
// @Summary List nominations, newest first
// @Tags nominations
// @Produce json
// @Param status query string false "pending, approved or rejected"
// @Success 200 {array} models.NominationResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/nominations [get]
func (c *NominationsController) listNominations(g *gin.Context) {
	status := storage.NominationStatus(g.Query("status"))
	switch status {
	case "", storage.NominationPending, storage.NominationApproved, storage.NominationRejected:
	default:
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid status filter"})
		return
	}

	ctx := g.Request.Context()
	nominations, err := c.service.ListNominations(ctx, status)
	if err != nil {
		respondError(g, "NOMINATION", err, models.MsgListNominations)
		return
	}

	res := make([]models.NominationResponse, 0, len(nominations))
	for _, n := range nominations {
		counts, err := c.service.VoteCounts(ctx, n.ID)
		if err != nil {
			respondError(g, "NOMINATION", err, models.MsgListNominations)
			return
		}
		res = append(res, models.TransformNomination(n, counts))
	}
	g.JSON(http.StatusOK, res)
}

// submitNomination godoc
// @Summary Nominate a person for a point
// @Tags nominations
// @Accept json
// @Produce json
// @Param request body voting.NominationInput true "Nomination"
// @Success 201 {object} models.NominationResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/nominations [post]
func (c *NominationsController) submitNomination(g *gin.Context) {
	var req voting.NominationInput
	if !bindJSON(g, &req) {
		return
	}
	nomination, err := c.service.SubmitNomination(g.Request.Context(), req)
	if err != nil {
		respondError(g, "NOMINATION", err, models.MsgCreateNomination)
		return
	}
	g.JSON(http.StatusCreated, models.TransformNomination(nomination, voting.VoteCounts{}))
}

// listVotes godoc
// @Summary Votes of a nomination with their tally
// @Tags nominations
// @Produce json
// @Param id path string true "Nomination ID"
// @Success 200 {object} models.VotesResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/nominations/{id}/votes [get]
func (c *NominationsController) listVotes(g *gin.Context) {
	id := g.Param("id")
	votes, counts, err := c.service.Votes(g.Request.Context(), id)
	if err != nil {
		respondError(g, "VOTE", err, models.MsgLoadVotes)
		return
	}
	g.JSON(http.StatusOK, models.TransformVotes(id, votes, counts))
}

// castVote godoc
// @Summary Vote on a pending nomination
// @Tags nominations
// @Accept json
// @Produce json
// @Param id path string true "Nomination ID"
// @Param request body models.CastVoteRequest true "Vote"
// @Success 201 {object} models.VoteResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/nominations/{id}/votes [post]
func (c *NominationsController) castVote(g *gin.Context) {
	var req models.CastVoteRequest
	if !bindJSON(g, &req) {
		return
	}
	vote, err := c.service.CastVote(g.Request.Context(), voting.VoteInput{
		NominationID: g.Param("id"),
		VoterName:    req.VoterName,
		VoteType:     req.VoteType,
	})
	if err != nil {
		respondError(g, "VOTE", err, models.MsgCastVote)
		return
	}
	g.JSON(http.StatusCreated, models.VoteResponse{
		ID:        vote.ID,
		VoterName: vote.VoterName,
		VoteType:  string(vote.VoteType),
		CreatedAt: vote.CreatedAt,
	})
}

// @Security AdminToken
// resolve godoc
// @Summary Approve or reject a pending nomination
// @Description Approval adds one point to the nominated person
// @Tags admin
// @Produce json
// @Param id path string true "Nomination ID"
// @Success 200 {object} models.NominationResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/admin/nominations/{id}/approve [post]
// @Router /api/admin/nominations/{id}/reject [post]
func (c *NominationsController) resolve(decision storage.NominationStatus) gin.HandlerFunc {
	return func(g *gin.Context) {
		ctx := g.Request.Context()
		nomination, err := c.service.ResolveNomination(ctx, transport.SessionFrom(g), g.Param("id"), decision)
		if err != nil {
			respondError(g, "NOMINATION", err, models.MsgResolveNomination)
			return
		}
		counts, err := c.service.VoteCounts(ctx, nomination.ID)
		if err != nil {
			respondError(g, "NOMINATION", err, models.MsgResolveNomination)
			return
		}
		g.JSON(http.StatusOK, models.TransformNomination(nomination, counts))
	}
}
