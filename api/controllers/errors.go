package controllers

import (
	"errors"
	"net/http"

	"github.com/alex-pricope/nomination-board/api/models"
	"github.com/alex-pricope/nomination-board/logging"
	"github.com/alex-pricope/nomination-board/storage"
	"github.com/alex-pricope/nomination-board/voting"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to its status code. Anything unrecognised is
// logged and answered with the generic message of the action.
func respondError(g *gin.Context, area string, err error, generic string) {
	var verr *voting.ValidationError
	switch {
	case errors.As(err, &verr):
		g.JSON(http.StatusBadRequest, models.ValidationErrorResponse{Error: voting.ErrValidation.Error(), Fields: verr.Fields})
	case errors.Is(err, voting.ErrUnauthorized):
		g.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, storage.ErrNotFound):
		g.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	case errors.Is(err, voting.ErrNominationResolved),
		errors.Is(err, voting.ErrNominationClosed),
		errors.Is(err, voting.ErrPendingNominationExists),
		errors.Is(err, voting.ErrNotReversible),
		errors.Is(err, storage.ErrItemWithIDAlreadyExists):
		g.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	default:
		logging.Log.Errorf("%s: %s: %v", area, generic, err)
		g.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: generic})
	}
}

// bindJSON decodes the body into req and answers 400 on malformed JSON.
func bindJSON(g *gin.Context, req any) bool {
	if err := g.ShouldBindJSON(req); err != nil {
		g.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
