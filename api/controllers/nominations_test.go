package controllers

import (
	"net/http"
	"testing"

	tu "github.com/alex-pricope/nomination-board/api/controllers/testing"
	"github.com/alex-pricope/nomination-board/api/models"
	"github.com/alex-pricope/nomination-board/voting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReason = "Led the migration to the new billing platform"

func TestNominationFlow(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)
	person := env.persons[1]

	res := tu.PerformRequest(env.router, http.MethodPost, "/api/nominations", voting.NominationInput{
		PersonID:      person.ID,
		NominatorName: "Ana",
		Reason:        validReason,
	}, nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	nomination, err := tu.Decode[models.NominationResponse](res)
	require.NoError(t, err)
	assert.Equal(t, "pending", nomination.Status)

	votesPath := "/api/nominations/" + nomination.ID + "/votes"
	for _, vote := range []models.CastVoteRequest{
		{VoterName: "Luis", VoteType: "for"},
		{VoterName: "Marta", VoteType: "for"},
		{VoterName: "Pablo", VoteType: "against"},
	} {
		res = tu.PerformRequest(env.router, http.MethodPost, votesPath, vote, nil)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	}

	res = tu.PerformRequest(env.router, http.MethodGet, votesPath, nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	votes, err := tu.Decode[models.VotesResponse](res)
	require.NoError(t, err)
	assert.Len(t, votes.Votes, 3)
	assert.Equal(t, voting.VoteCounts{For: 2, Against: 1, Total: 3}, votes.Counts)

	res = tu.PerformRequest(env.router, http.MethodPost, "/api/admin/nominations/"+nomination.ID+"/approve", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = tu.PerformRequest(env.router, http.MethodPost, "/api/admin/nominations/"+nomination.ID+"/approve", nil, tu.Bearer(token))
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	approved, err := tu.Decode[models.NominationResponse](res)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, 3, approved.Votes.Total)

	res = tu.PerformRequest(env.router, http.MethodPost, "/api/admin/nominations/"+nomination.ID+"/reject", nil, tu.Bearer(token))
	assert.Equal(t, http.StatusConflict, res.Code)

	res = tu.PerformRequest(env.router, http.MethodPost, votesPath, models.CastVoteRequest{VoterName: "Late", VoteType: "for"}, nil)
	assert.Equal(t, http.StatusConflict, res.Code)

	res = tu.PerformRequest(env.router, http.MethodGet, "/api/persons", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	board, err := tu.Decode[[]models.LeaderboardEntry](res)
	require.NoError(t, err)
	require.Len(t, board, len(env.persons))
	assert.Equal(t, person.ID, board[0].ID)
	assert.Equal(t, 1, board[0].Points)
	assert.Equal(t, "1", board[0].Rank)
	assert.Equal(t, "T2", board[1].Rank)

	res = tu.PerformRequest(env.router, http.MethodGet, "/api/persons/"+person.ID+"/points", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	history, err := tu.Decode[[]models.PointEntryResponse](res)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "nomination", history[0].AddedBy)
	require.NotNil(t, history[0].NominationID)
	assert.Equal(t, nomination.ID, *history[0].NominationID)
}

func TestSubmitNominationValidation(t *testing.T) {
	env := setupTestRouter(t)
	person := env.persons[0]

	t.Run("Unhappy path - short reason", func(t *testing.T) {
		res := tu.PerformRequest(env.router, http.MethodPost, "/api/nominations", voting.NominationInput{
			PersonID: person.ID, NominatorName: "Ana", Reason: "too short",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Code)
		body, err := tu.Decode[models.ValidationErrorResponse](res)
		require.NoError(t, err)
		assert.Contains(t, body.Fields, "reason")
	})

	t.Run("Unhappy path - unknown person", func(t *testing.T) {
		res := tu.PerformRequest(env.router, http.MethodPost, "/api/nominations", voting.NominationInput{
			PersonID: "missing", NominatorName: "Ana", Reason: validReason,
		}, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - malformed body", func(t *testing.T) {
		res := tu.PerformRequest(env.router, http.MethodPost, "/api/nominations", "not an object", nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - second pending nomination", func(t *testing.T) {
		input := voting.NominationInput{PersonID: person.ID, NominatorName: "Ana", Reason: validReason}
		res := tu.PerformRequest(env.router, http.MethodPost, "/api/nominations", input, nil)
		require.Equal(t, http.StatusCreated, res.Code)
		res = tu.PerformRequest(env.router, http.MethodPost, "/api/nominations", input, nil)
		assert.Equal(t, http.StatusConflict, res.Code)
	})
}

func TestListNominations(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	ids := make([]string, 0, 2)
	for _, p := range env.persons[:2] {
		res := tu.PerformRequest(env.router, http.MethodPost, "/api/nominations", voting.NominationInput{
			PersonID: p.ID, NominatorName: "Ana", Reason: validReason,
		}, nil)
		require.Equal(t, http.StatusCreated, res.Code)
		n, err := tu.Decode[models.NominationResponse](res)
		require.NoError(t, err)
		ids = append(ids, n.ID)
	}
	res := tu.PerformRequest(env.router, http.MethodPost, "/api/admin/nominations/"+ids[0]+"/reject", nil, tu.Bearer(token))
	require.Equal(t, http.StatusOK, res.Code)

	res = tu.PerformRequest(env.router, http.MethodGet, "/api/nominations?status=pending", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	pending, err := tu.Decode[[]models.NominationResponse](res)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[1], pending[0].ID)
	assert.NotEmpty(t, pending[0].PersonName)

	res = tu.PerformRequest(env.router, http.MethodGet, "/api/nominations", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	all, err := tu.Decode[[]models.NominationResponse](res)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	res = tu.PerformRequest(env.router, http.MethodGet, "/api/nominations?status=bogus", nil, nil)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
