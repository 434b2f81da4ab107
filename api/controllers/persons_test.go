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

func TestPersonsAdmin(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)

	t.Run("Unhappy path - anonymous create", func(t *testing.T) {
		res := tu.PerformRequest(env.router, http.MethodPost, "/api/admin/persons", voting.PersonInput{Name: "Eva"}, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	var created models.PersonResponse
	t.Run("Happy path - create", func(t *testing.T) {
		res := tu.PerformRequest(env.router, http.MethodPost, "/api/admin/persons", voting.PersonInput{Name: "Eva", Description: "QA"}, tu.Bearer(token))
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
		var err error
		created, err = tu.Decode[models.PersonResponse](res)
		require.NoError(t, err)
		assert.Equal(t, "Eva", created.Name)
		assert.Equal(t, 0, created.Points)
	})

	t.Run("Unhappy path - create without name", func(t *testing.T) {
		res := tu.PerformRequest(env.router, http.MethodPost, "/api/admin/persons", voting.PersonInput{}, tu.Bearer(token))
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - update", func(t *testing.T) {
		name := "Eva Ruiz"
		res := tu.PerformRequest(env.router, http.MethodPut, "/api/admin/persons/"+created.ID, models.UpdatePersonRequest{Name: &name}, tu.Bearer(token))
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())
		updated, err := tu.Decode[models.PersonResponse](res)
		require.NoError(t, err)
		assert.Equal(t, "Eva Ruiz", updated.Name)
		assert.Equal(t, "QA", updated.Description)
	})

	t.Run("Unhappy path - update missing person", func(t *testing.T) {
		name := "Nobody"
		res := tu.PerformRequest(env.router, http.MethodPut, "/api/admin/persons/missing", models.UpdatePersonRequest{Name: &name}, tu.Bearer(token))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Happy path - delete", func(t *testing.T) {
		res := tu.PerformRequest(env.router, http.MethodDelete, "/api/admin/persons/"+created.ID, nil, tu.Bearer(token))
		require.Equal(t, http.StatusOK, res.Code)

		res = tu.PerformRequest(env.router, http.MethodGet, "/api/persons/"+created.ID+"/points", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestAwardAndReversePoint(t *testing.T) {
	env := setupTestRouter(t)
	token := env.login(t)
	person := env.persons[2]

	res := tu.PerformRequest(env.router, http.MethodPost, "/api/admin/persons/"+person.ID+"/points", voting.PointInput{Reason: "Mentoring"}, tu.Bearer(token))
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	award, err := tu.Decode[models.PointChangeResponse](res)
	require.NoError(t, err)
	assert.Equal(t, 1, award.Person.Points)
	assert.Equal(t, 1, award.Entry.PointsAdded)
	assert.Equal(t, "admin", award.Entry.AddedBy)

	res = tu.PerformRequest(env.router, http.MethodPost, "/api/admin/points/"+award.Entry.ID+"/reverse", voting.PointInput{Reason: "Duplicate"}, nil)
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = tu.PerformRequest(env.router, http.MethodPost, "/api/admin/points/"+award.Entry.ID+"/reverse", voting.PointInput{Reason: "Duplicate"}, tu.Bearer(token))
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	reversal, err := tu.Decode[models.PointChangeResponse](res)
	require.NoError(t, err)
	assert.Equal(t, 0, reversal.Person.Points)
	assert.Equal(t, -1, reversal.Entry.PointsAdded)

	res = tu.PerformRequest(env.router, http.MethodPost, "/api/admin/points/"+award.Entry.ID+"/reverse", voting.PointInput{Reason: "Again"}, tu.Bearer(token))
	assert.Equal(t, http.StatusConflict, res.Code)

	res = tu.PerformRequest(env.router, http.MethodPost, "/api/admin/points/missing/reverse", voting.PointInput{Reason: "Nothing"}, tu.Bearer(token))
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = tu.PerformRequest(env.router, http.MethodGet, "/api/persons/"+person.ID+"/points", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	history, err := tu.Decode[[]models.PointEntryResponse](res)
	require.NoError(t, err)
	require.Len(t, history, 2)
	voided := 0
	for _, e := range history {
		if e.VoidedAt != nil {
			voided++
			assert.Equal(t, award.Entry.ID, e.ID)
		}
	}
	assert.Equal(t, 1, voided)
}
