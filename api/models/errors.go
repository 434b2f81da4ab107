package models

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Messages returned for unexpected failures. Backend details are logged, never sent.
const (
	MsgListPersons       = "error loading the leaderboard, try again"
	MsgLoadPoints        = "error loading the point history, try again"
	MsgCreatePerson      = "error creating the person, try again"
	MsgUpdatePerson      = "error updating the person, try again"
	MsgDeletePerson      = "error deleting the person, try again"
	MsgListNominations   = "error loading the nominations, try again"
	MsgCreateNomination  = "error creating the nomination, try again"
	MsgResolveNomination = "error resolving the nomination, try again"
	MsgLoadVotes         = "error loading the votes, try again"
	MsgCastVote          = "error registering the vote, try again"
	MsgAwardPoint        = "error adding the point, try again"
	MsgReversePoint      = "error reversing the point, try again"
	MsgLogin             = "error signing in, try again"
	MsgReconcile         = "error reconciling points, try again"
)
