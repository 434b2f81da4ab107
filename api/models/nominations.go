package models

import (
	"time"

	"github.com/alex-pricope/nomination-board/storage"
	"github.com/alex-pricope/nomination-board/voting"
)

type NominationResponse struct {
	ID            string            `json:"id"`
	PersonID      string            `json:"person_id"`
	PersonName    string            `json:"person_name,omitempty"`
	NominatorName string            `json:"nominator_name"`
	Reason        string            `json:"reason"`
	Status        string            `json:"status"`
	Votes         voting.VoteCounts `json:"votes"`
	CreatedAt     time.Time         `json:"created_at"`
}

// CastVoteRequest is the body of a vote; the nomination id comes from the path.
type CastVoteRequest struct {
	VoterName string `json:"voter_name"`
	VoteType  string `json:"vote_type"`
}

type VoteResponse struct {
	ID        string    `json:"id"`
	VoterName string    `json:"voter_name"`
	VoteType  string    `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

type VotesResponse struct {
	NominationID string            `json:"nomination_id"`
	Votes        []VoteResponse    `json:"votes"`
	Counts       voting.VoteCounts `json:"counts"`
}

func TransformNomination(n *storage.Nomination, counts voting.VoteCounts) NominationResponse {
	res := NominationResponse{
		ID:            n.ID,
		PersonID:      n.PersonID,
		NominatorName: n.NominatorName,
		Reason:        n.Reason,
		Status:        string(n.Status),
		Votes:         counts,
		CreatedAt:     n.CreatedAt,
	}
	if n.Person != nil {
		res.PersonName = n.Person.Name
	}
	return res
}

func TransformVotes(nominationID string, votes []*storage.Vote, counts voting.VoteCounts) VotesResponse {
	res := VotesResponse{NominationID: nominationID, Votes: make([]VoteResponse, 0, len(votes)), Counts: counts}
	for _, v := range votes {
		res.Votes = append(res.Votes, VoteResponse{
			ID:        v.ID,
			VoterName: v.VoterName,
			VoteType:  string(v.VoteType),
			CreatedAt: v.CreatedAt,
		})
	}
	return res
}
