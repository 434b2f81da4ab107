package models

import (
	"time"

	"github.com/alex-pricope/nomination-board/ranking"
	"github.com/alex-pricope/nomination-board/storage"
)

type PersonResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	PersonResponse
	Rank     string `json:"rank"`
	Position int    `json:"position"`
	Tied     bool   `json:"tied"`
}

type UpdatePersonRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func TransformPerson(p *storage.Person) PersonResponse {
	return PersonResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Points:      p.Points,
		CreatedAt:   p.CreatedAt,
	}
}

func TransformLeaderboard(ranked []ranking.Ranked) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, LeaderboardEntry{
			PersonResponse: TransformPerson(r.Person),
			Rank:           r.Label,
			Position:       r.Position,
			Tied:           r.Tied,
		})
	}
	return entries
}
