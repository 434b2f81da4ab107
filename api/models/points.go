package models

import (
	"time"

	"github.com/alex-pricope/nomination-board/storage"
)

type PointEntryResponse struct {
	ID           string     `json:"id"`
	PersonID     string     `json:"person_id"`
	PointsAdded  int        `json:"points_added"`
	Reason       string     `json:"reason"`
	AddedBy      string     `json:"added_by"`
	NominationID *string    `json:"nomination_id"`
	VoidedAt     *time.Time `json:"voided_at,omitempty"`
	VoidedByID   *string    `json:"voided_by_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type PointChangeResponse struct {
	Person PersonResponse     `json:"person"`
	Entry  PointEntryResponse `json:"entry"`
}

func TransformPointEntry(r *storage.PointReason) PointEntryResponse {
	return PointEntryResponse{
		ID:           r.ID,
		PersonID:     r.PersonID,
		PointsAdded:  r.PointsAdded,
		Reason:       r.Reason,
		AddedBy:      r.AddedBy,
		NominationID: r.NominationID,
		VoidedAt:     r.VoidedAt,
		VoidedByID:   r.VoidedByID,
		CreatedAt:    r.CreatedAt,
	}
}

func TransformPointHistory(entries []*storage.PointReason) []PointEntryResponse {
	res := make([]PointEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, TransformPointEntry(e))
	}
	return res
}

func TransformPointChange(p *storage.Person, r *storage.PointReason) PointChangeResponse {
	return PointChangeResponse{Person: TransformPerson(p), Entry: TransformPointEntry(r)}
}
