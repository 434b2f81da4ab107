// Package ranking orders persons by points using standard competition ranking
// ("1, 2, 2, 4"): tied persons share the position of the first of them, and the next
// distinct score takes its 1-based position in the full ordering.
package ranking

import (
	"sort"
	"strconv"

	"github.com/alex-pricope/nomination-board/storage"
	"github.com/samber/lo"
)

const TieMarker = "T"

type Ranked struct {
	Person   *storage.Person `json:"person"`
	Position int             `json:"position"`
	Tied     bool            `json:"tied"`
	Label    string          `json:"rank"`
}

// Rank returns the persons sorted by points descending. Persons with equal points
// keep their relative input order. The input slice is not modified.
func Rank(persons []*storage.Person) []Ranked {
	if len(persons) == 0 {
		return []Ranked{}
	}

	sorted := make([]*storage.Person, len(persons))
	copy(sorted, persons)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	perScore := lo.CountValuesBy(sorted, func(p *storage.Person) int { return p.Points })

	out := make([]Ranked, len(sorted))
	for i, p := range sorted {
		position := i + 1
		if i > 0 && sorted[i-1].Points == p.Points {
			position = out[i-1].Position
		}
		tied := perScore[p.Points] > 1
		out[i] = Ranked{
			Person:   p,
			Position: position,
			Tied:     tied,
			Label:    label(position, tied),
		}
	}
	return out
}

func label(position int, tied bool) string {
	if tied {
		return TieMarker + strconv.Itoa(position)
	}
	return strconv.Itoa(position)
}
