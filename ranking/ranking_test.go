package ranking

import (
	"testing"

	"github.com/alex-pricope/nomination-board/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func persons(points ...int) []*storage.Person {
	out := make([]*storage.Person, len(points))
	for i, p := range points {
		out[i] = &storage.Person{ID: string(rune('a' + i)), Name: string(rune('A' + i)), Points: p}
	}
	return out
}

func labels(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Label
	}
	return out
}

func TestRank(t *testing.T) {
	t.Run("Competition ranking skips past tied groups", func(t *testing.T) {
		ranked := Rank(persons(1, 5, 3, 5))

		assert.Equal(t, []string{"T1", "T1", "3", "4"}, labels(ranked))
		assert.Equal(t, []int{1, 1, 3, 4}, []int{ranked[0].Position, ranked[1].Position, ranked[2].Position, ranked[3].Position})
		assert.Equal(t, 3, ranked[2].Person.Points)
		assert.Equal(t, 1, ranked[3].Person.Points)
	})

	t.Run("Ties keep input order", func(t *testing.T) {
		ranked := Rank(persons(1, 5, 3, 5))

		assert.Equal(t, "b", ranked[0].Person.ID)
		assert.Equal(t, "d", ranked[1].Person.ID)
	})

	t.Run("All equal are all tied first", func(t *testing.T) {
		ranked := Rank(persons(2, 2, 2))

		assert.Equal(t, []string{"T1", "T1", "T1"}, labels(ranked))
		for _, r := range ranked {
			assert.True(t, r.Tied)
		}
	})

	t.Run("Single person has no tie marker", func(t *testing.T) {
		ranked := Rank(persons(7))

		require.Len(t, ranked, 1)
		assert.Equal(t, "1", ranked[0].Label)
		assert.False(t, ranked[0].Tied)
	})

	t.Run("Empty input gives empty output", func(t *testing.T) {
		assert.Empty(t, Rank(nil))
		assert.NotNil(t, Rank(nil))
	})

	t.Run("Tie in the middle", func(t *testing.T) {
		ranked := Rank(persons(9, 4, 4, 1, 0))

		assert.Equal(t, []string{"1", "T2", "T2", "4", "5"}, labels(ranked))
	})

	t.Run("Input slice is untouched", func(t *testing.T) {
		in := persons(1, 2, 3)
		Rank(in)

		assert.Equal(t, "a", in[0].ID)
		assert.Equal(t, "c", in[2].ID)
	})
}
