package dedup

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func words(prefix string, from, to int) []string {
	result := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		result = append(result, fmt.Sprintf("%s%d", prefix, i))
	}
	return result
}

func TestSimilarity(t *testing.T) {
	rq := require.New(t)

	base := strings.Join(words("слово", 0, 20), " ")

	testCases := []struct {
		name  string
		a     string
		b     string
		want  float64
		delta float64
	}{
		{
			name:  "Identical",
			a:     base,
			b:     base,
			want:  1,
			delta: 1e-9,
		},
		{
			name:  "Case and punctuation do not matter",
			a:     "Двухкомнатная квартира, Ленинский район!",
			b:     "двухкомнатная КВАРТИРА ленинский район",
			want:  1,
			delta: 1e-9,
		},
		{
			name:  "One extra word",
			a:     base,
			b:     base + " дополнительно",
			want:  0.954,
			delta: 0.001,
		},
		{
			name:  "Three shared words of ten",
			a:     strings.Join(words("слово", 0, 10), " "),
			b:     strings.Join(append(words("слово", 0, 3), words("другое", 0, 7)...), " "),
			want:  0.178,
			delta: 0.001,
		},
		{
			name:  "Nothing shared",
			a:     "однокомнатная квартира",
			b:     "гараж продается",
			want:  0,
			delta: 1e-9,
		},
		{
			name:  "Single letter tokens are ignored",
			a:     "а б в",
			b:     "а б в",
			want:  0,
			delta: 1e-9,
		},
		{
			name:  "Empty text",
			a:     "",
			b:     base,
			want:  0,
			delta: 1e-9,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got := Similarity(tc.a, tc.b)

			rq.InDelta(tc.want, got, tc.delta)
			rq.InDelta(got, Similarity(tc.b, tc.a), 1e-12)
			rq.GreaterOrEqual(got, 0.0)
			rq.LessOrEqual(got, 1.0)
		})
	}
}

func TestTermFrequencies(t *testing.T) {
	rq := require.New(t)

	tf := termFrequencies("Цена - 3500000, цена договорная; этаж 3/9")

	rq.Equal(map[string]int{
		"цена":       2,
		"3500000":    1,
		"договорная": 1,
		"этаж":       1,
	}, tf)
}
