package lox_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"flat_price/pkg/lox"
)

func TestMap(t *testing.T) {
	rq := require.New(t)

	rq.Equal([]string{"1", "2", "3"}, lox.Map([]int{1, 2, 3}, strconv.Itoa))
	rq.Empty(lox.Map([]int(nil), strconv.Itoa))
}

func TestGroupByOrdered(t *testing.T) {
	rq := require.New(t)

	groups := lox.GroupByOrdered([]int{5, 2, 7, 4, 9, 1}, func(i int) int { return i % 2 })

	rq.Equal([][]int{{5, 7, 9, 1}, {2, 4}}, groups)
	rq.Empty(lox.GroupByOrdered([]int(nil), func(i int) int { return i }))
}
