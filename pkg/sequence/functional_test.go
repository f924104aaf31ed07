package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterCollectKeepsOrder(t *testing.T) {
	got := From([]int{5, 2, 8, 3, 6}).Filter(func(v int) bool { return v%2 == 0 }).Collect()
	assert.Equal(t, []int{2, 8, 6}, got)
}

func TestCollectEmptyIsNotNil(t *testing.T) {
	got := From([]string{}).Collect()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindStopsEarly(t *testing.T) {
	visited := 0
	v, ok := From([]int{1, 2, 3, 4}).Filter(func(v int) bool {
		visited++
		return true
	}).Find(func(v int) bool { return v == 2 })
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, visited)
}

func TestMapAndCount(t *testing.T) {
	it := Map(From([]int{1, 2, 3}), func(v int) string { return string(rune('a' + v - 1)) })
	assert.Equal(t, []string{"a", "b", "c"}, it.Collect())
	assert.Equal(t, 3, it.Count())
}
