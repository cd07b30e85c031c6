package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infographic/internal/domain"
)

type fixedSource []int

func (f *fixedSource) IntN(n int) int {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestPickFollowsSource(t *testing.T) {
	src := &fixedSource{2, 0, 1}
	sel := NewSelector(src)

	assert.Equal(t, domain.LayoutZigzagTimeline, sel.Pick())
	assert.Equal(t, domain.LayoutGridCards, sel.Pick())
	assert.Equal(t, domain.LayoutConnectedFlow, sel.Pick())
}

func TestPickClampsOutOfRange(t *testing.T) {
	src := &fixedSource{7}
	assert.Equal(t, domain.LayoutGridCards, NewSelector(src).Pick())
}

func TestPickCoversAllLayouts(t *testing.T) {
	sel := NewSeeded(42)
	seen := map[domain.Layout]int{}
	for i := 0; i < 300; i++ {
		l := sel.Pick()
		require.True(t, l.Valid(), "invalid layout %q", l)
		seen[l]++
	}
	assert.Len(t, seen, 3)
}

func TestSeededSelectorIsDeterministic(t *testing.T) {
	a, b := NewSeeded(7), NewSeeded(7)
	for i := 0; i < 20; i++ {
		require.Equal(t, a.Pick(), b.Pick())
	}
}

func TestDefaultSourceStaysInRange(t *testing.T) {
	sel := NewSelector(nil)
	for i := 0; i < 50; i++ {
		require.True(t, sel.Pick().Valid())
	}
}
