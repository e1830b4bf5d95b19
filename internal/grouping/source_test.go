package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformSource_Range(t *testing.T) {
	src := NewUniformSource(11)
	for n := 1; n <= 100; n++ {
		for i := 0; i < 20; i++ {
			v := src.Uniform(n)
			require.GreaterOrEqual(t, v, 0.0)
			require.Less(t, v, float64(n))
		}
	}
	assert.Equal(t, 0.0, src.Uniform(0))
	assert.Equal(t, 0.0, src.Uniform(-3))
}

func TestUniformSource_Deterministic(t *testing.T) {
	a, b := NewUniformSource(5), NewUniformSource(5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Uniform(1000), b.Uniform(1000))
	}
	assert.Equal(t, uint64(5), a.Seed())
}

func TestNewRandomSource_ReportsSeed(t *testing.T) {
	src := NewRandomSource()
	replay := NewUniformSource(src.Seed())
	assert.Equal(t, replay.Uniform(50), src.Uniform(50))
}

func TestBalance(t *testing.T) {
	a, err := Assign(makeRows(10), 3, NewUniformSource(1))
	require.NoError(t, err)
	b := a.Balance()
	assert.Equal(t, 3, b.Groups)
	assert.Equal(t, 10, b.Rows)
	assert.Equal(t, 3, b.Min)
	assert.Equal(t, 4, b.Max)
	assert.InDelta(t, 10.0/3.0, b.Mean, 1e-9)
	assert.Greater(t, b.StdDev, 0.0)
	assert.Contains(t, b.String(), "min 3 max 4")
}

func TestBalance_Empty(t *testing.T) {
	a, err := Assign(nil, 2, NewUniformSource(1))
	require.NoError(t, err)
	b := a.Balance()
	assert.Equal(t, 0, b.Max)
	assert.Equal(t, 0.0, b.StdDev)
}
