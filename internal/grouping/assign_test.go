package grouping

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/groupr-cli/internal/table"
)

func makeRows(n int) []*table.Row {
	var b strings.Builder
	b.WriteString("ID,Name\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,person-%d\n", i, i)
	}
	return table.Parse(b.String()).Rows
}

// countingSource always picks the last remaining element and records how
// often it was asked.
type countingSource struct {
	calls []int
}

func (c *countingSource) Uniform(n int) float64 {
	c.calls = append(c.calls, n)
	return float64(n) - 0.5
}

func TestPartition_BalancedAndComplete(t *testing.T) {
	for r := 0; r <= 50; r++ {
		for g := 1; g <= 7; g++ {
			rows := makeRows(r)
			a, err := Assign(rows, g, NewUniformSource(uint64(r*31+g)))
			require.NoError(t, err)
			require.Len(t, a.Groups, g)

			lo, hi := r/g, (r+g-1)/g
			seen := make(map[*table.Row]int, r)
			for _, grp := range a.Groups {
				assert.GreaterOrEqual(t, len(grp), lo, "R=%d G=%d", r, g)
				assert.LessOrEqual(t, len(grp), hi, "R=%d G=%d", r, g)
				for _, row := range grp {
					seen[row]++
				}
			}
			require.Equal(t, r, a.Len())
			require.Len(t, seen, r)
			for _, row := range rows {
				assert.Equal(t, 1, seen[row], "R=%d G=%d row %s", r, g, row.Value("iD"))
			}
		}
	}
}

func TestPartition_ConsumesSourceOncePerElement(t *testing.T) {
	src := &countingSource{}
	a, err := Assign(makeRows(10), 2, src)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, src.calls)
	assert.Equal(t, []int{5, 5}, a.Sizes())
}

func TestPartition_DeterministicDrawSequence(t *testing.T) {
	rows := makeRows(4)
	// Always draw index 0. Swap-remove moves the last index into slot 0:
	// pool [0 1 2 3] -> pick 0 -> [3 1 2] -> pick 3 -> [2 1] -> pick 2 -> [1] -> pick 1.
	zero := SourceFunc(func(int) float64 { return 0 })
	a, err := Assign(rows, 2, zero)
	require.NoError(t, err)
	ids := func(g []*table.Row) []string {
		out := make([]string, len(g))
		for i, r := range g {
			out[i] = r.Value("iD")
		}
		return out
	}
	assert.Equal(t, []string{"0", "2"}, ids(a.Groups[0]))
	assert.Equal(t, []string{"3", "1"}, ids(a.Groups[1]))
}

func TestPartition_OutOfRangeDrawsAreClamped(t *testing.T) {
	wild := SourceFunc(func(n int) float64 { return float64(n) * 2 })
	a, err := Assign(makeRows(5), 3, wild)
	require.NoError(t, err)
	assert.Equal(t, 5, a.Len())

	neg := SourceFunc(func(int) float64 { return -1 })
	a, err = Assign(makeRows(5), 3, neg)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, a.Sizes())
}

func TestPartition_SameSeedSameResult(t *testing.T) {
	rows := makeRows(20)
	a, err := Assign(rows, 3, NewUniformSource(42))
	require.NoError(t, err)
	b, err := Assign(rows, 3, NewUniformSource(42))
	require.NoError(t, err)
	assert.Equal(t, a.Groups, b.Groups)
}

func TestPartition_MappingVariesAcrossSeeds(t *testing.T) {
	rows := makeRows(12)
	first, err := Assign(rows, 2, NewUniformSource(1))
	require.NoError(t, err)
	differs := false
	for seed := uint64(2); seed < 12 && !differs; seed++ {
		next, err := Assign(rows, 2, NewUniformSource(seed))
		require.NoError(t, err)
		for i := range first.Groups[0] {
			if first.Groups[0][i] != next.Groups[0][i] {
				differs = true
				break
			}
		}
	}
	assert.True(t, differs, "expected the row-to-group mapping to vary across seeds")
}

func TestPartition_ZeroRows(t *testing.T) {
	a, err := Assign(nil, 3, NewUniformSource(7))
	require.NoError(t, err)
	require.Len(t, a.Groups, 3)
	for _, g := range a.Groups {
		assert.Empty(t, g)
	}
}

func TestPartition_InvalidConfiguration(t *testing.T) {
	rows := makeRows(3)
	for _, g := range []int{0, -1, -10, MaxGroups + 1, 1_000_000_000, math.MaxInt} {
		_, err := Assign(rows, g, NewUniformSource(1))
		require.ErrorIs(t, err, ErrInvalidConfiguration, "G=%d", g)
	}
	_, err := Assign(rows, 2, nil)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = AssignTable(nil, 2, NewUniformSource(1))
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestPartition_MaxGroupsAccepted(t *testing.T) {
	groups, err := Partition([]int{1, 2, 3}, MaxGroups, NewUniformSource(4))
	require.NoError(t, err)
	require.Len(t, groups, MaxGroups)
	assert.Len(t, groups[0], 1)
	assert.Empty(t, groups[MaxGroups-1])
}

func TestPartition_DoesNotMutateInput(t *testing.T) {
	rows := makeRows(9)
	before := append([]*table.Row(nil), rows...)
	_, err := Assign(rows, 4, NewUniformSource(3))
	require.NoError(t, err)
	assert.Equal(t, before, rows)
}

func TestPartition_Generic(t *testing.T) {
	groups, err := Partition([]string{"a", "b", "c"}, 5, NewUniformSource(9))
	require.NoError(t, err)
	require.Len(t, groups, 5)
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, 3, total)
}
