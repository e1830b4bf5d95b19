package grouping

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Balance summarizes group sizes.
type Balance struct {
	Groups int     `json:"groups"`
	Rows   int     `json:"rows"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Balance computes size statistics for the assignment.
func (a *Assignment) Balance() Balance {
	b := Balance{Groups: len(a.Groups), Rows: a.Len()}
	if len(a.Groups) == 0 {
		return b
	}
	data := stats.LoadRawData(a.Sizes())
	lo, _ := stats.Min(data)
	hi, _ := stats.Max(data)
	b.Min, b.Max = int(lo), int(hi)
	b.Mean, _ = stats.Mean(data)
	b.StdDev, _ = stats.StandardDeviation(data)
	return b
}

func (b Balance) String() string {
	return fmt.Sprintf("rows %d, groups %d, sizes min %d max %d mean %.2f std %.2f",
		b.Rows, b.Groups, b.Min, b.Max, b.Mean, b.StdDev)
}
