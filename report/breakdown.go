package report

import (
	"cmp"
	"math"
	"slices"

	"github.com/slihbo/WinTrace/internal/models"
)

// Breakdown converts per-category durations into integer percentages of
// total. Categories without time are omitted and the result is empty when
// total is zero.
//
// Percentages are apportioned by largest remainder: each share is the floor
// or the ceiling of its exact value and together they add up to exactly 100.
func Breakdown(
	totals map[models.Category]float64,
	total float64,
) []models.CategoryShare {
	if total <= 0 {
		return []models.CategoryShare{}
	}

	type share struct {
		models.CategoryShare
		remainder float64
		order     int
	}

	shares := make([]share, 0, len(totals))
	allotted := 0

	for i, c := range models.Categories {
		secs := totals[c]
		if secs <= 0 {
			continue
		}

		exact := secs / total * 100
		floor := math.Floor(exact)

		shares = append(shares, share{
			CategoryShare: models.CategoryShare{
				Category:   c,
				Seconds:    secs,
				Percentage: int(floor),
			},
			remainder: exact - floor,
			order:     i,
		})

		allotted += int(floor)
	}

	slices.SortFunc(shares, func(x, y share) int {
		if c := cmp.Compare(y.remainder, x.remainder); c != 0 {
			return c
		}

		return cmp.Compare(x.order, y.order)
	})

	for i := 0; allotted < 100 && len(shares) > 0; i = (i + 1) % len(shares) {
		shares[i].Percentage++
		allotted++
	}

	slices.SortFunc(shares, func(x, y share) int {
		if c := cmp.Compare(y.Seconds, x.Seconds); c != 0 {
			return c
		}

		return cmp.Compare(x.order, y.order)
	})

	out := make([]models.CategoryShare, len(shares))
	for i := range shares {
		out[i] = shares[i].CategoryShare
	}

	return out
}
