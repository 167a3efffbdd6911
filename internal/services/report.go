package services

import (
	"agv-route-service/internal/domain"
	"fmt"
	"math"
)

// RankingRow is the presentation form of one ranked tour.
type RankingRow struct {
	Rank          string
	VisitOrder    []string
	FullPath      []string
	Sequence      string
	Distance      float64
	TravelMinutes float64
	TotalMinutes  float64
}

// FormatRanking turns ranked candidates into display rows. Numbers are
// rounded to two decimals; the sequence shows the depot on both ends.
func FormatRanking(depot string, candidates []domain.TourCandidate) []RankingRow {
	rows := make([]RankingRow, 0, len(candidates))
	for i, c := range candidates {
		rows = append(rows, RankingRow{
			Rank:          fmt.Sprintf("#%d", i+1),
			VisitOrder:    append([]string(nil), c.VisitOrder...),
			FullPath:      append([]string(nil), c.Path...),
			Sequence:      c.StopSequence(depot).String(),
			Distance:      round2(c.Distance),
			TravelMinutes: round2(c.TravelMinutes),
			TotalMinutes:  round2(c.TotalMinutes),
		})
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
