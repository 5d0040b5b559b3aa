package services

import (
	"sort"

	"meetup/internal/models/response_models"
)

// WorstLegWeight biases ranking toward the fairest option: the longest single
// commute counts 1.5 times on top of the total.
const WorstLegWeight = 1.5

// LegacyMissingLegPenaltySeconds is the historical cost of a leg with no
// authoritative duration. Zero means an unreachable venue can outrank a
// reachable one; FairnessRanker.MissingLegPenaltySeconds overrides it.
const LegacyMissingLegPenaltySeconds = 0

type FairnessRanker struct {
	MissingLegPenaltySeconds int
}

func NewFairnessRanker(missingLegPenaltySeconds int) *FairnessRanker {
	return &FairnessRanker{MissingLegPenaltySeconds: missingLegPenaltySeconds}
}

type LegStats struct {
	TotalSeconds   int
	MaxSeconds     int
	AverageMinutes int
	MaxMinutes     int
	Score          float64
}

// Stats folds the legs of one venue. Legs without a duration cost
// MissingLegPenaltySeconds toward both the sum and the max.
func (r *FairnessRanker) Stats(legs []response_models.TravelLeg) LegStats {
	var s LegStats
	for _, leg := range legs {
		d := r.MissingLegPenaltySeconds
		if leg.HasDuration {
			d = leg.DurationSeconds
		}
		s.TotalSeconds += d
		if d > s.MaxSeconds {
			s.MaxSeconds = d
		}
	}
	if len(legs) > 0 {
		s.AverageMinutes = s.TotalSeconds / len(legs) / 60
	}
	s.MaxMinutes = s.MaxSeconds / 60
	s.Score = WorstLegWeight*float64(s.MaxSeconds) + float64(s.TotalSeconds)
	return s
}

// Score is lower-is-better.
func (r *FairnessRanker) Score(legs []response_models.TravelLeg) float64 {
	return r.Stats(legs).Score
}

// Rank orders recommendations by ascending score; ties keep their input order.
func (r *FairnessRanker) Rank(recs []response_models.RankedRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score < recs[j].Score
	})
}
