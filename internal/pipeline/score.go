package pipeline

import (
	"math"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

// Scorer derives SessionMetrics, including the composite 0-100 sleep quality
// score, from a session's records.
type Scorer struct {
	mapping domain.FieldMapping
}

// NewScorer creates a Scorer for the given field mapping.
func NewScorer(mapping domain.FieldMapping) *Scorer {
	return &Scorer{mapping: mapping}
}

// ScoreSession computes SessionMetrics for one session bucket, which must be
// sorted ascending by timestamp. An empty bucket yields all-nil fields and
// count 0, never an error.
//
// The composite score and the mean/latest pairs read only the most recent
// record; count and start/end timestamps cover the whole bucket, as do the
// whole-session Features.
func (s *Scorer) ScoreSession(records []domain.FeedRecord) domain.SessionMetrics {
	if len(records) == 0 {
		return domain.SessionMetrics{}
	}

	latest := records[len(records)-1]

	hr := domain.ParseNumeric(latest.Field(s.mapping.HeartRate))
	spo2 := domain.ParseNumeric(latest.Field(s.mapping.SpO2))
	ecg := domain.ParseNumeric(latest.Field(s.mapping.ECG))
	temp := domain.ParseNumeric(latest.Field(s.mapping.Temperature))
	emg := domain.ParseNumeric(latest.Field(s.mapping.EMG))
	motion := domain.ParseNumeric(latest.Field(s.mapping.Motion))

	score, valid := compositeScore(hr, spo2, temp, motion, emg)

	start := records[0].CreatedAt
	end := latest.CreatedAt

	return domain.SessionMetrics{
		MeanBPM:           hr,
		LatestBPM:         hr,
		MeanSpO2:          spo2,
		LatestSpO2:        spo2,
		MeanECG:           ecg,
		LatestECG:         ecg,
		MeanEMG:           emg,
		LatestEMG:         emg,
		MeanMotion:        motion,
		LatestMotion:      motion,
		LatestTemperature: temp,
		Score:             &score,
		ValidReadings:     valid,
		Count:             len(records),
		Start:             &start,
		End:               &end,
		Features:          s.sessionFeatures(records),
	}
}

// compositeScore implements the fixed scoring heuristic. Each channel counts
// toward validReadings only when it supplies a usable value; heart rate is
// usable only inside its healthy band, temperature counts whenever positive
// regardless of range.
func compositeScore(hr, spo2, temp, motion, emg *float64) (float64, int) {
	score := 100.0
	valid := 0

	if hr != nil && *hr > 0 {
		if *hr < 40 || *hr > 80 {
			score -= math.Abs(*hr-60) * 0.5
		} else {
			valid++
		}
	}
	if spo2 != nil && *spo2 > 0 {
		valid++
		if *spo2 < 95 {
			score -= (95 - *spo2) * 2
		}
	}
	if temp != nil && *temp > 0 {
		valid++
		if *temp < 96 || *temp > 100 {
			score -= math.Abs(*temp-98) * 1.5
		}
	}
	if motion != nil {
		valid++
		score -= math.Abs(*motion) * 0.1
	}
	if emg != nil {
		valid++
		score -= math.Abs(*emg) * 0.05
	}

	score = clamp(score, 0, 100)

	// Confidence discount for sparse data.
	if valid < 3 {
		score *= float64(valid) / 3
	}

	return round2(score), valid
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
