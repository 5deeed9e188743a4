package domain

import (
	"fmt"
	"strings"
	"time"
)

// SessionKey identifies a labeled portion of a subject's monitoring period:
// the awake baseline or one of the numbered nap sessions.
type SessionKey string

// SessionBaseline is the awake reference session.
const SessionBaseline SessionKey = "baseline"

// DefaultNapSessions is the number of nap sessions in the deployed study.
const DefaultNapSessions = 3

// NapKey returns the key for nap session n (1-based).
func NapKey(n int) SessionKey {
	return SessionKey(fmt.Sprintf("nap_%d", n))
}

// SessionKeys returns the full fixed enumeration for a configuration with
// napCount nap sessions, baseline first.
func SessionKeys(napCount int) []SessionKey {
	keys := make([]SessionKey, 0, napCount+1)
	keys = append(keys, SessionBaseline)
	for n := 1; n <= napCount; n++ {
		keys = append(keys, NapKey(n))
	}
	return keys
}

// NormalizeSessionKey maps a raw session identifier to a SessionKey.
// Matching is case-insensitive and whitespace-tolerant. An absent or
// unrecognized identifier lands in baseline: ambiguous data never vanishes.
func NormalizeSessionKey(raw *string, napCount int) SessionKey {
	if raw == nil {
		return SessionBaseline
	}
	s := strings.ToLower(strings.TrimSpace(*raw))
	switch s {
	case "", "0", "baseline", "base":
		return SessionBaseline
	}
	for n := 1; n <= napCount; n++ {
		switch s {
		case fmt.Sprintf("%d", n), fmt.Sprintf("nap%d", n), fmt.Sprintf("nap_%d", n):
			return NapKey(n)
		}
	}
	return SessionBaseline
}

// SessionMetrics is the aggregated view of one session. Every numeric field
// is independently nullable; a session with no usable readings has Count 0
// and nil everywhere, never a sentinel value.
//
// The mean_* and latest_* pairs currently both carry the most recent reading.
// The composite score is derived from that single sample, not a true mean
// over the session; the whole-session statistics live in Features.
type SessionMetrics struct {
	MeanBPM           *float64 `json:"mean_bpm"`
	LatestBPM         *float64 `json:"latest_bpm"`
	MeanSpO2          *float64 `json:"mean_spo2"`
	LatestSpO2        *float64 `json:"latest_spo2"`
	MeanECG           *float64 `json:"mean_ecg"`
	LatestECG         *float64 `json:"latest_ecg"`
	MeanEMG           *float64 `json:"mean_emg"`
	LatestEMG         *float64 `json:"latest_emg"`
	MeanMotion        *float64 `json:"mean_motion"`
	LatestMotion      *float64 `json:"latest_motion"`
	LatestTemperature *float64 `json:"latest_temperature"`

	// Score is the composite 0-100 sleep quality score, nil when the
	// session has no records at all.
	Score *float64 `json:"score"`
	// ValidReadings counts the biometric channels that supplied a usable
	// value to the score.
	ValidReadings int `json:"valid_readings"`

	Count int        `json:"data_points"`
	Start *time.Time `json:"start_timestamp"`
	End   *time.Time `json:"end_timestamp"`

	Features *SessionFeatures `json:"features,omitempty"`
}

// SessionFeatures holds whole-session statistics computed across every record
// in the session, independent of the single-sample score contract.
type SessionFeatures struct {
	HRVRMSSD     *float64 `json:"hrv_rmssd"`
	HRVSDNN      *float64 `json:"hrv_sdnn"`
	MeanSpO2     *float64 `json:"mean_spo2"`
	MinSpO2      *float64 `json:"min_spo2"`
	SpO2DipCount int      `json:"spo2_dip_count"`
	MeanEMG      *float64 `json:"mean_emg"`
	EMGRMS       *float64 `json:"emg_rms"`
	TotalMotion  *float64 `json:"total_motion"`
}

// SubjectReport is one subject's view of the whole monitoring period. Every
// configured SessionKey is always present in Sessions, even with zero
// contributing records; downstream rendering depends on that to show
// "no data" rather than erroring.
type SubjectReport struct {
	Sessions    map[SessionKey]SessionMetrics      `json:"sessions"`
	Responses   map[SessionKey]SessionResponseView `json:"responses,omitempty"`
	RawData     []FeedRecord                       `json:"rawData"`
	GeneratedAt time.Time                          `json:"generatedAt"`
}
