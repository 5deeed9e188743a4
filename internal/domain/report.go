package domain

import "time"

// ChannelInfo identifies the upstream data channel a report was built from.
type ChannelInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GlobalStats are summary statistics over all non-null session scores across
// all subjects, recomputed from scratch on every refresh.
type GlobalStats struct {
	Avg      *float64 `json:"avg"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Variance *float64 `json:"variance"`
	Count    int      `json:"count"`
}

// AggregateReport combines per-subject results across all subjects. It is
// rebuilt in full on every refresh; stale aggregates are never patched.
type AggregateReport struct {
	Subjects map[int]SubjectReport `json:"subjects"`

	// SubjectAverages holds each subject's average score across non-baseline
	// sessions with a non-null score. Subjects with no scored nap session
	// are absent.
	SubjectAverages map[int]float64 `json:"subjectAverages"`
	// BestSubject and WorstSubject are the argmax/argmin of SubjectAverages,
	// ties broken by lowest subject ID. Nil when no subject has a score.
	BestSubject  *int `json:"bestSubject"`
	WorstSubject *int `json:"worstSubject"`
	// BaselineDeltas holds the percentage change of each subject's nap
	// average relative to their baseline score. Subjects with a missing or
	// zero baseline score are excluded.
	BaselineDeltas map[int]float64 `json:"baselineDeltas"`

	Global     GlobalStats `json:"global"`
	LastUpdate time.Time   `json:"lastUpdate"`
	TotalFeeds int         `json:"totalFeeds"`
	Channel    ChannelInfo `json:"channel"`
}

// StatusResponse is the body of the status endpoint.
type StatusResponse struct {
	Status       string    `json:"status"`
	Channel      string    `json:"channel"`
	TotalEntries int       `json:"total_entries"`
	Subjects     []int     `json:"subjects"`
	LastUpdate   time.Time `json:"last_update"`
}

// RecordListResponse is one page of raw feed records.
type RecordListResponse struct {
	Records    []FeedRecord `json:"records"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

// LatestReading is the most recent sample for one subject.
type LatestReading struct {
	BPM       *float64   `json:"bpm"`
	SpO2      *float64   `json:"spo2"`
	ECG       *float64   `json:"ecg"`
	EMG       *float64   `json:"emg"`
	Motion    *float64   `json:"mpu"`
	Session   SessionKey `json:"session"`
	Timestamp time.Time  `json:"timestamp"`
}
