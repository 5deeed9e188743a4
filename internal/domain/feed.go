package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FeedRecord is one timestamped multi-field sample from the channel.
// Field values arrive as string-or-null and are immutable once received.
type FeedRecord struct {
	CreatedAt time.Time `json:"created_at"`
	EntryID   int       `json:"entry_id"`
	Field1    *string   `json:"field1"`
	Field2    *string   `json:"field2"`
	Field3    *string   `json:"field3"`
	Field4    *string   `json:"field4"`
	Field5    *string   `json:"field5"`
	Field6    *string   `json:"field6"`
	Field7    *string   `json:"field7"`
	Field8    *string   `json:"field8"`
}

// Field returns the raw value of field index 1..8, or nil for any other index.
func (r FeedRecord) Field(index int) *string {
	switch index {
	case 1:
		return r.Field1
	case 2:
		return r.Field2
	case 3:
		return r.Field3
	case 4:
		return r.Field4
	case 5:
		return r.Field5
	case 6:
		return r.Field6
	case 7:
		return r.Field7
	case 8:
		return r.Field8
	}
	return nil
}

// ParseNumeric coerces a raw field value to a number. Missing, empty, and
// non-numeric values all come back nil; IoT data is expected to be noisy, so
// a bad value is never an error and NaN never leaks downstream.
func ParseNumeric(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// FieldMapping maps biometric channels to feed field indices (1-based).
// The deployed channel uses field1..field8 in this order, but the mapping is
// configuration, not a positional assumption.
type FieldMapping struct {
	HeartRate   int
	SpO2        int
	ECG         int
	Temperature int
	EMG         int
	Motion      int
	Subject     int
	Session     int
}

// DefaultFieldMapping matches the deployed channel layout.
func DefaultFieldMapping() FieldMapping {
	return FieldMapping{
		HeartRate:   1,
		SpO2:        2,
		ECG:         3,
		Temperature: 4,
		EMG:         5,
		Motion:      6,
		Subject:     7,
		Session:     8,
	}
}

// SubjectID reads the subject identifier field of a record. The second return
// is false when the field is absent or not an integer.
func (m FieldMapping) SubjectID(r FeedRecord) (int, bool) {
	v := ParseNumeric(r.Field(m.Subject))
	if v == nil {
		return 0, false
	}
	id := int(*v)
	if float64(id) != *v {
		return 0, false
	}
	return id, true
}
