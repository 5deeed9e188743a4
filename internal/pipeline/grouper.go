// Package pipeline contains the pure data-shaping stages: session grouping,
// score calculation, and cross-subject aggregation. Nothing in this package
// performs I/O; every function is a synchronous transformation over
// already-fetched records.
package pipeline

import (
	"sort"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

// Grouper partitions a subject's raw feed records into named sessions.
type Grouper struct {
	mapping  domain.FieldMapping
	napCount int
}

// NewGrouper creates a Grouper for the given field mapping and nap count.
func NewGrouper(mapping domain.FieldMapping, napCount int) *Grouper {
	return &Grouper{mapping: mapping, napCount: napCount}
}

// GroupBySession places each record into the bucket named by its session
// identifier field. Records with an absent or unrecognized identifier land in
// baseline rather than being dropped. Every configured session key is present
// in the result, empty buckets included, and each bucket is sorted ascending
// by timestamp.
func (g *Grouper) GroupBySession(records []domain.FeedRecord) map[domain.SessionKey][]domain.FeedRecord {
	buckets := make(map[domain.SessionKey][]domain.FeedRecord, g.napCount+1)
	for _, key := range domain.SessionKeys(g.napCount) {
		buckets[key] = []domain.FeedRecord{}
	}

	for _, r := range records {
		key := domain.NormalizeSessionKey(r.Field(g.mapping.Session), g.napCount)
		buckets[key] = append(buckets[key], r)
	}

	for key := range buckets {
		sortRecords(buckets[key])
	}
	return buckets
}

// FilterBySubject returns the records whose subject identifier field matches
// id exactly, sorted ascending by timestamp. Records without a parseable
// subject identifier never match.
func FilterBySubject(records []domain.FeedRecord, mapping domain.FieldMapping, id int) []domain.FeedRecord {
	matched := make([]domain.FeedRecord, 0)
	for _, r := range records {
		if subject, ok := mapping.SubjectID(r); ok && subject == id {
			matched = append(matched, r)
		}
	}
	sortRecords(matched)
	return matched
}

func sortRecords(records []domain.FeedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}
