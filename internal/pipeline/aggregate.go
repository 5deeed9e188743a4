package pipeline

import (
	"sort"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

// Aggregator combines per-subject reports into the cross-subject view.
type Aggregator struct {
	napCount int
}

// NewAggregator creates an Aggregator for the given nap count.
func NewAggregator(napCount int) *Aggregator {
	return &Aggregator{napCount: napCount}
}

// BuildReport assembles the full aggregate from already-scored subject
// reports. The aggregate is rebuilt from scratch; nothing is patched
// incrementally.
//
// Subject averages cover nap sessions only, baseline scores serve as the
// reference for the per-subject deltas. Best and worst subject ties resolve
// to the lowest subject id.
func (a *Aggregator) BuildReport(subjects map[int]domain.SubjectReport, channel domain.ChannelInfo, totalFeeds int) domain.AggregateReport {
	report := domain.AggregateReport{
		Subjects:        subjects,
		SubjectAverages: make(map[int]float64),
		BaselineDeltas:  make(map[int]float64),
		LastUpdate:      time.Now().UTC(),
		TotalFeeds:      totalFeeds,
		Channel:         channel,
	}

	ids := make([]int, 0, len(subjects))
	for id := range subjects {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var allScores []float64

	for _, id := range ids {
		subject := subjects[id]

		var napSum float64
		var napCount int
		for key, metrics := range subject.Sessions {
			if metrics.Score == nil {
				continue
			}
			allScores = append(allScores, *metrics.Score)
			if key == domain.SessionBaseline {
				continue
			}
			napSum += *metrics.Score
			napCount++
		}
		if napCount == 0 {
			continue
		}

		avg := round2(napSum / float64(napCount))
		report.SubjectAverages[id] = avg

		if baseline, ok := subject.Sessions[domain.SessionBaseline]; ok &&
			baseline.Score != nil && *baseline.Score != 0 {
			report.BaselineDeltas[id] = round2((avg - *baseline.Score) / *baseline.Score * 100)
		}
	}

	for _, id := range ids {
		avg, ok := report.SubjectAverages[id]
		if !ok {
			continue
		}
		if report.BestSubject == nil || avg > report.SubjectAverages[*report.BestSubject] {
			best := id
			report.BestSubject = &best
		}
		if report.WorstSubject == nil || avg < report.SubjectAverages[*report.WorstSubject] {
			worst := id
			report.WorstSubject = &worst
		}
	}

	report.Global = globalStats(allScores)
	return report
}

// globalStats summarizes every non-null session score across all subjects.
// Variance is the population variance.
func globalStats(scores []float64) domain.GlobalStats {
	stats := domain.GlobalStats{Count: len(scores)}
	if len(scores) == 0 {
		return stats
	}

	min, max := scores[0], scores[0]
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	mean, std := meanStd(scores)
	avg := round2(mean)
	variance := round2(std * std)

	stats.Avg = &avg
	stats.Min = &min
	stats.Max = &max
	stats.Variance = &variance
	return stats
}
