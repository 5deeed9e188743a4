// Command report runs the analysis pipeline once and writes markdown
// summaries: one file per subject plus a cross-subject overview.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/config"
	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/pipeline"
	"github.com/blaisecz/sleep-monitor/internal/thingspeak"
	"github.com/fatih/color"
)

func main() {
	outDir := flag.String("out", "reports", "directory for generated markdown reports")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	step := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	step.Printf("Fetching channel %s (up to %d records)...\n", cfg.ChannelID, cfg.ResultsLimit)
	client := thingspeak.NewClient(cfg.FeedBaseURL, cfg.ChannelID, cfg.ReadAPIKey, cfg.ChannelName)
	records, err := client.FetchRawFeed(ctx, cfg.ResultsLimit)
	if err != nil {
		log.Fatalf("Feed fetch failed: %v", err)
	}
	ok.Printf("Fetched %d records\n", len(records))

	grouper := pipeline.NewGrouper(cfg.FieldMapping, cfg.NapSessions)
	scorer := pipeline.NewScorer(cfg.FieldMapping)
	aggregator := pipeline.NewAggregator(cfg.NapSessions)

	subjects := make(map[int]domain.SubjectReport, cfg.SubjectCount)
	now := time.Now().UTC()
	for _, id := range cfg.SubjectIDs() {
		step.Printf("Analyzing subject %d...\n", id)

		subjectRecords := pipeline.FilterBySubject(records, cfg.FieldMapping, id)
		if len(subjectRecords) == 0 {
			warn.Printf("  no data for subject %d\n", id)
		}

		sessions := make(map[domain.SessionKey]domain.SessionMetrics, cfg.NapSessions+1)
		for key, bucket := range grouper.GroupBySession(subjectRecords) {
			sessions[key] = scorer.ScoreSession(bucket)
		}

		subject := domain.SubjectReport{
			Sessions:    sessions,
			RawData:     subjectRecords,
			GeneratedAt: now,
		}
		subjects[id] = subject

		path := filepath.Join(*outDir, fmt.Sprintf("subject_%d.md", id))
		if err := os.WriteFile(path, []byte(renderSubject(id, subject, cfg.NapSessions)), 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		ok.Printf("  wrote %s\n", path)
	}

	report := aggregator.BuildReport(subjects, client.Channel(), len(records))

	summaryPath := filepath.Join(*outDir, "summary.md")
	if err := os.WriteFile(summaryPath, []byte(renderSummary(&report, cfg.NapSessions)), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", summaryPath, err)
	}
	ok.Printf("Wrote %s\n", summaryPath)
}

func renderSubject(id int, subject domain.SubjectReport, napCount int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Subject %d\n\n", id)
	fmt.Fprintf(&b, "Generated %s. %d records.\n\n", subject.GeneratedAt.Format(time.RFC3339), len(subject.RawData))

	b.WriteString("| Session | Score | Valid | Data points | HR | SpO2 |\n")
	b.WriteString("|---------|-------|-------|-------------|----|------|\n")
	for _, key := range domain.SessionKeys(napCount) {
		metrics := subject.Sessions[key]
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %s | %s |\n",
			key,
			formatFloat(metrics.Score),
			metrics.ValidReadings,
			metrics.Count,
			formatFloat(metrics.LatestBPM),
			formatFloat(metrics.LatestSpO2),
		)
	}
	b.WriteString("\n")

	for _, key := range domain.SessionKeys(napCount) {
		metrics := subject.Sessions[key]
		if metrics.Features == nil || metrics.Count == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s features\n\n", key)
		features := metrics.Features
		fmt.Fprintf(&b, "- HRV RMSSD: %s ms\n", formatFloat(features.HRVRMSSD))
		fmt.Fprintf(&b, "- HRV SDNN: %s ms\n", formatFloat(features.HRVSDNN))
		fmt.Fprintf(&b, "- SpO2 mean/min: %s / %s (%d dips below 95)\n",
			formatFloat(features.MeanSpO2), formatFloat(features.MinSpO2), features.SpO2DipCount)
		fmt.Fprintf(&b, "- EMG mean/RMS: %s / %s\n", formatFloat(features.MeanEMG), formatFloat(features.EMGRMS))
		fmt.Fprintf(&b, "- Total motion: %s\n\n", formatFloat(features.TotalMotion))
	}

	return b.String()
}

func renderSummary(report *domain.AggregateReport, napCount int) string {
	var b strings.Builder

	b.WriteString("# Sleep Quality Summary\n\n")
	fmt.Fprintf(&b, "Channel: %s. %d records. Generated %s.\n\n",
		report.Channel.Name, report.TotalFeeds, report.LastUpdate.Format(time.RFC3339))

	ids := make([]int, 0, len(report.Subjects))
	for id := range report.Subjects {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	b.WriteString("| Subject | Nap average | Baseline delta |\n")
	b.WriteString("|---------|-------------|----------------|\n")
	for _, id := range ids {
		avg := "n/a"
		if v, okAvg := report.SubjectAverages[id]; okAvg {
			avg = fmt.Sprintf("%.2f", v)
		}
		delta := "n/a"
		if v, okDelta := report.BaselineDeltas[id]; okDelta {
			delta = fmt.Sprintf("%+.2f%%", v)
		}
		fmt.Fprintf(&b, "| %d | %s | %s |\n", id, avg, delta)
	}
	b.WriteString("\n")

	if report.BestSubject != nil {
		fmt.Fprintf(&b, "Best sleeper: subject %d. ", *report.BestSubject)
	}
	if report.WorstSubject != nil {
		fmt.Fprintf(&b, "Most restless: subject %d.", *report.WorstSubject)
	}
	b.WriteString("\n\n")

	global := report.Global
	fmt.Fprintf(&b, "Across all %d scored sessions: avg %s, min %s, max %s, variance %s.\n",
		global.Count,
		formatFloat(global.Avg), formatFloat(global.Min), formatFloat(global.Max), formatFloat(global.Variance))

	return b.String()
}

func formatFloat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
