package history

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type Window string

const (
	WindowYear  Window = "year"
	WindowMonth Window = "month"
	WindowWeek  Window = "week"
)

func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowYear, WindowMonth, WindowWeek:
		return Window(s), nil
	}
	return "", fmt.Errorf("unknown window %q", s)
}

// FrequencyReport is the chart-ready view of how often the user trained
// inside the chosen window. Each series is one workout, counts are per
// bucket (month of the year, day of the month, or day of the week).
type FrequencyReport struct {
	Window Window            `json:"window"`
	Labels []string          `json:"labels"`
	Series []FrequencySeries `json:"series"`
}

type FrequencySeries struct {
	Workout string `json:"workout"`
	Counts  []int  `json:"counts"`
}

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=history

type entriesLister interface {
	ListForUser(ctx context.Context, userID int) ([]Entry, error)
}

type Analyzer struct {
	repo entriesLister
}

func NewAnalyzer(repo entriesLister) *Analyzer {
	return &Analyzer{repo: repo}
}

// Frequency buckets the user's log entries relative to now. A calendar day
// is counted at most once across all workouts, entries outside the window
// are skipped.
func (a *Analyzer) Frequency(ctx context.Context, userID int, window Window, now time.Time) (report *FrequencyReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "historyAnalyzer.frequency")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := a.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return BucketEntries(entries, window, now), nil
}

// BucketEntries is the pure part of Frequency, usable without a repo.
func BucketEntries(entries []Entry, window Window, now time.Time) *FrequencyReport {
	labels := windowLabels(window, now)
	report := &FrequencyReport{
		Window: window,
		Labels: labels,
		Series: make([]FrequencySeries, 0),
	}

	seriesIdx := make(map[string]int)
	seenDays := make(map[string]bool)

	for _, e := range entries {
		day := e.CreatedAt.Format("2006-01-02")
		if seenDays[day] {
			continue
		}

		bucket, inWindow := bucketIndex(window, now, e.CreatedAt)
		if !inWindow {
			continue
		}
		seenDays[day] = true

		name := e.WorkoutName
		if name == "" {
			name = e.TemplateName
		}

		i, ok := seriesIdx[name]
		if !ok {
			i = len(report.Series)
			seriesIdx[name] = i
			report.Series = append(report.Series, FrequencySeries{
				Workout: name,
				Counts:  make([]int, len(labels)),
			})
		}
		report.Series[i].Counts[bucket]++
	}

	return report
}

func windowLabels(window Window, now time.Time) []string {
	switch window {
	case WindowYear:
		return []string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		}
	case WindowMonth:
		labels := make([]string, daysInMonth(now))
		for i := range labels {
			labels[i] = strconv.Itoa(i + 1)
		}
		return labels
	case WindowWeek:
		return []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	}
	return nil
}

// bucketIndex maps a timestamp to its bucket within the window anchored at
// now, or reports that it falls outside of it.
func bucketIndex(window Window, now, t time.Time) (int, bool) {
	switch window {
	case WindowYear:
		if t.Year() != now.Year() {
			return 0, false
		}
		return int(t.Month()) - 1, true
	case WindowMonth:
		if t.Year() != now.Year() || t.Month() != now.Month() {
			return 0, false
		}
		return t.Day() - 1, true
	case WindowWeek:
		monday := weekStart(now)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		if day.Before(monday) || !day.Before(monday.AddDate(0, 0, 7)) {
			return 0, false
		}
		// Sunday is 0 in time.Weekday, the week here starts on Monday
		return (int(t.Weekday()) + 6) % 7, true
	}
	return 0, false
}

func weekStart(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))
}

func daysInMonth(now time.Time) int {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
