package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/habitgame/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func entries(t *testing.T, pairs ...any) []model.DailyPoints {
	t.Helper()
	var out []model.DailyPoints
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, model.DailyPoints{Date: day(t, pairs[i].(string)), Points: pairs[i+1].(int)})
	}
	return out
}

func TestWindow(t *testing.T) {
	now := time.Date(2025, 5, 20, 15, 4, 0, 0, time.UTC)
	since, until := Window(now, 7, time.UTC)

	if !since.Equal(day(t, "2025-05-14")) {
		t.Fatalf("since = %v, want 2025-05-14", since)
	}
	if !until.Equal(day(t, "2025-05-21")) {
		t.Fatalf("until = %v, want 2025-05-21", until)
	}
}

func TestFillDays_ZeroFillsGaps(t *testing.T) {
	hist := entries(t, "2025-05-15", 10, "2025-05-18", 5, "2025-05-30", 99)
	days := FillDays(hist, day(t, "2025-05-14"), day(t, "2025-05-21"), time.UTC)

	if len(days) != 7 {
		t.Fatalf("FillDays len = %d, want 7", len(days))
	}
	want := []int{0, 10, 0, 0, 5, 0, 0}
	for i, w := range want {
		if days[i].Points != w {
			t.Errorf("days[%d] = %d, want %d", i, days[i].Points, w)
		}
		if i > 0 && !days[i].Date.After(days[i-1].Date) {
			t.Errorf("days not ascending at %d", i)
		}
	}
}

func TestSummarize(t *testing.T) {
	hist := entries(t,
		"2025-05-14", 50,
		"2025-05-15", 70,
		"2025-05-16", 0,
		"2025-05-18", 100,
		"2025-05-19", 5,
		"2025-05-20", 15,
	)
	now := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
	since, until := Window(now, 7, time.UTC)

	s := Summarize(hist, 120, since, until, now, time.UTC)

	if s.TotalEarned != 240 {
		t.Errorf("TotalEarned = %d, want 240", s.TotalEarned)
	}
	if s.ActiveDays != 5 {
		t.Errorf("ActiveDays = %d, want 5", s.ActiveDays)
	}
	if s.Today != 15 {
		t.Errorf("Today = %d, want 15", s.Today)
	}
	if s.BestDayPoints != 100 || !s.BestDay.Equal(day(t, "2025-05-18")) {
		t.Errorf("BestDay = %v/%d, want 2025-05-18/100", s.BestDay, s.BestDayPoints)
	}
	if s.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", s.CurrentStreak)
	}
	if s.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", s.LongestStreak)
	}
	if s.Balance != 120 {
		t.Errorf("Balance = %d, want 120", s.Balance)
	}
	if s.PointsPerActiveDay != 48 {
		t.Errorf("PointsPerActiveDay = %.1f, want 48", s.PointsPerActiveDay)
	}
}

func TestCurrentStreak_TodayNotYetEarned(t *testing.T) {
	hist := entries(t, "2025-05-18", 1, "2025-05-19", 1)
	now := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)

	if got := CurrentStreak(hist, now, time.UTC); got != 2 {
		t.Fatalf("CurrentStreak = %d, want 2", got)
	}

	now = now.AddDate(0, 0, 1)
	if got := CurrentStreak(hist, now, time.UTC); got != 0 {
		t.Fatalf("CurrentStreak after a missed day = %d, want 0", got)
	}
}

func TestAggregateWeeks(t *testing.T) {
	// 2025-05-18 is a Sunday, 2025-05-19 a Monday.
	hist := entries(t, "2025-05-12", 3, "2025-05-18", 4, "2025-05-19", 10, "2025-05-20", 0)
	weeks := AggregateWeeks(hist, time.UTC)

	if len(weeks) != 2 {
		t.Fatalf("weeks len = %d, want 2", len(weeks))
	}
	if !weeks[0].WeekStart.Equal(day(t, "2025-05-12")) || weeks[0].Points != 7 || weeks[0].ActiveDays != 2 {
		t.Errorf("week 0 = %+v, want 2025-05-12 with 7 points over 2 days", weeks[0])
	}
	if !weeks[1].WeekStart.Equal(day(t, "2025-05-19")) || weeks[1].Points != 10 || weeks[1].ActiveDays != 1 {
		t.Errorf("week 1 = %+v, want 2025-05-19 with 10 points over 1 day", weeks[1])
	}
}

func TestChartLabels(t *testing.T) {
	days := FillDays(nil, day(t, "2025-04-29"), day(t, "2025-05-04"), time.UTC)
	got := ChartLabels(days)
	want := []string{"Apr", "30", "May", "2", "3"}

	if len(got) != len(want) {
		t.Fatalf("labels len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
