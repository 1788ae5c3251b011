// Package pipeline computes read-side aggregates over the daily point history.
package pipeline

import (
	"sort"
	"strconv"
	"time"

	"github.com/theirongolddev/habitgame/internal/model"
)

const dayKeyLayout = "2006-01-02"

// FilterByTime returns entries whose date falls within [since, until).
func FilterByTime(history []model.DailyPoints, since, until time.Time) []model.DailyPoints {
	if since.IsZero() && until.IsZero() {
		return history
	}

	var result []model.DailyPoints
	for _, e := range history {
		if !since.IsZero() && e.Date.Before(since) {
			continue
		}
		if !until.IsZero() && !e.Date.Before(until) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Window returns the [since, until) range covering the last days calendar
// days, today included.
func Window(now time.Time, days int, loc *time.Location) (time.Time, time.Time) {
	if days < 1 {
		days = 1
	}
	until := model.StartOfDay(now, loc).AddDate(0, 0, 1)
	since := until.AddDate(0, 0, -days)
	return since, until
}

// FillDays returns one entry per calendar day in [since, until), oldest
// first, so charts show gaps as zeros.
func FillDays(history []model.DailyPoints, since, until time.Time, loc *time.Location) []model.DailyPoints {
	dayMap := make(map[string]model.DailyPoints)
	for _, e := range FilterByTime(history, since, until) {
		key := e.Date.In(loc).Format(dayKeyLayout)
		d, ok := dayMap[key]
		if !ok {
			d = model.DailyPoints{ID: e.ID, Date: model.StartOfDay(e.Date, loc)}
		}
		d.Points += e.Points
		dayMap[key] = d
	}

	var days []model.DailyPoints
	for day := model.StartOfDay(since, loc); day.Before(until); day = day.AddDate(0, 0, 1) {
		if d, ok := dayMap[day.Format(dayKeyLayout)]; ok {
			days = append(days, d)
			continue
		}
		days = append(days, model.DailyPoints{Date: day})
	}
	return days
}

// Summarize computes the summary for [since, until). now determines "today"
// and the current streak.
func Summarize(history []model.DailyPoints, balance int, since, until, now time.Time, loc *time.Location) model.HistorySummary {
	days := FillDays(history, since, until, loc)
	today := model.StartOfDay(now, loc)

	s := model.HistorySummary{
		Balance:    balance,
		WindowDays: len(days),
	}

	run := 0
	for _, d := range days {
		s.TotalEarned += d.Points
		if d.Date.Equal(today) {
			s.Today = d.Points
		}
		if d.Points > 0 {
			s.ActiveDays++
			run++
			if run > s.LongestStreak {
				s.LongestStreak = run
			}
		} else {
			run = 0
		}
		if d.Points > s.BestDayPoints {
			s.BestDayPoints = d.Points
			s.BestDay = d.Date
		}
	}

	s.CurrentStreak = CurrentStreak(history, now, loc)

	if s.WindowDays > 0 {
		s.PointsPerDay = float64(s.TotalEarned) / float64(s.WindowDays)
	}
	if s.ActiveDays > 0 {
		s.PointsPerActiveDay = float64(s.TotalEarned) / float64(s.ActiveDays)
	}
	return s
}

// CurrentStreak counts consecutive days with points ending today. A day
// without points yet today does not break a streak that ran through
// yesterday.
func CurrentStreak(history []model.DailyPoints, now time.Time, loc *time.Location) int {
	earned := make(map[string]bool, len(history))
	for _, e := range history {
		if e.Points > 0 {
			earned[e.Date.In(loc).Format(dayKeyLayout)] = true
		}
	}

	day := model.StartOfDay(now, loc)
	if !earned[day.Format(dayKeyLayout)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for earned[day.Format(dayKeyLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// AggregateWeeks buckets history into Monday-start calendar weeks, oldest first.
func AggregateWeeks(history []model.DailyPoints, loc *time.Location) []model.WeeklyPoints {
	weekMap := make(map[string]*model.WeeklyPoints)

	for _, e := range history {
		start := WeekStart(e.Date, loc)
		key := start.Format(dayKeyLayout)
		w, ok := weekMap[key]
		if !ok {
			w = &model.WeeklyPoints{WeekStart: start}
			weekMap[key] = w
		}
		w.Points += e.Points
		if e.Points > 0 {
			w.ActiveDays++
		}
	}

	weeks := make([]model.WeeklyPoints, 0, len(weekMap))
	for _, w := range weekMap {
		weeks = append(weeks, *w)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.Before(weeks[j].WeekStart)
	})
	return weeks
}

// WeekStart returns the Monday starting t's week in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := model.StartOfDay(t, loc)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// ChartLabels builds compact X-axis labels for a chronological day series.
// First label and month boundaries show the month ("Jan"); everything else
// the day number.
func ChartLabels(days []model.DailyPoints) []string {
	labels := make([]string, len(days))
	prevMonth := time.Month(0)
	for i, d := range days {
		m := d.Date.Month()
		switch {
		case i == 0, m != prevMonth && i != len(days)-1:
			labels[i] = d.Date.Format("Jan")
		default:
			labels[i] = strconv.Itoa(d.Date.Day())
		}
		prevMonth = m
	}
	return labels
}

// Values returns the points of each entry as chart values.
func Values(days []model.DailyPoints) []float64 {
	vals := make([]float64, len(days))
	for i, d := range days {
		vals[i] = float64(d.Points)
	}
	return vals
}
