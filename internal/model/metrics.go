package model

import "time"

// HistorySummary holds the top-level aggregate over a window of daily points.
type HistorySummary struct {
	Balance     int
	TotalEarned int
	ActiveDays  int
	WindowDays  int
	Today       int

	PointsPerDay       float64
	PointsPerActiveDay float64

	BestDay       time.Time
	BestDayPoints int

	CurrentStreak int // consecutive days with points, ending today
	LongestStreak int
}

// WeeklyPoints holds the points earned in one calendar week.
type WeeklyPoints struct {
	WeekStart  time.Time
	Points     int
	ActiveDays int
}

// PeriodComparison holds current and previous window summaries for delta computation.
type PeriodComparison struct {
	Current  HistorySummary
	Previous HistorySummary
}
