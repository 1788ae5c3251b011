// Package model defines domain types for habits, rewards, and point history.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors returned by ValidateHabit and ValidateReward.
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrNonPositivePoints = errors.New("points must be a positive integer")
	ErrNonPositiveCost   = errors.New("cost must be a positive integer")
)

// Habit is a trackable activity that earns Points when completed.
type Habit struct {
	ID             uuid.UUID
	Name           string
	Points         int
	CompletedToday bool
	CompletedAt    time.Time // zero unless CompletedToday
}

// Reward is a catalog item purchasable with accumulated points.
type Reward struct {
	ID   uuid.UUID
	Name string
	Cost int
}

// DailyPoints is the aggregate of points earned on one calendar day.
// Date is always the start of that day.
type DailyPoints struct {
	ID     uuid.UUID
	Date   time.Time
	Points int
}

// Day returns the 3-letter weekday abbreviation for the entry.
func (d DailyPoints) Day() string {
	return d.Date.Format("Mon")
}

// NewHabit returns a not-yet-completed habit with a fresh ID.
func NewHabit(name string, points int) Habit {
	return Habit{
		ID:     uuid.New(),
		Name:   strings.TrimSpace(name),
		Points: points,
	}
}

// NewReward returns a reward with a fresh ID.
func NewReward(name string, cost int) Reward {
	return Reward{
		ID:   uuid.New(),
		Name: strings.TrimSpace(name),
		Cost: cost,
	}
}

// ValidateHabit checks the user-supplied fields of a habit.
func ValidateHabit(name string, points int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if points <= 0 {
		return ErrNonPositivePoints
	}
	return nil
}

// ValidateReward checks the user-supplied fields of a reward.
func ValidateReward(name string, cost int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if cost <= 0 {
		return ErrNonPositiveCost
	}
	return nil
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}
