package ledger

import (
	"time"

	"github.com/theirongolddev/habitgame/internal/model"

	"github.com/google/uuid"
)

// seedHistory normalizes entries to start-of-day, merges same-day entries,
// clamps negatives to zero, and sorts ascending.
func (l *Ledger) seedHistory(entries []model.DailyPoints) {
	byDay := make(map[time.Time]int, len(entries))
	for _, e := range entries {
		day := model.StartOfDay(e.Date, l.cfg.Location)
		i, ok := byDay[day]
		if !ok {
			id := e.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			l.history = append(l.history, model.DailyPoints{ID: id, Date: day})
			i = len(l.history) - 1
			byDay[day] = i
		}
		l.history[i].Points += e.Points
	}
	for i := range l.history {
		if l.history[i].Points < 0 {
			l.history[i].Points = 0
		}
	}
	sortHistory(l.history)
}

func (l *Ledger) historyIndexLocked(day time.Time) int {
	for i, e := range l.history {
		if e.Date.Equal(day) {
			return i
		}
	}
	return -1
}

// addToHistoryLocked credits points to the entry for at's day, creating the
// entry (and re-sorting) if the day has none yet.
func (l *Ledger) addToHistoryLocked(points int, at time.Time) {
	day := model.StartOfDay(at, l.cfg.Location)
	if i := l.historyIndexLocked(day); i >= 0 {
		l.history[i].Points += points
		return
	}
	l.history = append(l.history, model.DailyPoints{
		ID:     uuid.New(),
		Date:   day,
		Points: points,
	})
	sortHistory(l.history)
}

// subtractFromHistoryLocked debits points from the entry for at's day,
// clamping at zero. A day without an entry is left alone.
func (l *Ledger) subtractFromHistoryLocked(points int, at time.Time) {
	day := model.StartOfDay(at, l.cfg.Location)
	i := l.historyIndexLocked(day)
	if i < 0 {
		return
	}
	l.history[i].Points -= points
	if l.history[i].Points < 0 {
		l.history[i].Points = 0
	}
}
