// Package ledger owns the habit list, reward catalog, point balance, and
// per-day point history, and keeps balance and history moving together.
package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/theirongolddev/habitgame/internal/model"

	"github.com/google/uuid"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRewardNotFound      = errors.New("reward not found")
)

// Config controls ledger behavior. Zero values get sensible defaults.
type Config struct {
	Clock        func() time.Time
	Location     *time.Location
	Logger       *slog.Logger
	DailyReset   bool // return completed habits to not-completed on a new day
	EventsBuffer int  // max events retained for Events()
}

// Seed is the initial ledger state.
type Seed struct {
	Balance int
	Habits  []model.Habit
	Rewards []model.Reward
	History []model.DailyPoints
}

// Ledger is the single owner of habit, reward, balance, and history state.
// Mutators run synchronously on the caller's goroutine. Events enter the
// ring and subscriber channels under the state lock, so their order matches
// Event.ID; OnChange callbacks run after the lock is released.
type Ledger struct {
	cfg Config

	mu      sync.RWMutex
	habits  []model.Habit
	rewards []model.Reward
	balance int
	spent   int
	history []model.DailyPoints

	nextEventID int64
	events      []Event
	nextSubID   int
	subs        map[int]chan Event
	callbacks   map[int]func(Event)
}

// New returns a ledger holding the given seed state.
func New(cfg Config, seed Seed) *Ledger {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}

	l := &Ledger{
		cfg:       cfg,
		balance:   seed.Balance,
		subs:      make(map[int]chan Event),
		callbacks: make(map[int]func(Event)),
	}
	l.seedHabits(seed.Habits)
	l.seedRewards(seed.Rewards)
	l.seedHistory(seed.History)
	return l
}

func (l *Ledger) seedHabits(habits []model.Habit) {
	now := l.cfg.Clock()
	seen := make(map[uuid.UUID]struct{}, len(habits))
	for _, h := range habits {
		if model.ValidateHabit(h.Name, h.Points) != nil {
			l.cfg.Logger.Warn("skipping invalid seed habit", "name", h.Name, "points", h.Points)
			continue
		}
		if _, dup := seen[h.ID]; dup || h.ID == uuid.Nil {
			h.ID = uuid.New()
		}
		seen[h.ID] = struct{}{}
		if h.CompletedToday && h.CompletedAt.IsZero() {
			h.CompletedAt = now
		}
		if !h.CompletedToday {
			h.CompletedAt = time.Time{}
		}
		l.habits = append(l.habits, h)
	}
}

func (l *Ledger) seedRewards(rewards []model.Reward) {
	seen := make(map[uuid.UUID]struct{}, len(rewards))
	for _, r := range rewards {
		if model.ValidateReward(r.Name, r.Cost) != nil {
			l.cfg.Logger.Warn("skipping invalid seed reward", "name", r.Name, "cost", r.Cost)
			continue
		}
		if _, dup := seen[r.ID]; dup || r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		seen[r.ID] = struct{}{}
		l.rewards = append(l.rewards, r)
	}
}

// ─── Read accessors ─────────────────────────────────────────────

// Habits returns a copy of the habit list in display order.
func (l *Ledger) Habits() []model.Habit {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Habit, len(l.habits))
	copy(out, l.habits)
	return out
}

// Rewards returns a copy of the reward catalog in display order.
func (l *Ledger) Rewards() []model.Reward {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Reward, len(l.rewards))
	copy(out, l.rewards)
	return out
}

// Balance returns the spendable point total.
func (l *Ledger) Balance() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance
}

// Spent returns the total cost of rewards bought since the ledger was created.
func (l *Ledger) Spent() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.spent
}

// History returns a copy of the daily history, sorted by date ascending.
func (l *Ledger) History() []model.DailyPoints {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.DailyPoints, len(l.history))
	copy(out, l.history)
	return out
}

// Today returns today's history entry, or a zero-point entry dated today.
func (l *Ledger) Today() model.DailyPoints {
	l.mu.RLock()
	defer l.mu.RUnlock()
	day := model.StartOfDay(l.cfg.Clock(), l.cfg.Location)
	if i := l.historyIndexLocked(day); i >= 0 {
		return l.history[i]
	}
	return model.DailyPoints{Date: day}
}

// Location returns the time zone used for day boundaries.
func (l *Ledger) Location() *time.Location {
	return l.cfg.Location
}

// Now returns the ledger clock's current time.
func (l *Ledger) Now() time.Time {
	return l.cfg.Clock()
}

// Habit looks up a habit by ID.
func (l *Ledger) Habit(id uuid.UUID) (model.Habit, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.habitIndexLocked(id); i >= 0 {
		return l.habits[i], true
	}
	return model.Habit{}, false
}

// Reward looks up a reward by ID.
func (l *Ledger) Reward(id uuid.UUID) (model.Reward, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.rewardIndexLocked(id); i >= 0 {
		return l.rewards[i], true
	}
	return model.Reward{}, false
}

// HabitIndex returns the display position of a habit, or -1.
func (l *Ledger) HabitIndex(id uuid.UUID) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.habitIndexLocked(id)
}

// RewardIndex returns the display position of a reward, or -1.
func (l *Ledger) RewardIndex(id uuid.UUID) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.rewardIndexLocked(id)
}

func (l *Ledger) habitIndexLocked(id uuid.UUID) int {
	for i, h := range l.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) rewardIndexLocked(id uuid.UUID) int {
	for i, r := range l.rewards {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// ─── Habits ─────────────────────────────────────────────────────

// AddHabit appends a not-completed habit. Invalid input (blank name,
// non-positive points) is ignored and reported as ok=false.
func (l *Ledger) AddHabit(name string, points int) (model.Habit, bool) {
	if model.ValidateHabit(name, points) != nil {
		l.cfg.Logger.Debug("ignoring invalid habit", "name", name, "points", points)
		return model.Habit{}, false
	}

	now, pending := l.begin()
	h := model.NewHabit(name, points)
	l.habits = append(l.habits, h)
	ev := l.newEventLocked(EventHabitAdded, now)
	ev.HabitID = h.ID
	ev.Name = h.Name
	ev.Points = h.Points

	l.cfg.Logger.Info("habit added", "habit", h.Name, "points", h.Points)
	l.commit(append(pending, ev)...)
	return h, true
}

// DeleteHabits removes the habits at the given display positions.
// Out-of-range and repeated offsets are ignored. Points already earned stay
// in the balance and history.
func (l *Ledger) DeleteHabits(offsets []int) {
	now, pending := l.begin()
	kept, removed := removeAt(l.habits, offsets)
	if removed == 0 {
		l.commit(pending...)
		return
	}
	l.habits = kept
	ev := l.newEventLocked(EventHabitsDeleted, now)
	ev.Count = removed

	l.cfg.Logger.Info("habits deleted", "count", removed)
	l.commit(append(pending, ev)...)
}

// CompleteHabit toggles the habit's completion for today. Completing adds
// the habit's points to the balance and today's history entry; un-completing
// subtracts them, with today's entry clamped at zero. Unknown IDs are ignored.
func (l *Ledger) CompleteHabit(id uuid.UUID) {
	now, pending := l.begin()
	i := l.habitIndexLocked(id)
	if i < 0 {
		l.commit(pending...)
		return
	}

	h := &l.habits[i]
	h.CompletedToday = !h.CompletedToday

	var ev Event
	if h.CompletedToday {
		h.CompletedAt = now
		l.balance += h.Points
		l.addToHistoryLocked(h.Points, now)
		ev = l.newEventLocked(EventHabitCompleted, now)
		ev.Delta = h.Points
	} else {
		h.CompletedAt = time.Time{}
		l.balance -= h.Points
		l.subtractFromHistoryLocked(h.Points, now)
		ev = l.newEventLocked(EventHabitUncompleted, now)
		ev.Delta = -h.Points
	}
	ev.HabitID = h.ID
	ev.Name = h.Name
	ev.Points = h.Points
	balance := l.balance

	l.cfg.Logger.Info("habit toggled",
		"habit", ev.Name, "completed", ev.Type == EventHabitCompleted, "delta", ev.Delta, "balance", balance)
	l.commit(append(pending, ev)...)
}

// ─── Rewards ────────────────────────────────────────────────────

// AddReward appends a reward to the catalog. Invalid input is ignored and
// reported as ok=false.
func (l *Ledger) AddReward(name string, cost int) (model.Reward, bool) {
	if model.ValidateReward(name, cost) != nil {
		l.cfg.Logger.Debug("ignoring invalid reward", "name", name, "cost", cost)
		return model.Reward{}, false
	}

	now, pending := l.begin()
	r := model.NewReward(name, cost)
	l.rewards = append(l.rewards, r)
	ev := l.newEventLocked(EventRewardAdded, now)
	ev.RewardID = r.ID
	ev.Name = r.Name
	ev.Points = r.Cost

	l.cfg.Logger.Info("reward added", "reward", r.Name, "cost", r.Cost)
	l.commit(append(pending, ev)...)
	return r, true
}

// DeleteRewards removes the rewards at the given display positions.
func (l *Ledger) DeleteRewards(offsets []int) {
	now, pending := l.begin()
	kept, removed := removeAt(l.rewards, offsets)
	if removed == 0 {
		l.commit(pending...)
		return
	}
	l.rewards = kept
	ev := l.newEventLocked(EventRewardsDeleted, now)
	ev.Count = removed

	l.cfg.Logger.Info("rewards deleted", "count", removed)
	l.commit(append(pending, ev)...)
}

// BuyReward spends the reward's cost from the balance. The reward stays in
// the catalog and the spend is not recorded in the daily history.
// Returns ErrInsufficientBalance (balance unchanged) when the balance does
// not cover the cost, and ErrRewardNotFound for an unknown ID.
func (l *Ledger) BuyReward(id uuid.UUID) error {
	now, pending := l.begin()
	i := l.rewardIndexLocked(id)
	if i < 0 {
		l.commit(pending...)
		return fmt.Errorf("%w: %s", ErrRewardNotFound, id)
	}

	r := l.rewards[i]
	if l.balance < r.Cost {
		balance := l.balance
		ev := l.newEventLocked(EventPurchaseDeclined, now)
		ev.RewardID = r.ID
		ev.Name = r.Name
		ev.Points = r.Cost

		l.cfg.Logger.Info("purchase declined", "reward", r.Name, "cost", r.Cost, "balance", balance)
		l.commit(append(pending, ev)...)
		return fmt.Errorf("%w: have %d, %q costs %d", ErrInsufficientBalance, balance, r.Name, r.Cost)
	}

	l.balance -= r.Cost
	l.spent += r.Cost
	ev := l.newEventLocked(EventRewardBought, now)
	ev.RewardID = r.ID
	ev.Name = r.Name
	ev.Points = r.Cost
	ev.Delta = -r.Cost
	balance := l.balance

	l.cfg.Logger.Info("reward bought", "reward", r.Name, "cost", r.Cost, "balance", balance)
	l.commit(append(pending, ev)...)
	return nil
}

// ─── Daily reset ────────────────────────────────────────────────

// ResetDay applies the daily-reset policy now. It is also applied at the
// start of every mutation, so callers only need it to refresh idle views
// across midnight. Returns the number of habits reset.
func (l *Ledger) ResetDay() int {
	_, pending := l.begin()
	l.commit(pending...)
	if len(pending) == 0 {
		return 0
	}
	return pending[0].Count
}

// SetDailyReset turns the daily-reset policy on or off.
func (l *Ledger) SetDailyReset(on bool) {
	l.mu.Lock()
	l.cfg.DailyReset = on
	l.mu.Unlock()
}

// DailyReset reports whether the daily-reset policy is on.
func (l *Ledger) DailyReset() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg.DailyReset
}

// begin takes the write lock and applies the daily-reset policy.
// The caller must finish with commit, which releases the lock.
func (l *Ledger) begin() (time.Time, []Event) {
	l.mu.Lock()
	now := l.cfg.Clock()
	if !l.cfg.DailyReset {
		return now, nil
	}

	reset := 0
	for i := range l.habits {
		h := &l.habits[i]
		if h.CompletedToday && !model.SameDay(h.CompletedAt, now, l.cfg.Location) {
			h.CompletedToday = false
			h.CompletedAt = time.Time{}
			reset++
		}
	}
	if reset == 0 {
		return now, nil
	}

	ev := l.newEventLocked(EventDayReset, now)
	ev.Count = reset
	l.cfg.Logger.Info("daily reset", "habits", reset)
	return now, []Event{ev}
}

// removeAt returns items without the given positions, and how many were removed.
func removeAt[T any](items []T, offsets []int) ([]T, int) {
	drop := make(map[int]struct{}, len(offsets))
	for _, o := range offsets {
		if o >= 0 && o < len(items) {
			drop[o] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return items, 0
	}

	kept := make([]T, 0, len(items)-len(drop))
	for i, it := range items {
		if _, ok := drop[i]; !ok {
			kept = append(kept, it)
		}
	}
	return kept, len(drop)
}

func sortHistory(h []model.DailyPoints) {
	sort.SliceStable(h, func(i, j int) bool {
		return h[i].Date.Before(h[j].Date)
	})
}
