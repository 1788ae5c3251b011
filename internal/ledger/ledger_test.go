package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/habitgame/internal/model"

	"github.com/google/uuid"
)

// fakeClock is a settable clock for day-boundary tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLedger(t *testing.T, seed Seed) (*Ledger, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)}
	l := New(Config{Clock: clock.Now, Location: time.UTC}, seed)
	return l, clock
}

func mustAddHabit(t *testing.T, l *Ledger, name string, points int) model.Habit {
	t.Helper()
	h, ok := l.AddHabit(name, points)
	if !ok {
		t.Fatalf("AddHabit(%q, %d) rejected", name, points)
	}
	return h
}

func mustAddReward(t *testing.T, l *Ledger, name string, cost int) model.Reward {
	t.Helper()
	r, ok := l.AddReward(name, cost)
	if !ok {
		t.Fatalf("AddReward(%q, %d) rejected", name, cost)
	}
	return r
}

func todayPoints(l *Ledger) int {
	return l.Today().Points
}

func assertHistoryInvariants(t *testing.T, l *Ledger) {
	t.Helper()
	h := l.History()
	seen := make(map[time.Time]bool)
	for i, e := range h {
		if e.Points < 0 {
			t.Fatalf("history[%d].Points = %d, want >= 0", i, e.Points)
		}
		if seen[e.Date] {
			t.Fatalf("history has two entries for %s", e.Date.Format("2006-01-02"))
		}
		seen[e.Date] = true
		if i > 0 && e.Date.Before(h[i-1].Date) {
			t.Fatalf("history not sorted at %d: %s before %s", i, e.Date, h[i-1].Date)
		}
		if !e.Date.Equal(model.StartOfDay(e.Date, time.UTC)) {
			t.Fatalf("history[%d].Date = %s, not start of day", i, e.Date)
		}
	}
}

func TestCompleteHabit_EmptyListIsNoop(t *testing.T) {
	l, _ := newTestLedger(t, Seed{Balance: 7})

	l.CompleteHabit(uuid.New())

	if got := l.Balance(); got != 7 {
		t.Fatalf("Balance = %d, want 7", got)
	}
	if got := len(l.History()); got != 0 {
		t.Fatalf("History len = %d, want 0", got)
	}
	if got := len(l.Events()); got != 0 {
		t.Fatalf("Events len = %d, want 0", got)
	}
}

func TestCompleteHabit_ToggleRoundTrip(t *testing.T) {
	l, _ := newTestLedger(t, Seed{})
	read := mustAddHabit(t, l, "Read", 10)

	l.CompleteHabit(read.ID)
	if got := l.Balance(); got != 10 {
		t.Fatalf("after complete: Balance = %d, want 10", got)
	}
	if got := todayPoints(l); got != 10 {
		t.Fatalf("after complete: today = %d, want 10", got)
	}
	h, _ := l.Habit(read.ID)
	if !h.CompletedToday || h.CompletedAt.IsZero() {
		t.Fatalf("after complete: habit = %+v, want completed with timestamp", h)
	}

	l.CompleteHabit(read.ID)
	if got := l.Balance(); got != 0 {
		t.Fatalf("after un-complete: Balance = %d, want 0", got)
	}
	if got := todayPoints(l); got != 0 {
		t.Fatalf("after un-complete: today = %d, want 0", got)
	}
	h, _ = l.Habit(read.ID)
	if h.CompletedToday || !h.CompletedAt.IsZero() {
		t.Fatalf("after un-complete: habit = %+v, want not completed", h)
	}
	assertHistoryInvariants(t, l)
}

func TestCompleteHabit_SignAlternates(t *testing.T) {
	for _, initiallyDone := range []bool{false, true} {
		name := "starts not completed"
		if initiallyDone {
			name = "starts completed"
		}
		t.Run(name, func(t *testing.T) {
			seed := Seed{
				Balance: 100,
				Habits:  []model.Habit{{Name: "Run", Points: 20, CompletedToday: initiallyDone}},
				History: []model.DailyPoints{{Date: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), Points: 20}},
			}
			l, _ := newTestLedger(t, seed)
			id := l.Habits()[0].ID

			want := 20
			if initiallyDone {
				want = -20
			}
			prev := l.Balance()
			for i := 0; i < 6; i++ {
				l.CompleteHabit(id)
				if delta := l.Balance() - prev; delta != want {
					t.Fatalf("toggle %d: balance delta = %d, want %d", i, delta, want)
				}
				prev = l.Balance()
				want = -want
				assertHistoryInvariants(t, l)
			}
		})
	}
}

func TestCompleteHabit_TwoHabitsSameDay(t *testing.T) {
	l, _ := newTestLedger(t, Seed{})
	a := mustAddHabit(t, l, "Water", 5)
	b := mustAddHabit(t, l, "Gym", 15)

	l.CompleteHabit(a.ID)
	l.CompleteHabit(b.ID)

	if got := todayPoints(l); got != 20 {
		t.Fatalf("today = %d, want 20", got)
	}
	if got := len(l.History()); got != 1 {
		t.Fatalf("History len = %d, want 1", got)
	}
}

func TestCompleteHabit_HistorySumMatchesCompleted(t *testing.T) {
	l, clock := newTestLedger(t, Seed{})
	var want int
	for day := 0; day < 4; day++ {
		for i, pts := range []int{3, 7, 11} {
			if (day+i)%2 == 0 {
				h := mustAddHabit(t, l, "h", pts)
				l.CompleteHabit(h.ID)
				want += pts
			}
		}
		clock.Advance(24 * time.Hour)
	}

	var sum int
	for _, e := range l.History() {
		sum += e.Points
	}
	if sum != want {
		t.Fatalf("history sum = %d, want %d", sum, want)
	}
	if got := l.Balance(); got != want {
		t.Fatalf("Balance = %d, want %d", got, want)
	}
	assertHistoryInvariants(t, l)
}

func TestCompleteHabit_NewDayEntryIsSorted(t *testing.T) {
	// Seed only future-looking entries so today's entry must be inserted
	// in the middle.
	seed := Seed{History: []model.DailyPoints{
		{Date: time.Date(2025, 5, 18, 15, 0, 0, 0, time.UTC), Points: 4},
		{Date: time.Date(2025, 5, 22, 0, 0, 0, 0, time.UTC), Points: 9},
	}}
	l, _ := newTestLedger(t, seed)
	h := mustAddHabit(t, l, "Read", 10)

	l.CompleteHabit(h.ID)

	hist := l.History()
	if len(hist) != 3 {
		t.Fatalf("History len = %d, want 3", len(hist))
	}
	if !hist[1].Date.Equal(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)) || hist[1].Points != 10 {
		t.Fatalf("history[1] = %+v, want 2025-05-20 with 10 points", hist[1])
	}
	assertHistoryInvariants(t, l)
}

func TestCompleteHabit_UncompleteClampsHistory(t *testing.T) {
	// Completed yesterday with reset disabled: un-completing today debits
	// today's entry, which clamps at zero while the balance drops in full.
	l, clock := newTestLedger(t, Seed{})
	h := mustAddHabit(t, l, "Read", 10)
	l.CompleteHabit(h.ID)

	clock.Advance(24 * time.Hour)
	other := mustAddHabit(t, l, "Water", 3)
	l.CompleteHabit(other.ID)
	l.CompleteHabit(h.ID)

	if got := todayPoints(l); got != 0 {
		t.Fatalf("today = %d, want 0 (clamped)", got)
	}
	if got := l.Balance(); got != 3 {
		t.Fatalf("Balance = %d, want 3", got)
	}
	assertHistoryInvariants(t, l)
}

func TestCompleteHabit_UncompleteWithoutEntryLeavesHistory(t *testing.T) {
	seed := Seed{Balance: 15, Habits: []model.Habit{{Name: "Meditate", Points: 15, CompletedToday: true}}}
	l, _ := newTestLedger(t, seed)

	l.CompleteHabit(l.Habits()[0].ID)

	if got := len(l.History()); got != 0 {
		t.Fatalf("History len = %d, want 0", got)
	}
	if got := l.Balance(); got != 0 {
		t.Fatalf("Balance = %d, want 0", got)
	}
}

func TestBuyReward(t *testing.T) {
	tests := []struct {
		name        string
		balance     int
		cost        int
		wantErr     error
		wantBalance int
	}{
		{"insufficient", 40, 50, ErrInsufficientBalance, 40},
		{"sufficient", 100, 50, nil, 50},
		{"exact", 50, 50, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger(t, Seed{Balance: tt.balance})
			r := mustAddReward(t, l, "Movie", tt.cost)

			err := l.BuyReward(r.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("BuyReward error = %v, want %v", err, tt.wantErr)
			}
			if got := l.Balance(); got != tt.wantBalance {
				t.Fatalf("Balance = %d, want %d", got, tt.wantBalance)
			}
			if _, ok := l.Reward(r.ID); !ok {
				t.Fatal("reward removed from catalog after purchase attempt")
			}
			if got := len(l.History()); got != 0 {
				t.Fatalf("History len = %d, want 0 (purchases are not recorded)", got)
			}
		})
	}
}

func TestBuyReward_UnknownID(t *testing.T) {
	l, _ := newTestLedger(t, Seed{Balance: 100})
	if err := l.BuyReward(uuid.New()); !errors.Is(err, ErrRewardNotFound) {
		t.Fatalf("BuyReward unknown = %v, want ErrRewardNotFound", err)
	}
	if got := l.Balance(); got != 100 {
		t.Fatalf("Balance = %d, want 100", got)
	}
}

func TestAddHabit_RejectsInvalid(t *testing.T) {
	l, _ := newTestLedger(t, Seed{})

	for _, in := range []struct {
		name   string
		points int
	}{{"", 5}, {"  ", 5}, {"Read", 0}, {"Read", -1}} {
		if _, ok := l.AddHabit(in.name, in.points); ok {
			t.Errorf("AddHabit(%q, %d) accepted", in.name, in.points)
		}
	}
	if got := len(l.Habits()); got != 0 {
		t.Fatalf("Habits len = %d, want 0", got)
	}

	h := mustAddHabit(t, l, "  Read  ", 5)
	if h.Name != "Read" || h.CompletedToday {
		t.Fatalf("added habit = %+v", h)
	}
}

func TestAddReward_RejectsInvalid(t *testing.T) {
	l, _ := newTestLedger(t, Seed{})
	if _, ok := l.AddReward("Movie", 0); ok {
		t.Fatal("AddReward with zero cost accepted")
	}
	if _, ok := l.AddReward("", 10); ok {
		t.Fatal("AddReward with empty name accepted")
	}
	if got := len(l.Rewards()); got != 0 {
		t.Fatalf("Rewards len = %d, want 0", got)
	}
}

func TestDeleteHabits_KeepsEarnedPoints(t *testing.T) {
	l, _ := newTestLedger(t, Seed{})
	a := mustAddHabit(t, l, "A", 5)
	mustAddHabit(t, l, "B", 6)
	c := mustAddHabit(t, l, "C", 7)
	l.CompleteHabit(a.ID)

	l.DeleteHabits([]int{0, 1, 1, 9, -1})

	habits := l.Habits()
	if len(habits) != 1 || habits[0].ID != c.ID {
		t.Fatalf("remaining habits = %+v, want only C", habits)
	}
	if got := l.Balance(); got != 5 {
		t.Fatalf("Balance = %d, want 5", got)
	}
	if got := todayPoints(l); got != 5 {
		t.Fatalf("today = %d, want 5", got)
	}
}

func TestDeleteRewards(t *testing.T) {
	l, _ := newTestLedger(t, Seed{})
	mustAddReward(t, l, "A", 5)
	b := mustAddReward(t, l, "B", 6)

	l.DeleteRewards([]int{0})

	rewards := l.Rewards()
	if len(rewards) != 1 || rewards[0].ID != b.ID {
		t.Fatalf("remaining rewards = %+v, want only B", rewards)
	}
	if got := l.RewardIndex(b.ID); got != 0 {
		t.Fatalf("RewardIndex(B) = %d, want 0", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	l, _ := newTestLedger(t, Seed{})
	h := mustAddHabit(t, l, "Read", 10)

	habits := l.Habits()
	habits[0].Points = 999
	habits[0].CompletedToday = true

	got, _ := l.Habit(h.ID)
	if got.Points != 10 || got.CompletedToday {
		t.Fatalf("ledger habit mutated through accessor: %+v", got)
	}
}

func TestSeed_NormalizesHistoryAndIDs(t *testing.T) {
	dup := uuid.New()
	seed := Seed{
		Balance: 120,
		Habits: []model.Habit{
			{ID: dup, Name: "A", Points: 1},
			{ID: dup, Name: "B", Points: 2},
			{Name: "", Points: 3},
		},
		Rewards: []model.Reward{{Name: "R", Cost: 0}, {Name: "S", Cost: 10}},
		History: []model.DailyPoints{
			{Date: time.Date(2025, 5, 19, 18, 0, 0, 0, time.UTC), Points: 5},
			{Date: time.Date(2025, 5, 17, 9, 0, 0, 0, time.UTC), Points: -3},
			{Date: time.Date(2025, 5, 19, 7, 0, 0, 0, time.UTC), Points: 6},
		},
	}
	l, _ := newTestLedger(t, seed)

	habits := l.Habits()
	if len(habits) != 2 {
		t.Fatalf("Habits len = %d, want 2", len(habits))
	}
	if habits[0].ID == habits[1].ID {
		t.Fatal("duplicate seed IDs were not replaced")
	}
	if got := len(l.Rewards()); got != 1 {
		t.Fatalf("Rewards len = %d, want 1", got)
	}

	hist := l.History()
	if len(hist) != 2 {
		t.Fatalf("History len = %d, want 2", len(hist))
	}
	if hist[0].Points != 0 || hist[1].Points != 11 {
		t.Fatalf("history points = [%d, %d], want [0, 11]", hist[0].Points, hist[1].Points)
	}
	assertHistoryInvariants(t, l)
}

func TestDailyReset(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 5, 20, 22, 0, 0, 0, time.UTC)}
	l := New(Config{Clock: clock.Now, Location: time.UTC, DailyReset: true}, Seed{})
	h := mustAddHabit(t, l, "Read", 10)
	l.CompleteHabit(h.ID)

	if n := l.ResetDay(); n != 0 {
		t.Fatalf("ResetDay same day = %d, want 0", n)
	}

	clock.Advance(3 * time.Hour) // past midnight
	if n := l.ResetDay(); n != 1 {
		t.Fatalf("ResetDay next day = %d, want 1", n)
	}
	got, _ := l.Habit(h.ID)
	if got.CompletedToday {
		t.Fatal("habit still completed after daily reset")
	}
	if b := l.Balance(); b != 10 {
		t.Fatalf("Balance = %d, want 10 (reset keeps earned points)", b)
	}

	// Completing again today earns again and opens a new history entry.
	l.CompleteHabit(h.ID)
	if b := l.Balance(); b != 20 {
		t.Fatalf("Balance = %d, want 20", b)
	}
	if n := len(l.History()); n != 2 {
		t.Fatalf("History len = %d, want 2", n)
	}
}

func TestDailyReset_AppliedBeforeToggle(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)}
	l := New(Config{Clock: clock.Now, Location: time.UTC, DailyReset: true}, Seed{})
	h := mustAddHabit(t, l, "Read", 10)
	l.CompleteHabit(h.ID)

	clock.Advance(24 * time.Hour)
	l.CompleteHabit(h.ID) // reset first, so this completes again

	got, _ := l.Habit(h.ID)
	if !got.CompletedToday {
		t.Fatal("toggle after reset should complete the habit")
	}
	if b := l.Balance(); b != 20 {
		t.Fatalf("Balance = %d, want 20", b)
	}
}

func TestDailyResetDisabledKeepsCompletion(t *testing.T) {
	l, clock := newTestLedger(t, Seed{})
	h := mustAddHabit(t, l, "Read", 10)
	l.CompleteHabit(h.ID)

	clock.Advance(72 * time.Hour)
	if n := l.ResetDay(); n != 0 {
		t.Fatalf("ResetDay with policy disabled = %d, want 0", n)
	}
	got, _ := l.Habit(h.ID)
	if !got.CompletedToday {
		t.Fatal("habit reset with policy disabled")
	}
}

func TestSetDailyReset(t *testing.T) {
	l, clock := newTestLedger(t, Seed{})
	h := mustAddHabit(t, l, "Read", 10)
	l.CompleteHabit(h.ID)
	clock.Advance(24 * time.Hour)

	if l.DailyReset() {
		t.Fatal("DailyReset = true, want false by default")
	}
	l.SetDailyReset(true)
	if n := l.ResetDay(); n != 1 {
		t.Fatalf("ResetDay after enabling = %d, want 1", n)
	}
}

func TestSpent_CountsPastEventRing(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)}
	l := New(Config{Clock: clock.Now, Location: time.UTC, EventsBuffer: 2}, Seed{Balance: 100})
	r := mustAddReward(t, l, "Tea", 10)
	expensive := mustAddReward(t, l, "Trip", 1000)

	for i := 0; i < 5; i++ {
		if err := l.BuyReward(r.ID); err != nil {
			t.Fatalf("BuyReward #%d: %v", i, err)
		}
	}
	_ = l.BuyReward(expensive.ID) // declined, not counted

	if got := l.Spent(); got != 50 {
		t.Fatalf("Spent = %d, want 50", got)
	}
	if got := len(l.Events()); got != 2 {
		t.Fatalf("Events len = %d, want 2", got)
	}
}
