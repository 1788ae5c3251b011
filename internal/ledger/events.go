package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType names the kind of ledger change.
type EventType string

const (
	EventHabitAdded       EventType = "habit_added"
	EventHabitsDeleted    EventType = "habits_deleted"
	EventHabitCompleted   EventType = "habit_completed"
	EventHabitUncompleted EventType = "habit_uncompleted"
	EventRewardAdded      EventType = "reward_added"
	EventRewardsDeleted   EventType = "rewards_deleted"
	EventRewardBought     EventType = "reward_bought"
	EventPurchaseDeclined EventType = "purchase_declined"
	EventDayReset         EventType = "day_reset"
)

// Event is emitted after every state change, and for declined purchases.
type Event struct {
	ID        int64
	Type      EventType
	Timestamp time.Time
	Balance   int // balance after the change
	Delta     int // balance change
	Points    int // habit points or reward cost
	Count     int // items affected by deletes and resets
	HabitID   uuid.UUID
	RewardID  uuid.UUID
	Name      string
}

func (l *Ledger) newEventLocked(typ EventType, now time.Time) Event {
	l.nextEventID++
	return Event{
		ID:        l.nextEventID,
		Type:      typ,
		Timestamp: now,
		Balance:   l.balance,
	}
}

// commit records events in the ring, fans them out to channel subscribers
// and releases l.mu, which the caller must hold. Channel sends never block:
// a full subscriber misses the event. Callbacks run on the caller's
// goroutine after the lock is released.
func (l *Ledger) commit(evs ...Event) {
	if len(evs) == 0 {
		l.mu.Unlock()
		return
	}

	l.events = append(l.events, evs...)
	if len(l.events) > l.cfg.EventsBuffer {
		l.events = l.events[len(l.events)-l.cfg.EventsBuffer:]
	}
	for _, ch := range l.subs {
		for _, ev := range evs {
			select {
			case ch <- ev:
			default:
			}
		}
	}
	callbacks := make([]func(Event), 0, len(l.callbacks))
	for _, fn := range l.callbacks {
		callbacks = append(callbacks, fn)
	}
	l.mu.Unlock()

	for _, ev := range evs {
		for _, fn := range callbacks {
			fn(ev)
		}
	}
}

// Subscribe returns a channel receiving future events, and a function that
// unsubscribes and closes the channel. buf < 1 means a buffer of 16.
func (l *Ledger) Subscribe(buf int) (<-chan Event, func()) {
	if buf < 1 {
		buf = 16
	}
	ch := make(chan Event, buf)

	l.mu.Lock()
	l.nextSubID++
	id := l.nextSubID
	l.subs[id] = ch
	l.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			close(ch)
			l.mu.Unlock()
		})
	}
}

// OnChange registers fn to be called with every future event. The returned
// function removes the registration.
func (l *Ledger) OnChange(fn func(Event)) func() {
	l.mu.Lock()
	l.nextSubID++
	id := l.nextSubID
	l.callbacks[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.callbacks, id)
		l.mu.Unlock()
	}
}

// Events returns the retained recent events, oldest first.
func (l *Ledger) Events() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// SubscriberCount returns the number of channel and callback subscribers.
func (l *Ledger) SubscriberCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.subs) + len(l.callbacks)
}
