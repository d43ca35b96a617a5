package match

import (
	"log"

	"golang.org/x/time/rate"
)

// eventBufferSize is the buffer capacity; once it is full, further events are
// dropped (spec: the engine does no I/O, so unlike the teacher's file-backed
// log this is purely an in-memory replay buffer for the current match).
const eventBufferSize = 4096

// maxEventsPerTick bounds how many events a single tick may append,
// defending against a runaway rule producing an unbounded event storm the
// same way the teacher's globalLimiter defends its event log.
const maxEventsPerTick = 32

// EventLog is an append-only, bounded record of every Event the match has
// emitted, kept entirely in memory (no async writer, no file — the tick
// loop must perform no I/O). It doubles as the deterministic replay log: two
// matches run from the same seed produce byte-identical logs.
type EventLog struct {
	entries      []Event
	perTickLimiter *rate.Limiter
	droppedCount int
	totalCount   int
}

// NewEventLog creates an empty, bounded event log.
func NewEventLog() *EventLog {
	return &EventLog{
		entries:        make([]Event, 0, eventBufferSize),
		perTickLimiter: rate.NewLimiter(rate.Limit(maxEventsPerTick), maxEventsPerTick),
	}
}

// Append records ev, dropping it (and counting the drop) if the buffer is
// full or the per-tick rate limiter is exhausted — the same defensive
// posture the teacher's EventLog takes against an unbounded producer.
func (l *EventLog) Append(ev Event) {
	l.totalCount++
	if !l.perTickLimiter.Allow() {
		l.droppedCount++
		log.Printf("eventlog: dropped event type=%s tick=%d (rate limit)", ev.Type, ev.Tick)
		return
	}
	if len(l.entries) >= eventBufferSize {
		l.droppedCount++
		log.Printf("eventlog: dropped event type=%s tick=%d (buffer full)", ev.Type, ev.Tick)
		return
	}
	l.entries = append(l.entries, ev)
}

// ResetTickBudget replenishes the per-tick rate limiter; called once at the
// start of each tick so a quiet tick doesn't let the budget accumulate
// across many ticks.
func (l *EventLog) ResetTickBudget() {
	l.perTickLimiter = rate.NewLimiter(rate.Limit(maxEventsPerTick), maxEventsPerTick)
}

// All returns every recorded event in emission order. The caller must treat
// the result as read-only; it is not copied for performance, matching the
// teacher's "snapshot, don't mutate" convention elsewhere in the package.
func (l *EventLog) All() []Event {
	return l.entries
}

// Since returns events recorded at or after fromTick, for incremental
// consumers (e.g. the demo SSE broadcaster replaying only new events).
func (l *EventLog) Since(fromTick int) []Event {
	for i, e := range l.entries {
		if e.Tick >= fromTick {
			return l.entries[i:]
		}
	}
	return nil
}

// Stats reports basic counters for observability.
func (l *EventLog) Stats() (total, dropped, stored int) {
	return l.totalCount, l.droppedCount, len(l.entries)
}
