package timer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type traceKey struct{}

type traceEvent struct {
	event   string
	elapsed time.Duration
}

type trace struct {
	lock   sync.Mutex
	start  time.Time
	events []traceEvent
}

func (t *trace) record(key string, ts time.Time) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.events = append(t.events, traceEvent{
		event:   key,
		elapsed: ts.Sub(t.start),
	})
}

func WithTracing(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey{}, &trace{
		start:  time.Now(),
		events: make([]traceEvent, 0),
	})
}

// Record notes that event finished now. It is a no-op unless ctx was
// created by WithTracing.
func Record(ctx context.Context, event string) {
	if ctx == nil {
		return
	}
	if tr, ok := ctx.Value(traceKey{}).(*trace); ok {
		tr.record(event, time.Now())
	}
}

func LogTracingInfo(ctx context.Context, log *zap.Logger) error {
	ctxval := ctx.Value(traceKey{})
	if ctxval == nil {
		return nil
	}
	tr, ok := ctxval.(*trace)
	if !ok {
		return fmt.Errorf("expected trace but got: %v", ctxval)
	}
	tr.lock.Lock()
	defer tr.lock.Unlock()
	sort.SliceStable(tr.events, func(i, j int) bool {
		return tr.events[i].elapsed < tr.events[j].elapsed
	})
	sb := strings.Builder{}
	sb.WriteString("====Trace====\n")
	for _, e := range tr.events {
		sb.WriteString(fmt.Sprintf("\t%5dus: %s\n", e.elapsed.Microseconds(), e.event))
	}
	log.Debug(sb.String(), zap.Int("events", len(tr.events)))
	return nil
}
