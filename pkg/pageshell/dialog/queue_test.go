package dialog

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.uber.org/atomic"
)

// gatedPresenter blocks each presentation until its gate is released and
// records the order specs were presented in.
type gatedPresenter struct {
	mu     sync.Mutex
	order  []int
	gates  map[int]chan struct{}
	active atomic.Int32
	peak   atomic.Int32
}

func newGatedPresenter() *gatedPresenter {
	return &gatedPresenter{gates: make(map[int]chan struct{})}
}

func (p *gatedPresenter) gate(spec int) chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.gates[spec]
	if !ok {
		g = make(chan struct{})
		p.gates[spec] = g
	}
	return g
}

func (p *gatedPresenter) Present(spec int) (string, error) {
	n := p.active.Inc()
	if n > p.peak.Load() {
		p.peak.Store(n)
	}
	defer p.active.Dec()

	p.mu.Lock()
	p.order = append(p.order, spec)
	p.mu.Unlock()

	<-p.gate(spec)
	return "result-" + string(rune('0'+spec)), nil
}

func (p *gatedPresenter) presented() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.order...)
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestQueueFIFO(t *testing.T) {
	p := newGatedPresenter()
	q := NewQueue[int, string](p)
	ctx := waitCtx(t)

	f1 := q.Enqueue(1)
	waitFor(t, func() bool { return len(p.presented()) == 1 })

	f2 := q.Enqueue(2)
	f3 := q.Enqueue(3)
	if got := q.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}
	if !q.Draining() {
		t.Fatal("Draining() = false while a dialog is open")
	}

	// Release out of order: 3 and 2 must still wait for 1.
	close(p.gate(3))
	close(p.gate(2))
	time.Sleep(10 * time.Millisecond)
	if got := p.presented(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("presented = %v while first dialog open, want [1]", got)
	}
	close(p.gate(1))

	for i, f := range []*Future[string]{f1, f2, f3} {
		got, err := f.Wait(ctx)
		if err != nil {
			t.Fatalf("future %d: %v", i+1, err)
		}
		if want := "result-" + string(rune('1'+i)); got != want {
			t.Fatalf("future %d = %q, want %q", i+1, got, want)
		}
	}

	if got := p.presented(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("presented = %v, want [1 2 3]", got)
	}
	if peak := p.peak.Load(); peak != 1 {
		t.Fatalf("peak concurrent presentations = %d, want 1", peak)
	}

	<-q.Idle()
	if q.Draining() {
		t.Fatal("Draining() = true after queue emptied")
	}
}

func TestQueueFailureDoesNotStall(t *testing.T) {
	boom := errors.New("no xaml root")
	var presented []string
	q := NewQueue[string, int](PresenterFunc[string, int](func(spec string) (int, error) {
		presented = append(presented, spec)
		if spec == "bad" {
			return 0, boom
		}
		return len(spec), nil
	}))
	ctx := waitCtx(t)

	bad := q.Enqueue("bad")
	good := q.Enqueue("good")

	_, err := bad.Wait(ctx)
	if !IsPresentationFailed(err) {
		t.Fatalf("bad.Wait() error = %v, want ErrPresentationFailed", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("bad.Wait() error = %v, want it to wrap %v", err, boom)
	}
	var perr *PresentationError
	if !errors.As(err, &perr) || perr.Seq != 1 {
		t.Fatalf("bad.Wait() error = %#v, want PresentationError seq 1", err)
	}

	n, err := good.Wait(ctx)
	if err != nil || n != 4 {
		t.Fatalf("good.Wait() = %d, %v, want 4, nil", n, err)
	}

	<-q.Idle()
	if !reflect.DeepEqual(presented, []string{"bad", "good"}) {
		t.Fatalf("presented = %v", presented)
	}
}

func TestQueueRecoversPanic(t *testing.T) {
	q := NewQueue[int, int](PresenterFunc[int, int](func(spec int) (int, error) {
		if spec == 0 {
			panic("nil dialog")
		}
		return spec * 2, nil
	}))
	ctx := waitCtx(t)

	crashed := q.Enqueue(0)
	after := q.Enqueue(21)

	if _, err := crashed.Wait(ctx); !IsPresentationFailed(err) {
		t.Fatalf("crashed.Wait() error = %v, want ErrPresentationFailed", err)
	}
	if got, err := after.Wait(ctx); err != nil || got != 42 {
		t.Fatalf("after.Wait() = %d, %v, want 42, nil", got, err)
	}
}

func TestQueueRestartsAfterIdle(t *testing.T) {
	var calls atomic.Int32
	q := NewQueue[int, int](PresenterFunc[int, int](func(spec int) (int, error) {
		calls.Inc()
		return spec, nil
	}))
	ctx := waitCtx(t)

	select {
	case <-q.Idle():
	default:
		t.Fatal("new queue is not idle")
	}

	for round := 1; round <= 3; round++ {
		f := q.Enqueue(round)
		if got, err := f.Wait(ctx); err != nil || got != round {
			t.Fatalf("round %d: Wait() = %d, %v", round, got, err)
		}
		<-q.Idle()
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("presenter calls = %d, want 3", got)
	}
}

func TestQueueConcurrentEnqueue(t *testing.T) {
	p := newGatedPresenter()
	q := NewQueue[int, string](p)
	ctx := waitCtx(t)

	for i := 0; i < 8; i++ {
		close(p.gate(i))
	}

	var wg sync.WaitGroup
	futures := make([]*Future[string], 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			futures[i] = q.Enqueue(i)
		}(i)
	}
	wg.Wait()

	for i, f := range futures {
		if _, err := f.Wait(ctx); err != nil {
			t.Fatalf("future %d: %v", i, err)
		}
	}
	if got := len(p.presented()); got != 8 {
		t.Fatalf("presented %d dialogs, want 8", got)
	}
	if peak := p.peak.Load(); peak != 1 {
		t.Fatalf("peak concurrent presentations = %d, want 1", peak)
	}
}
