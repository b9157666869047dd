package navigation

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/internal"
)

// Host is the navigation primitive that actually swaps views.
type Host interface {
	Push(view ViewID, parameter any, effect Effect)
	Pop(effect Effect)
	CanGoBackward() bool
}

// HistoryClearer is implemented by hosts that keep their own back stack and
// need to drop it when ClearBackStack is called.
type HistoryClearer interface {
	ClearHistory()
}

// State is the lifecycle state of a Coordinator.
type State int

const (
	StateUninitialized State = iota
	StateReady
)

func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "uninitialized"
}

// NavigatedEvent is delivered to OnNavigated listeners after the Host has
// been told to push or pop.
type NavigatedEvent struct {
	Direction Direction
	Entry     HistoryEntry // Entry now being displayed
	Effect    Effect
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDefaultSection sets the section used when no displayed entry carries one.
func WithDefaultSection(section Section) Option {
	return func(c *Coordinator) {
		c.defaultSection = section
		c.section = section
	}
}

// WithLogger replaces the internal logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// Coordinator is the navigation state machine for one UI surface.
type Coordinator struct {
	host     Host
	registry *Registry
	stack    *Stack
	gesture  *gestureSubscription
	canBack  Reachability
	logger   *slog.Logger

	state          State
	current        *HistoryEntry
	section        Section
	defaultSection Section

	listenersMu sync.Mutex
	listeners   map[uint64]func(NavigatedEvent)
	nextID      uint64
}

// New creates a Coordinator driving host. signal may be nil when the
// platform has no back gesture.
func New(host Host, signal BackSignal, opts ...Option) *Coordinator {
	c := &Coordinator{
		host:      host,
		registry:  NewRegistry(),
		stack:     NewStack(),
		logger:    internal.GetInternalLogger(),
		listeners: make(map[uint64]func(NavigatedEvent)),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.gesture = &gestureSubscription{
		signal:  signal,
		handler: c.handleBackRequest,
		logger:  c.logger,
	}

	return c
}

// Register adds or overwrites the destination for vm. It may be called in
// any state; a base given with WithBase must already be registered.
func (c *Coordinator) Register(vm ViewModelID, view ViewID, opts ...RegisterOption) error {
	dest, err := c.registry.Add(vm, view, opts...)
	if err != nil {
		return err
	}

	c.logger.Debug("Registered destination",
		"view_model", vm,
		"view", view,
		"base", dest.Base,
		"has_info", dest.Info != nil)
	return nil
}

// RegisterTemplate registers a destination that only supplies metadata to
// destinations naming it with WithBase.
func (c *Coordinator) RegisterTemplate(vm ViewModelID, opts ...RegisterOption) error {
	return c.Register(vm, "", opts...)
}

// Registry exposes the registered destinations.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// Initialize moves the coordinator to StateReady. It must be called exactly
// once before any navigation.
func (c *Coordinator) Initialize() error {
	if c.state == StateReady {
		return ErrAlreadyInitialized
	}

	c.state = StateReady
	c.gesture.sync(false)
	c.logger.Debug("Navigation initialized", "destinations", c.registry.Len())
	return nil
}

// State returns the lifecycle state.
func (c *Coordinator) State() State {
	return c.state
}

// Navigate displays the destination registered for vm, pushing the entry
// currently displayed onto the back stack.
func (c *Coordinator) Navigate(vm ViewModelID, parameter any) error {
	if c.state != StateReady {
		return ErrNotInitialized
	}

	dest, ok := c.registry.Lookup(vm)
	if !ok || dest.IsTemplate() {
		return &DestinationError{Op: "navigate", ViewModel: vm, Err: ErrUnregisteredDestination}
	}

	if dest.Info != nil && dest.Info.Section != SectionNone {
		c.section = dest.Info.Section
	}

	if c.current != nil {
		c.stack.Push(*c.current)
	}
	entry := HistoryEntry{Destination: dest, Parameter: parameter, Section: c.section}
	c.current = &entry

	effect := SelectEffect(dest.Transition(), DirectionForward)

	c.logger.Debug("Navigating",
		"view_model", vm,
		"view", dest.View,
		"section", c.section,
		"effect", effect.String(),
		"back_stack", c.stack.Len())

	c.host.Push(dest.View, parameter, effect)
	c.refresh()
	c.notify(NavigatedEvent{Direction: DirectionForward, Entry: entry, Effect: effect})
	return nil
}

// GoBack returns to the most recent back stack entry. It reports false,
// without side effects, when there is nothing to go back to.
func (c *Coordinator) GoBack() (bool, error) {
	if c.state != StateReady {
		return false, ErrNotInitialized
	}

	entered, ok := c.stack.Pop()
	if !ok {
		return false, nil
	}

	var left Transition
	if c.current != nil {
		left = c.current.Destination.Transition()
	}
	effect := SelectEffect(left, DirectionBackward)

	c.current = &entered
	c.section = entered.Section
	if c.section == SectionNone {
		c.section = c.defaultSection
	}

	c.logger.Debug("Navigating back",
		"view_model", entered.Destination.ViewModel,
		"view", entered.Destination.View,
		"section", c.section,
		"effect", effect.String(),
		"back_stack", c.stack.Len())

	c.host.Pop(effect)
	c.refresh()
	c.notify(NavigatedEvent{Direction: DirectionBackward, Entry: entered, Effect: effect})
	return true, nil
}

// ClearBackStack drops all history. The displayed entry stays put.
func (c *Coordinator) ClearBackStack() error {
	if c.state != StateReady {
		return ErrNotInitialized
	}

	c.stack.Clear()
	if hc, ok := c.host.(HistoryClearer); ok {
		hc.ClearHistory()
	}
	c.refresh()
	c.logger.Debug("Cleared back stack")
	return nil
}

// CanGoBack reports whether the back stack is non-empty.
func (c *Coordinator) CanGoBack() bool {
	return !c.stack.IsEmpty()
}

// Reachability is the observable form of CanGoBack.
func (c *Coordinator) Reachability() *Reachability {
	return &c.canBack
}

// CurrentSection is the section of the most recent entry that carried one.
func (c *Coordinator) CurrentSection() Section {
	return c.section
}

// Current returns the entry being displayed.
func (c *Coordinator) Current() (HistoryEntry, bool) {
	if c.current == nil {
		return HistoryEntry{}, false
	}
	return *c.current, true
}

// BackStack returns a copy of the back stack, oldest first.
func (c *Coordinator) BackStack() []HistoryEntry {
	return c.stack.Entries()
}

// BackStackLen returns the number of entries that GoBack can return to.
func (c *Coordinator) BackStackLen() int {
	return c.stack.Len()
}

// GestureSubscribed reports whether the back gesture is currently subscribed.
func (c *Coordinator) GestureSubscribed() bool {
	return c.gesture.active()
}

// OnNavigated registers fn to run after every Navigate and successful GoBack.
func (c *Coordinator) OnNavigated(fn func(NavigatedEvent)) (cancel func()) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

// refresh brings the reachability signal and gesture subscription in line
// with the back stack.
func (c *Coordinator) refresh() {
	canGoBack := c.CanGoBack()
	c.gesture.sync(canGoBack)
	if c.canBack.set(canGoBack) {
		c.logger.Debug("Back reachability changed", "can_go_back", canGoBack)
	}

	if c.host.CanGoBackward() != canGoBack {
		c.logger.Warn("Host back stack out of sync",
			"host_can_go_back", c.host.CanGoBackward(),
			"can_go_back", canGoBack)
	}
}

func (c *Coordinator) notify(event NavigatedEvent) {
	c.listenersMu.Lock()
	ids := make([]uint64, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(NavigatedEvent), len(ids))
	for i, id := range ids {
		fns[i] = c.listeners[id]
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

func (c *Coordinator) handleBackRequest(req *BackRequest) {
	ok, err := c.GoBack()
	if err != nil {
		c.logger.Error("Back gesture failed", "error", err)
		return
	}
	if ok {
		req.Handled = true
	}
}
