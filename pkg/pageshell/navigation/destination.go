package navigation

// ViewModelID is the logical identity callers navigate to.
type ViewModelID string

// ViewID is the identity of the renderable view the Host displays.
type ViewID string

// Section is a coarse-grained grouping of destinations, used for tab or
// selection UI. SectionNone means no section.
type Section string

const SectionNone Section = ""

// Transition is the navigation metadata's requested visual effect.
type Transition int

const (
	TransitionDefault    Transition = iota // Slide in the direction of travel
	TransitionDrillIn                      // Drill into detail content
	TransitionFade                         // Fade-in entrance
	TransitionSuppressed                   // No animation
)

func (t Transition) String() string {
	switch t {
	case TransitionDefault:
		return "default"
	case TransitionDrillIn:
		return "drill-in"
	case TransitionFade:
		return "fade"
	case TransitionSuppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

// ParseTransition maps a catalog or config name to a Transition.
// The empty string and "slide" are the default transition.
func ParseTransition(name string) (Transition, bool) {
	switch name {
	case "", "default", "slide":
		return TransitionDefault, true
	case "drill-in", "drillin":
		return TransitionDrillIn, true
	case "fade", "entrance":
		return TransitionFade, true
	case "suppressed", "none":
		return TransitionSuppressed, true
	}
	return TransitionDefault, false
}

// Info is the navigation metadata attached to a destination. Each field is
// resolved on its own: a field left unset is inherited from the nearest
// base that sets it.
type Info struct {
	Section       Section    // SectionNone inherits
	Transition    Transition // TransitionDefault inherits unless HasTransition is set
	HasTransition bool       // Transition is explicit, even when it is TransitionDefault
}

func (i Info) hasTransition() bool {
	return i.HasTransition || i.Transition != TransitionDefault
}

// inherit fills the fields i leaves unset from base.
func (i Info) inherit(base Info) Info {
	if i.Section == SectionNone {
		i.Section = base.Section
	}
	if !i.hasTransition() && base.hasTransition() {
		i.Transition = base.Transition
	}
	i.HasTransition = i.hasTransition()
	return i
}

// Destination maps a view model to a view. It is immutable once registered.
type Destination struct {
	ViewModel ViewModelID
	View      ViewID      // Empty for templates, which can't be navigated to
	Base      ViewModelID // Ancestor the metadata was inherited from, if any
	Info      *Info       // Resolved nearest-ancestor metadata, nil if none
}

// IsTemplate reports whether the destination only supplies metadata.
func (d Destination) IsTemplate() bool {
	return d.View == ""
}

// Transition returns the resolved transition, TransitionDefault without metadata.
func (d Destination) Transition() Transition {
	if d.Info == nil {
		return TransitionDefault
	}
	return d.Info.Transition
}

// RegisterOption customizes a registration.
type RegisterOption func(*registration)

type registration struct {
	info *Info
	base ViewModelID
}

// WithInfo attaches metadata directly to the destination. Fields it sets
// win over anything inherited through WithBase; unset fields still inherit.
func WithInfo(info Info) RegisterOption {
	return func(r *registration) {
		r.info = &info
	}
}

// WithBase names an already registered destination (usually a template)
// whose resolved metadata fills in whatever WithInfo leaves unset.
func WithBase(base ViewModelID) RegisterOption {
	return func(r *registration) {
		r.base = base
	}
}

// Registry maps view models to destinations. Keys are unique; registering
// an existing key overwrites it.
type Registry struct {
	destinations map[ViewModelID]Destination
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		destinations: make(map[ViewModelID]Destination),
	}
}

// Add resolves metadata for vm and stores the descriptor. The base chain is
// evaluated here, once, so later changes to a base don't leak into
// destinations registered before them.
func (r *Registry) Add(vm ViewModelID, view ViewID, opts ...RegisterOption) (Destination, error) {
	var reg registration
	for _, opt := range opts {
		opt(&reg)
	}

	dest := Destination{ViewModel: vm, View: view, Base: reg.base}

	var inherited *Info
	if reg.base != "" {
		var err error
		if inherited, err = r.resolveBase(vm, reg.base); err != nil {
			return Destination{}, err
		}
	}

	if reg.info != nil {
		var base Info
		if inherited != nil {
			base = *inherited
		}
		info := reg.info.inherit(base)
		dest.Info = &info
	} else {
		dest.Info = inherited
	}

	r.destinations[vm] = dest
	return dest, nil
}

// resolveBase checks the chain starting at base for unknown links and
// cycles, and returns the base's resolved metadata. Every registered
// destination already carries its merged chain, so only the first link with
// metadata matters.
func (r *Registry) resolveBase(vm, base ViewModelID) (*Info, error) {
	var resolved *Info
	seen := map[ViewModelID]bool{vm: true}
	for id := base; id != ""; {
		if seen[id] {
			return nil, &DestinationError{Op: "register", ViewModel: vm, Base: base, Err: ErrCyclicBase}
		}
		seen[id] = true

		parent, ok := r.destinations[id]
		if !ok {
			return nil, &DestinationError{Op: "register", ViewModel: vm, Base: id, Err: ErrUnregisteredDestination}
		}
		if resolved == nil && parent.Info != nil {
			info := *parent.Info
			resolved = &info
		}
		id = parent.Base
	}
	return resolved, nil
}

// Lookup returns the destination registered for vm.
func (r *Registry) Lookup(vm ViewModelID) (Destination, bool) {
	dest, ok := r.destinations[vm]
	return dest, ok
}

// Len returns the number of registered destinations, templates included.
func (r *Registry) Len() int {
	return len(r.destinations)
}
