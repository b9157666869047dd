package navigation

// Direction is the direction of travel through history.
type Direction int

const (
	DirectionForward  Direction = iota // Navigate
	DirectionBackward                  // GoBack
)

func (d Direction) String() string {
	if d == DirectionBackward {
		return "backward"
	}
	return "forward"
}

// EffectKind is the visual effect the Host should play.
type EffectKind int

const (
	EffectSlide    EffectKind = iota // Slide from an edge
	EffectDrillIn                    // Zoom into detail
	EffectEntrance                   // Fade-in entrance
	EffectSuppress                   // No animation
)

func (k EffectKind) String() string {
	switch k {
	case EffectSlide:
		return "slide"
	case EffectDrillIn:
		return "drill-in"
	case EffectEntrance:
		return "entrance"
	case EffectSuppress:
		return "suppress"
	default:
		return "unknown"
	}
}

// Edge is the edge a slide enters from.
type Edge int

const (
	EdgeNone     Edge = iota // Effect has no direction
	EdgeTrailing             // From the trailing edge (inward, forward)
	EdgeLeading              // From the leading edge (outward, backward)
)

// Effect is what the Host receives on Push and Pop.
type Effect struct {
	Kind EffectKind
	Edge Edge
}

func (e Effect) String() string {
	switch e.Edge {
	case EdgeTrailing:
		return e.Kind.String() + "/trailing"
	case EdgeLeading:
		return e.Kind.String() + "/leading"
	default:
		return e.Kind.String()
	}
}

// SelectEffect maps a destination's transition and the direction of travel
// to an effect. Only the slide is directional.
func SelectEffect(t Transition, d Direction) Effect {
	switch t {
	case TransitionDrillIn:
		return Effect{Kind: EffectDrillIn}
	case TransitionFade:
		return Effect{Kind: EffectEntrance}
	case TransitionSuppressed:
		return Effect{Kind: EffectSuppress}
	}

	if d == DirectionBackward {
		return Effect{Kind: EffectSlide, Edge: EdgeLeading}
	}
	return Effect{Kind: EffectSlide, Edge: EdgeTrailing}
}
