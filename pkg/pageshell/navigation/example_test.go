package navigation_test

import (
	"fmt"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/navigation"
)

// printHost prints every push and pop it receives.
type printHost struct {
	depth int
	shown bool
}

func (h *printHost) Push(view navigation.ViewID, parameter any, effect navigation.Effect) {
	if h.shown {
		h.depth++
	}
	h.shown = true
	fmt.Printf("push %s %v (%s)\n", view, parameter, effect)
}

func (h *printHost) Pop(effect navigation.Effect) {
	h.depth--
	fmt.Printf("pop (%s)\n", effect)
}

func (h *printHost) CanGoBackward() bool { return h.depth > 0 }

// Example walks a main page, a detail page and back again.
func Example() {
	nav := navigation.New(&printHost{}, nil)

	nav.Register("MainVM", "MainView", navigation.WithInfo(navigation.Info{Section: "Main"}))
	nav.Register("DetailVM", "DetailView", navigation.WithInfo(navigation.Info{
		Section:    "Detail",
		Transition: navigation.TransitionDrillIn,
	}))

	if err := nav.Initialize(); err != nil {
		fmt.Println(err)
		return
	}

	nav.Navigate("MainVM", nil)
	fmt.Println("section:", nav.CurrentSection(), "can go back:", nav.CanGoBack())

	nav.Navigate("DetailVM", 42)
	fmt.Println("section:", nav.CurrentSection(), "can go back:", nav.CanGoBack())

	ok, _ := nav.GoBack()
	fmt.Println("went back:", ok, "section:", nav.CurrentSection(), "can go back:", nav.CanGoBack())

	// Output:
	// push MainView <nil> (slide/trailing)
	// section: Main can go back: false
	// push DetailView 42 (drill-in)
	// section: Detail can go back: true
	// pop (drill-in)
	// went back: true section: Main can go back: false
}

// Example_templates shows a template supplying the section to its children.
func Example_templates() {
	nav := navigation.New(&printHost{}, nil)

	nav.RegisterTemplate("settings", navigation.WithInfo(navigation.Info{
		Section:    "Settings",
		Transition: navigation.TransitionSuppressed,
	}))
	nav.Register("settings.display", "DisplayView", navigation.WithBase("settings"))
	nav.Register("settings.audio", "AudioView", navigation.WithBase("settings"))
	nav.Initialize()

	nav.Navigate("settings.display", nil)
	nav.Navigate("settings.audio", nil)
	fmt.Println("section:", nav.CurrentSection())

	// Output:
	// push DisplayView <nil> (suppress)
	// push AudioView <nil> (suppress)
	// section: Settings
}
