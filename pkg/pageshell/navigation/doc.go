// Package navigation routes between registered pages and keeps the back
// history for a single UI surface.
//
// A Coordinator owns a Registry of destinations, the BackStack of previously
// displayed entries and the currently active Section. It drives an abstract
// Host (the thing that actually swaps views) and toggles an abstract
// BackSignal (the platform back gesture) so that the gesture is only
// subscribed while there is somewhere to go back to.
//
// # Basic Usage
//
//	nav := navigation.New(host, backButton)
//
//	nav.Register("main", "MainView", navigation.WithInfo(navigation.Info{Section: "Main"}))
//	nav.RegisterTemplate("settings-base", navigation.WithInfo(navigation.Info{Section: "Settings"}))
//	nav.Register("settings.display", "DisplayView", navigation.WithBase("settings-base"))
//
//	if err := nav.Initialize(); err != nil {
//	    return err
//	}
//
//	nav.Navigate("main", nil)
//	nav.Navigate("settings.display", nil) // CurrentSection() == "Settings"
//	nav.GoBack()                          // CurrentSection() == "Main"
//
// # History
//
// The entry being displayed is not on the BackStack. Navigating pushes the
// displayed entry and makes the new one current, so the very first Navigate
// leaves CanGoBack false. GoBack pops the top entry and restores the section
// that was active when that entry was displayed.
//
// # Threading
//
// A Coordinator is not safe for concurrent use. Call it from the UI
// goroutine (see package loop); back gestures arriving from other goroutines
// must be posted there first.
package navigation
