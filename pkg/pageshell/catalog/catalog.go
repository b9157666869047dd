// Package catalog loads navigation destinations in bulk from a TOML file,
// so an application can declare its pages instead of registering each one
// in code.
//
// # Format
//
//	[[template]]
//	id = "settings"
//	section = "Settings"
//	transition = "suppressed"
//
//	[[destination]]
//	view_model = "main"
//	view = "MainView"
//	section = "Main"
//
//	[[destination]]
//	view_model = "settings.display"
//	view = "DisplayView"
//	extends = "settings"
//
// Entries may appear in any order; a base is always registered before the
// entries that extend it.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/pageshell/pkg/pageshell/navigation"
)

// Entry is one [[template]] or [[destination]] table.
type Entry struct {
	ID         string `toml:"id"` // Template identity
	ViewModel  string `toml:"view_model"`
	View       string `toml:"view"`
	Section    string `toml:"section"`
	Transition string `toml:"transition"`
	Extends    string `toml:"extends"`

	template bool
}

// Catalog is a decoded catalog file.
type Catalog struct {
	Templates    []Entry `toml:"template"`
	Destinations []Entry `toml:"destination"`
}

// Registrar is what a catalog registers into. *navigation.Coordinator
// implements it.
type Registrar interface {
	Register(vm navigation.ViewModelID, view navigation.ViewID, opts ...navigation.RegisterOption) error
}

// Decode reads a catalog from r.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("catalog: unknown key %q", undecoded[0].String())
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Parse decodes a catalog held in memory.
func Parse(data []byte) (*Catalog, error) {
	return Decode(bytes.NewReader(data))
}

// Load decodes the catalog at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func (c *Catalog) validate() error {
	seen := make(map[string]bool)

	for i, t := range c.Templates {
		if t.ID == "" {
			return fmt.Errorf("catalog: template %d has no id", i)
		}
		if t.View != "" {
			return fmt.Errorf("catalog: template %q has a view", t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("catalog: duplicate id %q", t.ID)
		}
		seen[t.ID] = true
	}

	for i, d := range c.Destinations {
		if d.ViewModel == "" || d.View == "" {
			return fmt.Errorf("catalog: destination %d needs view_model and view", i)
		}
		if seen[d.ViewModel] {
			return fmt.Errorf("catalog: duplicate id %q", d.ViewModel)
		}
		seen[d.ViewModel] = true
	}

	for _, e := range c.entries() {
		if _, ok := navigation.ParseTransition(e.Transition); !ok {
			return fmt.Errorf("catalog: %q has unknown transition %q", e.key(), e.Transition)
		}
		if e.Extends != "" && !seen[e.Extends] {
			return fmt.Errorf("catalog: %q extends unknown %q", e.key(), e.Extends)
		}
	}
	return nil
}

// entries returns templates then destinations, marking each template by the
// table it came from.
func (c *Catalog) entries() []Entry {
	all := make([]Entry, 0, len(c.Templates)+len(c.Destinations))
	for _, t := range c.Templates {
		t.template = true
		all = append(all, t)
	}
	for _, d := range c.Destinations {
		d.template = false
		all = append(all, d)
	}
	return all
}

func (e Entry) key() string {
	if e.template {
		return e.ID
	}
	return e.ViewModel
}

func (e Entry) options() []navigation.RegisterOption {
	var opts []navigation.RegisterOption
	if e.Extends != "" {
		opts = append(opts, navigation.WithBase(navigation.ViewModelID(e.Extends)))
	}
	if e.Section != "" || e.Transition != "" {
		transition, _ := navigation.ParseTransition(e.Transition)
		opts = append(opts, navigation.WithInfo(navigation.Info{
			Section:       navigation.Section(e.Section),
			Transition:    transition,
			HasTransition: e.Transition != "",
		}))
	}
	return opts
}

// Ordered returns every entry with each base ahead of the entries extending
// it. File order is kept otherwise.
func (c *Catalog) Ordered() ([]Entry, error) {
	all := c.entries()
	index := make(map[string]int, len(all))
	for i, e := range all {
		index[e.key()] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(all))
	ordered := make([]Entry, 0, len(all))

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("catalog: %q: %w", all[i].key(), navigation.ErrCyclicBase)
		}
		state[i] = visiting
		if base := all[i].Extends; base != "" {
			j, ok := index[base]
			if !ok {
				return fmt.Errorf("catalog: %q extends unknown %q", all[i].key(), base)
			}
			if err := visit(j); err != nil {
				return err
			}
		}
		state[i] = done
		ordered = append(ordered, all[i])
		return nil
	}

	for i := range all {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// Apply validates the catalog and registers every entry with r, bases
// first. Catalogs built in code go through the same checks as decoded ones.
func (c *Catalog) Apply(r Registrar) error {
	if err := c.validate(); err != nil {
		return err
	}
	ordered, err := c.Ordered()
	if err != nil {
		return err
	}

	for _, e := range ordered {
		view := navigation.ViewID(e.View)
		if e.template {
			view = ""
		}
		if err := r.Register(navigation.ViewModelID(e.key()), view, e.options()...); err != nil {
			return fmt.Errorf("catalog: register %q: %w", e.key(), err)
		}
	}
	return nil
}
