package ui

import "github.com/vanderheijden86/sheetmon/pkg/tutorial"

// PanelSet holds the expanded flag of each advanced-feature panel. Unlike
// steps, any number of panels may be open at once.
type PanelSet struct {
	known    map[tutorial.PanelID]struct{}
	expanded map[tutorial.PanelID]bool
}

// NewPanelSet creates a set over ids, all collapsed.
func NewPanelSet(ids []tutorial.PanelID) PanelSet {
	p := PanelSet{
		known:    make(map[tutorial.PanelID]struct{}, len(ids)),
		expanded: make(map[tutorial.PanelID]bool, len(ids)),
	}
	for _, id := range ids {
		p.known[id] = struct{}{}
	}
	return p
}

// Toggle flips the expanded flag of id and leaves every other panel alone.
// Unknown ids are ignored.
func (p PanelSet) Toggle(id tutorial.PanelID) {
	if _, ok := p.known[id]; !ok {
		return
	}
	p.expanded[id] = !p.expanded[id]
}

// IsExpanded reports whether id is open.
func (p PanelSet) IsExpanded(id tutorial.PanelID) bool {
	return p.expanded[id]
}

// Expanded returns a snapshot of all flags, including collapsed panels.
func (p PanelSet) Expanded() map[tutorial.PanelID]bool {
	out := make(map[tutorial.PanelID]bool, len(p.known))
	for id := range p.known {
		out[id] = p.expanded[id]
	}
	return out
}
