// File: productionline.go
// Role: ProductionLine (§4.10), grounded on original_source's
// fms::problem::ProductionLine (include/fms/problem/production_line.hpp,
// src/FORPFSSPSD/production_line.cpp): a totally ordered sequence of
// modules connected by boundaries, with forward/backward neighbor
// queries the cocktail/broadcast sweeps walk.
package modular

import "fmt"

// ProductionLine is a totally ordered sequence of modules.
type ProductionLine struct {
	order      []ModuleId
	modules    map[ModuleId]*Module
	boundaries map[ModuleId]Boundary // keyed by the upstream module id
}

// NewProductionLine builds a line from modules in line order, connected
// by the given boundaries (keyed by each boundary's Upstream module id).
func NewProductionLine(modules []*Module, boundaries []Boundary) (*ProductionLine, error) {
	if len(modules) == 0 {
		return nil, ErrNoModules
	}
	pl := &ProductionLine{
		order:      make([]ModuleId, len(modules)),
		modules:    make(map[ModuleId]*Module, len(modules)),
		boundaries: make(map[ModuleId]Boundary, len(boundaries)),
	}
	for i, m := range modules {
		pl.order[i] = m.ID
		pl.modules[m.ID] = m
	}
	for _, b := range boundaries {
		pl.boundaries[b.Upstream] = b
	}
	return pl, nil
}

// Module looks up a module by id.
func (pl *ProductionLine) Module(id ModuleId) (*Module, error) {
	m, ok := pl.modules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModule, id)
	}
	return m, nil
}

// Modules returns every module in line order.
func (pl *ProductionLine) Modules() []*Module {
	out := make([]*Module, len(pl.order))
	for i, id := range pl.order {
		out[i] = pl.modules[id]
	}
	return out
}

// FirstModuleId returns the line's first module id.
func (pl *ProductionLine) FirstModuleId() ModuleId { return pl.order[0] }

// LastModuleId returns the line's last module id.
func (pl *ProductionLine) LastModuleId() ModuleId { return pl.order[len(pl.order)-1] }

func (pl *ProductionLine) indexOf(id ModuleId) int {
	for i, o := range pl.order {
		if o == id {
			return i
		}
	}
	return -1
}

// HasNextModule reports whether id has a downstream neighbor.
func (pl *ProductionLine) HasNextModule(id ModuleId) bool {
	i := pl.indexOf(id)
	return i >= 0 && i+1 < len(pl.order)
}

// HasPrevModule reports whether id has an upstream neighbor.
func (pl *ProductionLine) HasPrevModule(id ModuleId) bool {
	i := pl.indexOf(id)
	return i > 0
}

// NextModuleId returns id's downstream neighbor.
func (pl *ProductionLine) NextModuleId(id ModuleId) (ModuleId, error) {
	i := pl.indexOf(id)
	if i < 0 || i+1 >= len(pl.order) {
		return 0, fmt.Errorf("%w: %d has no next module", ErrUnknownModule, id)
	}
	return pl.order[i+1], nil
}

// PrevModuleId returns id's upstream neighbor.
func (pl *ProductionLine) PrevModuleId(id ModuleId) (ModuleId, error) {
	i := pl.indexOf(id)
	if i <= 0 {
		return 0, fmt.Errorf("%w: %d has no previous module", ErrUnknownModule, id)
	}
	return pl.order[i-1], nil
}

// BoundaryAfter returns the boundary connecting id to its downstream
// neighbor.
func (pl *ProductionLine) BoundaryAfter(id ModuleId) (Boundary, bool) {
	b, ok := pl.boundaries[id]
	return b, ok
}
