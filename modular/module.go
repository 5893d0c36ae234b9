// File: module.go
// Role: a single module in a production line (§4.10), grounded on
// original_source's fms::problem::Module (include/fms/problem/
// module.hpp): wraps one problem instance plus the input/output bounds
// accumulated across propagation rounds, and knows how to translate a
// received IntervalSpec into extra graph edges on its own constraint
// graph (the spec's own u→v weight-w convention: start(v) ≥ start(u)+w
// for a minimum separation, and the −maxSep due-date edge for a maximum
// one).
package modular

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Module is one stage of a ProductionLine.
type Module struct {
	ID       ModuleId
	Instance *problem.Instance

	InputBounds  IntervalSpec
	OutputBounds IntervalSpec
}

// NewModule wraps inst as module id.
func NewModule(id ModuleId, inst *problem.Instance) *Module {
	return &Module{ID: id, Instance: inst, InputBounds: IntervalSpec{}, OutputBounds: IntervalSpec{}}
}

// boundaryVertex returns the vertex id of job's first operation (the
// input boundary) or last operation (the output boundary).
func (m *Module) boundaryVertex(job problem.JobId, side BoundsSide) (cg.VertexId, error) {
	ops, err := m.Instance.JobOperations(job)
	if err != nil {
		return 0, err
	}
	if len(ops) == 0 {
		return 0, fmt.Errorf("modular: module %d job %d has no operations", m.ID, job)
	}
	g := m.Instance.Graph()
	if g == nil {
		return 0, fmt.Errorf("modular: module %d has no graph", m.ID)
	}
	op := ops[0]
	if side == Output {
		op = ops[len(ops)-1]
	}
	return g.GetVertex(op)
}

// addBounds wires spec's separation constraints directly onto m's
// constraint graph as extra edges between the two jobs' boundary
// vertices, following spec.md §3's own "semantic meaning of weight"
// encoding: a minimum separation becomes a forward edge of that weight,
// a maximum separation becomes a reverse edge of negative weight.
func (m *Module) addBounds(spec IntervalSpec, side BoundsSide) error {
	g := m.Instance.Graph()
	if g == nil {
		return fmt.Errorf("modular: module %d has no graph", m.ID)
	}
	for pair, interval := range spec {
		a, err := m.boundaryVertex(pair.First, side)
		if err != nil {
			continue
		}
		b, err := m.boundaryVertex(pair.Second, side)
		if err != nil {
			continue
		}
		if interval.MinSep != nil {
			if err := g.AddEdge(a, b, *interval.MinSep); err != nil {
				return err
			}
		}
		if interval.MaxSep != nil {
			if err := g.AddEdge(b, a, -*interval.MaxSep); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddInputBounds merges spec into m.InputBounds and wires it onto m's
// input boundary vertices.
func (m *Module) AddInputBounds(spec IntervalSpec) error {
	for k, v := range spec {
		m.InputBounds[k] = v
	}
	return m.addBounds(spec, Input)
}

// AddOutputBounds merges spec into m.OutputBounds and wires it onto m's
// output boundary vertices.
func (m *Module) AddOutputBounds(spec IntervalSpec) error {
	for k, v := range spec {
		m.OutputBounds[k] = v
	}
	return m.addBounds(spec, Output)
}
