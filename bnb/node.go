// File: node.go
// Role: BranchBoundNode (§4.7), grounded on original_source's
// fms::solvers::branch_bound::BranchBoundNode (include/fms/solvers/
// branch_bound.hpp, src/solvers/branch_bound.cpp): a node bundles a
// partial solution with its lower bound, its makespan recomputed over the
// full graph, and the next operation eligible for insertion.
package bnb

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/heuristics"
	"github.com/tue-ees/forpfsspsd-scheduler/partial"
	"github.com/tue-ees/forpfsspsd-scheduler/paths"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Node is a branch-and-bound search node: a candidate partial solution
// together with the scalars the search orders and prunes on.
type Node struct {
	Solution       *partial.Solution
	LowerBound     problem.Delay
	Makespan       problem.Delay
	LastInsertedOp problem.Operation
}

// allVertices returns every vertex id in g, the "whole window" the
// original recomputes ASAPST over when scoring a node.
func allVertices(g *cg.Graph) []cg.VertexId {
	ids := make([]cg.VertexId, g.NumVertices())
	for i := range ids {
		ids[i] = cg.VertexId(i)
	}
	return ids
}

// newNode builds a Node from sol, recomputing ASAPST over the whole graph
// from sol's committed and inferred edges (mirroring
// BranchBoundNode::getASAPST) and taking the node's lower bound as
// max(current makespan, trivialLowerBound).
func newNode(inst *problem.Instance, g *cg.Graph, sol *partial.Solution, reentrant problem.MachineId, trivialLowerBound problem.Delay) (*Node, error) {
	edges, err := sol.GetAllAndInferredEdges(inst)
	if err != nil {
		return nil, err
	}
	times := paths.InitializeASAPST(g, nil, true)
	result, err := heuristics.ValidateInterleaving(inst, g, edges, times, nil, allVertices(g))
	if err != nil {
		return nil, err
	}
	if result.HasPositiveCycle() {
		return nil, fmt.Errorf("%w", ErrInfeasibleNode)
	}
	sol.SetASAPST(times)

	makespan, err := sol.RealMakespan(inst)
	if err != nil {
		return nil, err
	}

	lastInsertedOp, err := sol.FirstPossibleOp(reentrant)
	if err != nil {
		// the terminal node (every operation committed) has no further
		// feasible insertion point; fall back to the latest-inserted op.
		lastInsertedOp, err = sol.LatestOp(reentrant)
		if err != nil {
			return nil, err
		}
	}

	lowerBound := makespan
	if trivialLowerBound > lowerBound {
		lowerBound = trivialLowerBound
	}

	return &Node{
		Solution:       sol,
		LowerBound:     lowerBound,
		Makespan:       makespan,
		LastInsertedOp: lastInsertedOp,
	}, nil
}
