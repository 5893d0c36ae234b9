// File: api.go
// Role: Single dispatch entry point selecting the right builder for an
// instance's shop type, mirroring the teacher's one-orchestrator
// convention (builder.BuildGraph) and original_source's cg::Builder::build.
package cgbuilder

import (
	"fmt"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// Build constructs the constraint graph appropriate for inst's shop type,
// attaching the result to inst so later AddExtraSetupTime/AddExtraDueDate
// calls keep it in sync.
func Build(inst *problem.Instance, opts ...Option) (*cg.Graph, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}

	var (
		g   *cg.Graph
		err error
	)
	switch inst.ShopType() {
	case problem.ShopFixedOrder:
		g, err = FixedOrder(inst, opts...)
	case problem.ShopJobShop:
		g, err = JobShop(inst, opts...)
	default:
		return nil, fmt.Errorf("cgbuilder.Build: shop type %v: %w", inst.ShopType(), ErrUnknownShopType)
	}
	if err != nil {
		return nil, err
	}
	inst.AttachGraph(g)
	return g, nil
}
