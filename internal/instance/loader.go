// File: loader.go
// Role: turns the XML document shapes in xml.go into problem.Config/
// problem.Instance/modular.ProductionLine values and attaches each
// instance's constraint graph via cgbuilder.Build, grounded on
// original_source's SingleFlowShopParser::extractInformation and
// FORPFSSPSDXmlParser::createFlowShop/createProductionLine (same
// load-then-build-graph two-step).
package instance

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"

	"github.com/tue-ees/forpfsspsd-scheduler/cgbuilder"
	"github.com/tue-ees/forpfsspsd-scheduler/modular"
	"github.com/tue-ees/forpfsspsd-scheduler/problem"
)

// LoadShop reads a single-shop §6.2 XML instance file and builds its
// constraint graph, ready for any solve.Solve call. warnings reports any
// <jobPlexity> assertion that disagrees with the plexity problem.Instance
// derives on its own from the flow vector (see DESIGN.md's internal/
// instance entry for why this is validation-only).
func LoadShop(path string, shopType problem.ShopType) (inst *problem.Instance, warnings []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("instance: read %s: %w", path, err)
	}
	var doc spInstanceXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("instance: parse %s: %w", path, err)
	}
	inst, err = buildInstance(path, doc, shopType)
	if err != nil {
		return nil, nil, err
	}
	return inst, validateJobPlexity(inst, doc), nil
}

// LoadModular reads a <modular> §6.2 XML file into a fully-graphed
// ProductionLine, one module per <module> entry in file order, connected
// by the boundaries <transferPoints> describes.
func LoadModular(path string, shopType problem.ShopType) (line *modular.ProductionLine, warnings []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("instance: read %s: %w", path, err)
	}
	var doc modularXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("instance: parse %s: %w", path, err)
	}

	modules := make([]*modular.Module, 0, len(doc.Modules.Modules))
	for _, m := range doc.Modules.Modules {
		inst, err := buildInstance(path, m.Instance, shopType)
		if err != nil {
			return nil, nil, fmt.Errorf("instance: module %d: %w", m.ID, err)
		}
		modules = append(modules, modular.NewModule(modular.ModuleId(m.ID), inst))
		for _, w := range validateJobPlexity(inst, m.Instance) {
			warnings = append(warnings, fmt.Sprintf("module %d: %s", m.ID, w))
		}
	}

	boundaries := make([]modular.Boundary, 0, len(doc.TransferPoints.Transfers))
	for _, tp := range doc.TransferPoints.Transfers {
		boundary := modular.Boundary{
			Upstream:   modular.ModuleId(tp.Upstream),
			Downstream: modular.ModuleId(tp.Downstream),
			Transfer: modular.TransferPoint{
				SetupTime: make(map[problem.JobId]problem.Delay, len(tp.Setups)),
				DueDate:   make(map[problem.JobId]problem.Delay, len(tp.DueDates)),
			},
		}
		for _, s := range tp.Setups {
			boundary.Transfer.SetupTime[problem.JobId(s.Job)] = s.Value
		}
		for _, d := range tp.DueDates {
			boundary.Transfer.DueDate[problem.JobId(d.Job)] = d.Value
		}
		boundaries = append(boundaries, boundary)
	}

	pl, err := modular.NewProductionLine(modules, boundaries)
	if err != nil {
		return nil, nil, fmt.Errorf("instance: %s: %w", path, err)
	}
	return pl, warnings, nil
}

// LoadMaintenancePolicy reads an optional §6.2 <maintPolicy> file.
func LoadMaintenancePolicy(path string) (problem.MaintenancePolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return problem.MaintenancePolicy{}, fmt.Errorf("instance: read %s: %w", path, err)
	}
	var doc maintPolicyXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return problem.MaintenancePolicy{}, fmt.Errorf("instance: parse %s: %w", path, err)
	}

	policy := problem.NewMaintenancePolicy(
		doc.NumberOfTypes.Value,
		doc.MinimumIdle.Value,
		doc.MaintProcTimes.Default,
		doc.Thresholds.DefaultMin,
		doc.Thresholds.DefaultMax,
	)
	for _, e := range doc.MaintProcTimes.Entries {
		policy.SetDuration(problem.MaintTypeId(e.ID), e.Value)
	}
	for _, e := range doc.Thresholds.Entries {
		policy.SetThresholds(problem.MaintTypeId(e.ID), e.Min, e.Max)
	}
	return policy, nil
}

// buildInstance turns one <SPInstance> document into a graphed
// problem.Instance.
func buildInstance(path string, doc spInstanceXML, shopType problem.ShopType) (*problem.Instance, error) {
	cfg, err := buildConfig(doc, shopType)
	if err != nil {
		return nil, err
	}
	inst, err := problem.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("instance: %s: %w", path, err)
	}
	if _, err := cgbuilder.Build(inst); err != nil {
		return nil, fmt.Errorf("instance: %s: build graph: %w", path, err)
	}
	return inst, nil
}

func buildConfig(doc spInstanceXML, shopType problem.ShopType) (problem.Config, error) {
	jobOps := make(map[problem.JobId][]componentXML)
	for _, c := range doc.FlowVector.Components {
		job := problem.JobId(c.Job)
		jobOps[job] = append(jobOps[job], c)
	}
	if len(jobOps) == 0 {
		return problem.Config{}, ErrNoJobs
	}

	jobs := make(map[problem.JobId][]problem.Operation, len(jobOps))
	machineMapping := make(map[problem.OperationKey]problem.MachineId, len(doc.FlowVector.Components))
	for job, comps := range jobOps {
		sort.Slice(comps, func(i, j int) bool { return comps[i].Index < comps[j].Index })
		ops := make([]problem.Operation, len(comps))
		for i, c := range comps {
			op := problem.NewOperation(job, problem.OperationId(i))
			ops[i] = op
			machineMapping[op.Key()] = problem.MachineId(c.Value)
		}
		jobs[job] = ops
	}

	processing := problem.NewDefaultMap[problem.OperationKey, problem.Delay](doc.ProcessingTimes.Default)
	for _, e := range doc.ProcessingTimes.Entries {
		processing.Set(problem.NewOperation(problem.JobId(e.Job), problem.OperationId(e.Op)).Key(), e.Value)
	}

	sizes := problem.NewDefaultMap[problem.OperationKey, uint](doc.Sizes.Default)
	for _, e := range doc.Sizes.Entries {
		sizes.Set(problem.NewOperation(problem.JobId(e.Job), problem.OperationId(e.Op)).Key(), e.Value)
	}

	var setupTimes problem.PairDefaultMap
	if doc.SetupTimes != nil {
		setupTimes = problem.NewPairDefaultMap(doc.SetupTimes.Default)
		for _, e := range doc.SetupTimes.Entries {
			src := problem.NewOperation(problem.JobId(e.Job1), problem.OperationId(e.Op1)).Key()
			dst := problem.NewOperation(problem.JobId(e.Job2), problem.OperationId(e.Op2)).Key()
			setupTimes.Set(problem.PairKey{Src: src, Dst: dst}, e.Value)
		}
	} else {
		setupTimes = problem.NewPairDefaultMap(0)
	}

	setupTimesIndep := problem.PairMap{}
	if doc.SetupTimesIndep != nil {
		setPairEntries(setupTimesIndep, doc.SetupTimesIndep.Entries)
	}

	dueDates := problem.PairMap{}
	if doc.RelativeDueDates != nil {
		setPairEntries(dueDates, doc.RelativeDueDates.Entries)
	}

	dueDatesIndep := problem.PairMap{}
	if doc.RelativeDueDatesIndep != nil {
		setPairEntries(dueDatesIndep, doc.RelativeDueDatesIndep.Entries)
	}

	return problem.Config{
		Name:             fmt.Sprintf("%s/%d-jobs", doc.Type, len(jobs)),
		Jobs:             jobs,
		MachineMapping:   machineMapping,
		ProcessingTimes:  processing,
		SetupTimes:       setupTimes,
		SetupTimesIndep:  setupTimesIndep,
		DueDates:         dueDates,
		DueDatesIndep:    dueDatesIndep,
		SheetSizes:       sizes,
		MaximumSheetSize: doc.Sizes.Maximum,
		ShopType:         shopType,
	}, nil
}

// validateJobPlexity cross-checks doc's <jobPlexity> assertions, if any,
// against the plexity inst derived for itself from the flow vector.
// problem.Config has no field to inject an explicit plexity override, so
// this never changes inst — it only surfaces disagreements for the CLI to
// log.
func validateJobPlexity(inst *problem.Instance, doc spInstanceXML) []string {
	if doc.JobPlexity == nil {
		return nil
	}
	var warnings []string
	for _, e := range doc.JobPlexity.Entries {
		want := parsePlexity(e.Type)
		got := inst.ReEntrancies(problem.JobId(e.Job), problem.ReEntrantId(e.ID))
		if got != want {
			warnings = append(warnings, fmt.Sprintf(
				"jobPlexity: job %d reentrant machine %d: XML asserts %s (%d), derived %d",
				e.Job, e.ID, e.Type, want, got))
		}
	}
	return warnings
}

func parsePlexity(t string) problem.ReEntrancies {
	if t == "Duplex" || t == "duplex" {
		return problem.Duplex
	}
	return problem.Simplex
}

func setPairEntries(m problem.PairMap, entries []pairEntryXML) {
	for _, e := range entries {
		src := problem.NewOperation(problem.JobId(e.Job1), problem.OperationId(e.Op1)).Key()
		dst := problem.NewOperation(problem.JobId(e.Job2), problem.OperationId(e.Op2)).Key()
		m.Set(src, dst, e.Value)
	}
}
