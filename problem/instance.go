// File: instance.go
// Role: The problem model (§3 data model, §4.3): a FORPFSSPSD instance,
// grounded directly on original_source's fms::problem::Instance
// (flow_shop.hpp/.cpp). Holds the raw instance data plus the derived views
// (flow vector, per-machine operation lists, re-entrancy table) computed
// once at construction time, the way the teacher's builder config resolves
// derived fields eagerly rather than lazily.
package problem

import (
	"sort"

	"github.com/tue-ees/forpfsspsd-scheduler/cg"
)

// JobsTime is a per-job delay table, used for absolute due dates.
type JobsTime map[JobId]Delay

// Instance is an immutable-by-convention FORPFSSPSD instance. Fields are
// unexported; callers use the accessor methods below, mirroring the
// teacher's builder-config accessor style.
type Instance struct {
	name string

	jobs           map[JobId][]Operation
	machineMapping map[OperationKey]MachineId

	processingTimes DefaultMap[OperationKey, Delay]
	setupTimes      PairDefaultMap
	setupTimesIndep PairMap
	dueDates        PairMap
	dueDatesIndep   PairMap
	absoluteDueDates JobsTime

	sheetSizes      DefaultMap[OperationKey, uint]
	maximumSheetSize Delay
	maintPolicy     MaintenancePolicy

	shopType   ShopType
	outOfOrder bool

	// Derived, computed once in New.
	flowVector               []OperationId
	machines                 []MachineId
	machineToIndex           map[MachineId]int
	operationsMappedOnMachine map[MachineId][]OperationId
	operationToMachine       map[OperationId]MachineId
	reEntrantMachines        []MachineId
	reEntrantMachineToID     map[MachineId]ReEntrantId
	jobPlexity               map[JobId][]ReEntrancies
	jobToMachineOps          map[JobId]map[MachineId][]Operation
	jobsOutput               []JobId
	jobToOutputPosition      map[JobId]int

	// Dynamically grown during solving.
	extraSetupTimes PairMap
	extraDueDates   PairMap

	// Attached lazily by the builder once the constraint graph for this
	// instance exists; needed by AddExtraSetupTime/AddExtraDueDate.
	graph *cg.Graph

	nextMaintOpID OperationId
}

// Config bundles the constructor arguments for New, mirroring the teacher's
// functional-options-over-a-struct style (builder/options.go) while keeping
// the many required fields of a problem instance explicit rather than
// optional.
type Config struct {
	Name             string
	Jobs             map[JobId][]Operation
	MachineMapping   map[OperationKey]MachineId
	ProcessingTimes  DefaultMap[OperationKey, Delay]
	SetupTimes       PairDefaultMap
	SetupTimesIndep  PairMap
	DueDates         PairMap
	DueDatesIndep    PairMap
	AbsoluteDueDates JobsTime
	SheetSizes       DefaultMap[OperationKey, uint]
	MaximumSheetSize Delay
	MaintPolicy      MaintenancePolicy
	ShopType         ShopType
	OutOfOrder       bool
}

// New builds an Instance from cfg, computing all derived views.
func New(cfg Config) (*Instance, error) {
	if len(cfg.Jobs) == 0 {
		return nil, ErrEmptyJobs
	}
	if cfg.SetupTimesIndep == nil {
		cfg.SetupTimesIndep = PairMap{}
	}
	if cfg.DueDates == nil {
		cfg.DueDates = PairMap{}
	}
	if cfg.DueDatesIndep == nil {
		cfg.DueDatesIndep = PairMap{}
	}
	if cfg.AbsoluteDueDates == nil {
		cfg.AbsoluteDueDates = JobsTime{}
	}

	inst := &Instance{
		name:             cfg.Name,
		jobs:             cfg.Jobs,
		machineMapping:   cfg.MachineMapping,
		processingTimes:  cfg.ProcessingTimes,
		setupTimes:       cfg.SetupTimes,
		setupTimesIndep:  cfg.SetupTimesIndep,
		dueDates:         cfg.DueDates,
		dueDatesIndep:    cfg.DueDatesIndep,
		absoluteDueDates: cfg.AbsoluteDueDates,
		sheetSizes:       cfg.SheetSizes,
		maximumSheetSize: cfg.MaximumSheetSize,
		maintPolicy:      cfg.MaintPolicy,
		shopType:         cfg.ShopType,
		outOfOrder:       cfg.OutOfOrder,
		extraSetupTimes:  PairMap{},
		extraDueDates:    PairMap{},
	}

	inst.computeJobToMachineOps()
	inst.computeJobsOutput()
	inst.computeFlowVector()
	return inst, nil
}

func (inst *Instance) computeJobToMachineOps() {
	inst.jobToMachineOps = make(map[JobId]map[MachineId][]Operation, len(inst.jobs))
	for jobID, ops := range inst.jobs {
		byMachine := make(map[MachineId][]Operation)
		for _, op := range ops {
			m := inst.machineMapping[op.Key()]
			byMachine[m] = append(byMachine[m], op)
		}
		inst.jobToMachineOps[jobID] = byMachine
	}
}

func (inst *Instance) computeJobsOutput() {
	inst.jobsOutput = make([]JobId, 0, len(inst.jobs))
	for jobID := range inst.jobs {
		inst.jobsOutput = append(inst.jobsOutput, jobID)
	}
	sort.Slice(inst.jobsOutput, func(i, j int) bool { return inst.jobsOutput[i] < inst.jobsOutput[j] })

	inst.jobToOutputPosition = make(map[JobId]int, len(inst.jobsOutput))
	for i, jobID := range inst.jobsOutput {
		inst.jobToOutputPosition[jobID] = i
	}
}

func (inst *Instance) computeFlowVector() {
	machineSeen := make(map[MachineId]bool)
	opsOnMachine := make(map[MachineId]map[OperationId]bool)

	for _, jobID := range inst.jobsOutput {
		for _, op := range inst.jobs[jobID] {
			m := inst.machineMapping[op.Key()]
			if !machineSeen[m] {
				machineSeen[m] = true
				inst.machines = append(inst.machines, m)
			}
			if opsOnMachine[m] == nil {
				opsOnMachine[m] = make(map[OperationId]bool)
			}
			opsOnMachine[m][op.Op] = true
		}
	}

	inst.machineToIndex = make(map[MachineId]int, len(inst.machines))
	inst.operationsMappedOnMachine = make(map[MachineId][]OperationId, len(inst.machines))
	inst.operationToMachine = make(map[OperationId]MachineId)
	inst.reEntrantMachineToID = make(map[MachineId]ReEntrantId)

	for i, m := range inst.machines {
		inst.machineToIndex[m] = i

		ordered := make([]OperationId, 0, len(opsOnMachine[m]))
		for opID := range opsOnMachine[m] {
			ordered = append(ordered, opID)
		}
		sort.Slice(ordered, func(a, b int) bool { return ordered[a] < ordered[b] })

		inst.operationsMappedOnMachine[m] = ordered
		inst.flowVector = append(inst.flowVector, ordered...)
		for _, opID := range ordered {
			inst.operationToMachine[opID] = m
		}

		if len(ordered) > 1 {
			inst.reEntrantMachineToID[m] = ReEntrantId(len(inst.reEntrantMachines))
			inst.reEntrantMachines = append(inst.reEntrantMachines, m)
		}
	}

	inst.jobPlexity = make(map[JobId][]ReEntrancies, len(inst.jobs))
	for jobID, ops := range inst.jobs {
		if len(inst.reEntrantMachines) == 0 {
			continue
		}
		counts := make([]ReEntrancies, len(inst.reEntrantMachines))
		for _, op := range ops {
			m := inst.machineMapping[op.Key()]
			if rid, ok := inst.reEntrantMachineToID[m]; ok {
				counts[rid]++
			}
		}
		inst.jobPlexity[jobID] = counts
	}
}

// AttachGraph binds the constraint graph this instance was built into,
// enabling AddExtraSetupTime/AddExtraDueDate to keep the graph in sync.
func (inst *Instance) AttachGraph(g *cg.Graph) { inst.graph = g }

// Graph returns the attached constraint graph, or nil if none has been
// attached yet.
func (inst *Instance) Graph() *cg.Graph { return inst.graph }

// Name returns the problem's name.
func (inst *Instance) Name() string { return inst.name }

// Jobs returns every job's operation sequence.
func (inst *Instance) Jobs() map[JobId][]Operation { return inst.jobs }

// JobOperations returns the operation sequence for a single job.
func (inst *Instance) JobOperations(job JobId) ([]Operation, error) {
	ops, ok := inst.jobs[job]
	if !ok {
		return nil, ErrUnknownJob
	}
	return ops, nil
}

// NumberOfJobs returns the number of jobs in the instance.
func (inst *Instance) NumberOfJobs() int { return len(inst.jobs) }

// IsValid reports whether op is mapped to a machine (i.e. is a real
// operation, not a source/sink/maintenance placeholder).
func (inst *Instance) IsValid(op Operation) bool {
	_, ok := inst.machineMapping[op.Key()]
	return ok
}

// Machine returns the machine an operation is mapped to.
func (inst *Instance) Machine(op Operation) (MachineId, error) {
	m, ok := inst.machineMapping[op.Key()]
	if !ok {
		return 0, ErrUnknownOperation
	}
	return m, nil
}

// ProcessingTime returns the processing time of op.
func (inst *Instance) ProcessingTime(op Operation) Delay {
	return inst.processingTimes.Get(op.Key())
}

// SetupTimesIndep returns the sequence-independent setup-time table, for
// builders that need to iterate every declared entry.
func (inst *Instance) SetupTimesIndep() PairMap { return inst.setupTimesIndep }

// DueDatesIndep returns the sequence-independent due-date table.
func (inst *Instance) DueDatesIndep() PairMap { return inst.dueDatesIndep }

// AbsoluteDueDates returns the per-job absolute due-date table.
func (inst *Instance) AbsoluteDueDates() JobsTime { return inst.absoluteDueDates }

// SetupTime returns the setup time to go from op1 to op2, mirroring
// Instance::getSetupTime: sequence-dependent time only applies when both
// operations are real and share a machine; sequence-independent and extra
// setup times apply regardless and take precedence via max.
func (inst *Instance) SetupTime(op1, op2 Operation) Delay {
	var setup Delay
	if inst.IsValid(op1) && inst.IsValid(op2) {
		m1, _ := inst.Machine(op1)
		m2, _ := inst.Machine(op2)
		if m1 == m2 {
			setup = inst.setupTimes.Get(PairKey{Src: op1.Key(), Dst: op2.Key()})
		}
	}
	if v, ok := inst.setupTimesIndep.Lookup(op1.Key(), op2.Key()); ok && v > setup {
		setup = v
	}
	if v, ok := inst.extraSetupTimes.Lookup(op1.Key(), op2.Key()); ok {
		if v > setup {
			return v
		}
		return setup
	}
	return setup
}

// Query returns the minimum delay that must elapse between the start of src
// and the start of dst: src's own duration (processing time, or maintenance
// duration if src is a maintenance operation) plus the setup time to
// transition into dst.
func (inst *Instance) Query(src, dst Operation) Delay {
	if src.IsMaintenance() {
		return inst.maintPolicy.DurationForOp(src)
	}
	return inst.ProcessingTime(src) + inst.SetupTime(src, dst)
}

// QueryDueDate returns the tightest deadline known between src and dst
// across the explicit, sequence-independent, and dynamically-added due date
// tables, or false if none apply.
func (inst *Instance) QueryDueDate(src, dst Operation) (Delay, bool) {
	var (
		min   Delay
		found bool
	)
	consider := func(v Delay, ok bool) {
		if !ok {
			return
		}
		if !found || v < min {
			min = v
		}
		found = true
	}
	consider(inst.dueDates.Lookup(src.Key(), dst.Key()))
	consider(inst.dueDatesIndep.Lookup(src.Key(), dst.Key()))
	consider(inst.extraDueDates.Lookup(src.Key(), dst.Key()))
	return min, found
}

// AbsoluteDueDate returns the absolute deadline for job, if any.
func (inst *Instance) AbsoluteDueDate(job JobId) (Delay, bool) {
	v, ok := inst.absoluteDueDates[job]
	return v, ok
}

// SheetSize returns the sheet size class of op.
func (inst *Instance) SheetSize(op Operation) uint { return inst.sheetSizes.Get(op.Key()) }

// MaximumSheetSize returns the instance's maximum sheet size.
func (inst *Instance) MaximumSheetSize() Delay { return inst.maximumSheetSize }

// UniqueSheetSizes returns the set of distinct sheet sizes among the first
// operation of every job, from startJob (an index into the output order)
// onward.
func (inst *Instance) UniqueSheetSizes(startJob int) map[uint]struct{} {
	out := make(map[uint]struct{})
	for i := startJob; i < len(inst.jobsOutput); i++ {
		job := inst.jobsOutput[i]
		out[inst.SheetSize(cg.NewOperation(job, 0))] = struct{}{}
	}
	return out
}

// MaintenancePolicy returns the instance's maintenance policy.
func (inst *Instance) MaintenancePolicy() MaintenancePolicy { return inst.maintPolicy }

// SetMaintenancePolicy replaces the instance's maintenance policy.
func (inst *Instance) SetMaintenancePolicy(p MaintenancePolicy) { inst.maintPolicy = p }

// ShopType returns whether this is a fixed-order or job-shop instance.
func (inst *Instance) ShopType() ShopType { return inst.shopType }

// IsOutOfOrder reports whether operations may be processed out of the input
// order (true for mixed-plexity instances).
func (inst *Instance) IsOutOfOrder() bool { return inst.outOfOrder }

// Machines returns the machines in flow order.
func (inst *Instance) Machines() []MachineId { return inst.machines }

// NumberOfMachines returns the number of distinct machines.
func (inst *Instance) NumberOfMachines() int { return len(inst.machines) }

// MachineOrder returns the position of m within the flow order.
func (inst *Instance) MachineOrder(m MachineId) (int, bool) {
	i, ok := inst.machineToIndex[m]
	return i, ok
}

// FlowVector returns the operation ids grouped by machine, machines in flow
// order and ids ascending within each machine (so a re-entrant machine's
// later passes appear before the machines visited in between).
func (inst *Instance) FlowVector() []OperationId { return inst.flowVector }

// NumberOfOperationsPerJob returns len(FlowVector()).
func (inst *Instance) NumberOfOperationsPerJob() int { return len(inst.flowVector) }

// MachineOperations returns the operation ids mapped onto a machine, in
// order. More than one entry means the machine is re-entrant.
func (inst *Instance) MachineOperations(m MachineId) []OperationId {
	return inst.operationsMappedOnMachine[m]
}

// OperationMachine returns the machine an operation id is mapped to,
// assuming a uniform flow structure across jobs.
func (inst *Instance) OperationMachine(op OperationId) (MachineId, bool) {
	m, ok := inst.operationToMachine[op]
	return m, ok
}

// JobsOutput returns the job ids in fixed output order.
func (inst *Instance) JobsOutput() []JobId { return inst.jobsOutput }

// JobAtOutputPosition returns the job scheduled at a given output slot.
func (inst *Instance) JobAtOutputPosition(pos int) JobId { return inst.jobsOutput[pos] }

// JobOutputPosition returns a job's position in the output order.
func (inst *Instance) JobOutputPosition(job JobId) (int, bool) {
	pos, ok := inst.jobToOutputPosition[job]
	return pos, ok
}

// ReEntrantMachines returns the machines that are re-entrant, in flow order.
func (inst *Instance) ReEntrantMachines() []MachineId { return inst.reEntrantMachines }

// IsReEntrantMachine reports whether m is visited more than once per job.
func (inst *Instance) IsReEntrantMachine(m MachineId) bool {
	_, ok := inst.reEntrantMachineToID[m]
	return ok
}

// IsReEntrantOp reports whether op sits on a re-entrant machine.
func (inst *Instance) IsReEntrantOp(op Operation) bool {
	m, err := inst.Machine(op)
	return err == nil && inst.IsReEntrantMachine(m)
}

// ReEntrantMachineID returns the machine backing a re-entrant id.
func (inst *Instance) ReEntrantMachineID(r ReEntrantId) MachineId {
	return inst.reEntrantMachines[int(r)]
}

// FindMachineReEntrantID returns the re-entrant id of a machine.
func (inst *Instance) FindMachineReEntrantID(m MachineId) (ReEntrantId, bool) {
	r, ok := inst.reEntrantMachineToID[m]
	return r, ok
}

// FirstReEntrantID returns the id of the first re-entrant machine in flow
// order, if any.
func (inst *Instance) FirstReEntrantID() (ReEntrantId, bool) {
	if len(inst.reEntrantMachines) == 0 {
		return 0, false
	}
	r := inst.reEntrantMachineToID[inst.reEntrantMachines[0]]
	return r, true
}

// MachineMaxReEntrancies returns how many operations of a single job a
// re-entrant machine can host at most (the number of distinct operation ids
// mapped onto it).
func (inst *Instance) MachineMaxReEntrancies(m MachineId) ReEntrancies {
	return ReEntrancies(len(inst.operationsMappedOnMachine[m]))
}

// ReEntrancies returns how many times job visits the machine identified by
// reentrancy. Jobs with no explicit plexity entry default to the machine's
// maximum (every job visits a re-entrant machine the same number of times
// unless told otherwise).
func (inst *Instance) ReEntrancies(job JobId, reentrancy ReEntrantId) ReEntrancies {
	if counts, ok := inst.jobPlexity[job]; ok && int(reentrancy) < len(counts) {
		return counts[reentrancy]
	}
	return inst.MachineMaxReEntrancies(inst.ReEntrantMachineID(reentrancy))
}

// ReEntranciesForOp returns the re-entrancy count of op's job on op's
// machine, or 1 if the machine is not re-entrant.
func (inst *Instance) ReEntranciesForOp(op Operation) ReEntrancies {
	m, err := inst.Machine(op)
	if err != nil {
		return 1
	}
	rid, ok := inst.reEntrantMachineToID[m]
	if !ok {
		return 1
	}
	return inst.ReEntrancies(op.Job, rid)
}

// JobOperationsOnMachine returns the operations job performs on machine, in
// job order.
func (inst *Instance) JobOperationsOnMachine(job JobId, machine MachineId) []Operation {
	byMachine, ok := inst.jobToMachineOps[job]
	if !ok {
		return nil
	}
	return byMachine[machine]
}

// AddMaintenanceOperation mints a fresh, unique maintenance operation of the
// given type. The operation is not added to any job; callers insert it into
// the constraint graph directly.
func (inst *Instance) AddMaintenanceOperation(maintType MaintTypeId) Operation {
	op := cg.NewMaintenanceOperation(inst.nextMaintOpID, maintType)
	inst.nextMaintOpID++
	return op
}

// AddExtraSetupTime records a dynamically discovered setup time between src
// and dst, keeping the larger of any prior extra value and value, and
// updates the attached constraint graph's edge weight to match (Query
// already folds the extra table into its result).
func (inst *Instance) AddExtraSetupTime(src, dst Operation, value Delay) error {
	inst.extraSetupTimes.InsertMax(src.Key(), dst.Key(), value)
	if inst.graph == nil {
		return ErrNoGraph
	}
	vSrc, err := inst.graph.GetVertex(src)
	if err != nil {
		return err
	}
	vDst, err := inst.graph.GetVertex(dst)
	if err != nil {
		return err
	}
	_, err = inst.graph.AddOrUpdateEdge(vSrc, vDst, inst.Query(src, dst))
	return err
}

// AddExtraDueDate records a dynamically discovered due date between src and
// dst, tightening it against any prior extra value, and updates the
// attached constraint graph's reverse edge accordingly.
func (inst *Instance) AddExtraDueDate(src, dst Operation, value Delay) error {
	inst.extraDueDates.InsertMin(src.Key(), dst.Key(), value)
	if inst.graph == nil {
		return ErrNoGraph
	}
	vSrc, err := inst.graph.GetVertex(src)
	if err != nil {
		return err
	}
	vDst, err := inst.graph.GetVertex(dst)
	if err != nil {
		return err
	}
	if inst.graph.HasEdge(vSrc, vDst) {
		w, err := inst.graph.GetWeight(vSrc, vDst)
		if err != nil {
			return err
		}
		if -w < value {
			value = -w
		}
	}
	_, err = inst.graph.AddOrUpdateEdge(vSrc, vDst, -value)
	return err
}
