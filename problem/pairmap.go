// File: pairmap.go
// Role: The no-default counterpart of PairDefaultMap (original_source's
// TimeBetweenOps): a sparse (Operation, Operation) -> Delay table with no
// fallback, used for due dates, sequence-independent setup times, and the
// dynamically grown extra-setup/extra-due-date tables.
package problem

// PairMap is a sparse (src, dst) -> Delay table with no default value.
type PairMap map[PairKey]Delay

// Lookup returns the value for (src, dst) and whether it was set.
func (m PairMap) Lookup(src, dst OperationKey) (Delay, bool) {
	v, ok := m[PairKey{Src: src, Dst: dst}]
	return v, ok
}

// Set stores an explicit value for (src, dst), overwriting any prior entry.
func (m PairMap) Set(src, dst OperationKey, v Delay) {
	m[PairKey{Src: src, Dst: dst}] = v
}

// InsertMax stores v for (src, dst), keeping the larger value if one already
// exists. Used by AddExtraSetupTime, which only ever raises a setup time.
func (m PairMap) InsertMax(src, dst OperationKey, v Delay) {
	if cur, ok := m.Lookup(src, dst); ok && cur > v {
		return
	}
	m.Set(src, dst, v)
}

// InsertMin stores v for (src, dst), keeping the smaller value if one
// already exists. Used by AddExtraDueDate, which only ever tightens a
// deadline.
func (m PairMap) InsertMin(src, dst OperationKey, v Delay) {
	if cur, ok := m.Lookup(src, dst); ok && cur < v {
		return
	}
	m.Set(src, dst, v)
}
