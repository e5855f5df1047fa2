package ltlfdfa

import "sort"

// VariableDict maps atomic-proposition names to stable Boolean-variable
// indices (spec.md §6, "A variable dictionary"). It may be pre-populated
// (from a partition) or grown lazily as new atoms are discovered during
// translation.
type VariableDict struct {
	nameToIndex map[string]int32
	names       []string
}

// NewVariableDict creates an empty dictionary; atoms are assigned indices
// in first-declared order.
func NewVariableDict() *VariableDict {
	return &VariableDict{nameToIndex: make(map[string]int32)}
}

// NewVariableDictFromPartition pre-populates a dictionary from an
// input/output partition (spec.md §6). Mealy semantics place inputs above
// (lower index, decided first); Moore semantics reverse the order.
func NewVariableDictFromPartition(inputs, outputs []string, moore bool) *VariableDict {
	d := NewVariableDict()
	first, second := inputs, outputs
	if moore {
		first, second = outputs, inputs
	}
	for _, n := range first {
		d.Declare(n)
	}
	for _, n := range second {
		d.Declare(n)
	}
	return d
}

// Declare returns the index for name, assigning a fresh one if this is
// the first time name is seen.
func (d *VariableDict) Declare(name string) int32 {
	if i, ok := d.nameToIndex[name]; ok {
		return i
	}
	i := int32(len(d.names))
	d.nameToIndex[name] = i
	d.names = append(d.names, name)
	return i
}

// Index returns the index of a previously declared name.
func (d *VariableDict) Index(name string) (int32, bool) {
	i, ok := d.nameToIndex[name]
	return i, ok
}

// Name returns the atomic-proposition name at index i.
func (d *VariableDict) Name(i int32) string { return d.names[i] }

// Len returns the number of declared variables.
func (d *VariableDict) Len() int { return len(d.names) }

// Names returns the declared atom names sorted by their assigned index.
func (d *VariableDict) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Compatible reports whether two dictionaries agree on every name they
// both declare, with the same index (spec.md §6,
// "DictionaryMismatch"). Dictionaries of different lengths are still
// compatible as long as every name they share has the same index.
// Product (product.go) runs the same check on AP lists through
// apsCompatible, and composes lists of different lengths.
func (d *VariableDict) Compatible(other *VariableDict) bool {
	for name, idx := range d.nameToIndex {
		if oidx, ok := other.nameToIndex[name]; ok && oidx != idx {
			return false
		}
	}
	return true
}

func sortedNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}
