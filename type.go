package wasp

// Limits bounds a table or memory. Max is absent when the flags byte
// declares min-only. Shared is set by the threads proposal's shared
// memory flag variants.
type Limits struct {
	Min    uint32
	Max    *uint32
	Shared Shared
}

// MemArg is the alignment/offset immediate carried by every memory
// access instruction.
type MemArg struct {
	AlignLog2 uint32
	Offset    uint32
}

// FunctionType is a `0x60`-tagged vector of parameter types followed by
// a vector of result types. Multiple results require multi_value.
type FunctionType struct {
	Params  []ValueType
	Results []ValueType
}

func (t *FunctionType) Equal(other *FunctionType) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.Params) != len(other.Params) || len(t.Results) != len(other.Results) {
		return false
	}
	for i, p := range t.Params {
		if p != other.Params[i] {
			return false
		}
	}
	for i, r := range t.Results {
		if r != other.Results[i] {
			return false
		}
	}
	return true
}

// TableType is a table's element type plus its size limits.
type TableType struct {
	ElementType RefType
	Limits      Limits
}

// MemoryType is a memory's page-count limits.
type MemoryType struct {
	Limits Limits
}

// GlobalType is a global's value type plus its mutability.
type GlobalType struct {
	ValueType  ValueType
	Mutability Mutability
}
