package wasp

import "fmt"

// Features selects which post-MVP Wasm proposals are recognized by the
// decoders and encoders in this module. The MVP (1.0) feature set is
// always enabled; every other field independently gates a proposal.
//
// Modeled on the fluent WithFeatureX(enabled bool) builder pattern over
// a feature bitmask (see tetratelabs-wazero's config.go and its
// enabledFeatures.Require(wasm.FeatureX) call sites), but kept as a
// plain struct of bools rather than a bitmask: there is no hot path
// here that needs bitwise tests, and a struct lets zero-value Features{}
// mean "MVP only" without an explicit constructor.
type Features struct {
	Exceptions            bool
	MutableGlobals         bool
	SaturatingFloatToInt  bool
	SignExtension          bool
	SIMD                   bool
	Threads                bool
	BulkMemory             bool
	ReferenceTypes         bool
	MultiValue             bool
	TailCall               bool
}

// WithExceptions returns a copy of f with Exceptions set.
func (f Features) WithExceptions(enabled bool) Features { f.Exceptions = enabled; return f }

// WithMutableGlobals returns a copy of f with MutableGlobals set.
func (f Features) WithMutableGlobals(enabled bool) Features { f.MutableGlobals = enabled; return f }

// WithSaturatingFloatToInt returns a copy of f with SaturatingFloatToInt set.
func (f Features) WithSaturatingFloatToInt(enabled bool) Features {
	f.SaturatingFloatToInt = enabled
	return f
}

// WithSignExtension returns a copy of f with SignExtension set.
func (f Features) WithSignExtension(enabled bool) Features { f.SignExtension = enabled; return f }

// WithSIMD returns a copy of f with SIMD set.
func (f Features) WithSIMD(enabled bool) Features { f.SIMD = enabled; return f }

// WithThreads returns a copy of f with Threads set.
func (f Features) WithThreads(enabled bool) Features { f.Threads = enabled; return f }

// WithBulkMemory returns a copy of f with BulkMemory set.
func (f Features) WithBulkMemory(enabled bool) Features { f.BulkMemory = enabled; return f }

// WithReferenceTypes returns a copy of f with ReferenceTypes set.
func (f Features) WithReferenceTypes(enabled bool) Features { f.ReferenceTypes = enabled; return f }

// WithMultiValue returns a copy of f with MultiValue set.
func (f Features) WithMultiValue(enabled bool) Features { f.MultiValue = enabled; return f }

// WithTailCall returns a copy of f with TailCall set.
func (f Features) WithTailCall(enabled bool) Features { f.TailCall = enabled; return f }

// All returns a Features value with every post-MVP proposal enabled.
func All() Features {
	return Features{
		Exceptions:           true,
		MutableGlobals:       true,
		SaturatingFloatToInt: true,
		SignExtension:        true,
		SIMD:                 true,
		Threads:              true,
		BulkMemory:           true,
		ReferenceTypes:       true,
		MultiValue:           true,
		TailCall:             true,
	}
}

// Require returns an error naming the feature when it is disabled, nil
// otherwise. Mirrors enabledFeatures.Require(wasm.FeatureX) call sites
// in the teacher's element-segment decoder.
func (f Features) Require(name string, enabled bool) error {
	if !enabled {
		return fmt.Errorf("feature %q is disabled", name)
	}
	return nil
}
