package fe

import "golang.org/x/sys/cpu"

// hasBMI2 records whether the host advertises BMI2, the feature bit
// the teacher package (github.com/gtank/ristretto255) gates its amd64
// assembly fast path on. This package carries no assembly of its own
// -- the squeeze/freeze chains are specified at the byte-limb level,
// and constant-time correctness is easier to reason about in portable
// Go than in a hand-written multiply -- so the bit is recorded only
// for diagnostics, not to select a code path.
var hasBMI2 = cpu.Initialized && cpu.X86.HasBMI2

// Diagnostics reports whether the golang.org/x/sys/cpu feature
// detector ran, and whether it found BMI2. It has no effect on
// arithmetic: every function in this package executes the same fixed
// sequence of limb operations regardless of what it reports. Intended
// for test logs, not for production branching.
func Diagnostics() (initialized, bmi2 bool) {
	return cpu.Initialized, hasBMI2
}
