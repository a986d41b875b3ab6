package core

// Quadrature phase sequencing
// A mechanical mouse encoder emits a 2-bit Gray code on its two signal
// lines. Each axis walks the 4-state cycle one step per timer fire.

// Direction of phase advance for the current motion burst
type Direction uint8

const (
	DirNegative Direction = iota
	DirPositive
)

// PhaseCount is the number of states in the quadrature cycle
const PhaseCount = 4

// phaseLevels maps a phase index to the (a, b) signal levels.
// The sequence is the standard Gray code: only one line changes per step,
// and the order of changes encodes the direction.
//
//	phase 0 -> a=0 b=0
//	phase 1 -> a=1 b=0
//	phase 2 -> a=1 b=1
//	phase 3 -> a=0 b=1
//
// ok is false for an out-of-range phase, which is a logic fault upstream.
func phaseLevels(phase uint8) (a, b, ok bool) {
	switch phase {
	case 0:
		return false, false, true
	case 1:
		return true, false, true
	case 2:
		return true, true, true
	case 3:
		return false, true, true
	default:
		return false, false, false
	}
}

// advancePhase moves phase by one step in the given direction, wrapping
// modulo PhaseCount. The phase is deliberately never reset between motion
// bursts: the physical sequence must stay continuous or the downstream
// device sees a spurious reverse step.
func advancePhase(phase uint8, dir Direction) uint8 {
	if dir == DirNegative {
		if phase == 0 {
			return PhaseCount - 1
		}
		return phase - 1
	}
	if phase >= PhaseCount-1 {
		return 0
	}
	return phase + 1
}
