package abi

import "math"

// FloatProperties describes one floating-point precision of the target's
// numeric environment: extreme values, special values and digit/exponent
// bounds. Populated from host constants, not computed.
type FloatProperties struct {
	Max       float64
	MinNormal float64
	NaN       float64
	Infinity  float64
	Epsilon   float64

	Dig     int // decimal digits of precision
	MantDig int // bits of mantissa
	MaxExp  int
	MinExp  int
	Max10Exp int
	Min10Exp int
}

func float32Properties() FloatProperties {
	return FloatProperties{
		Max:       math.MaxFloat32,
		MinNormal: 0x1p-126,
		NaN:       math.NaN(),
		Infinity:  math.Inf(1),
		Epsilon:   0x1p-23,
		Dig:       6,
		MantDig:   24,
		MaxExp:    128,
		MinExp:    -125,
		Max10Exp:  38,
		Min10Exp:  -37,
	}
}

func float64Properties() FloatProperties {
	return FloatProperties{
		Max:       math.MaxFloat64,
		MinNormal: 0x1p-1022,
		NaN:       math.NaN(),
		Infinity:  math.Inf(1),
		Epsilon:   0x1p-52,
		Dig:       15,
		MantDig:   53,
		MaxExp:    1024,
		MinExp:    -1021,
		Max10Exp:  308,
		Min10Exp:  -307,
	}
}

// extendedProperties carries x87 extended-precision digit and exponent
// bounds. The value fields hold the widest host precision (float64): Go has
// no 80-bit type, so the extreme extended values are not representable here.
func extendedProperties() FloatProperties {
	p := float64Properties()
	p.Epsilon = 0x1p-63
	p.Dig = 18
	p.MantDig = 64
	p.MaxExp = 16384
	p.MinExp = -16381
	p.Max10Exp = 4932
	p.Min10Exp = -4931
	return p
}
