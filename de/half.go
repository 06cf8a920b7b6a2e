package de

import "math"

// Bit patterns of special half-precision values.
const (
	HalfPositiveInfinity uint16 = 0x7c00
	HalfNegativeInfinity uint16 = 0xfc00
	HalfNaN              uint16 = 0x7c01
	HalfMaxValue         uint16 = 0x7bff
	HalfMinNormal        uint16 = 0x0400
	HalfMinValue         uint16 = 0x0001
)

// HalfToFloat32 widens an IEEE 754 binary16 bit pattern to float32. The
// conversion is exact for every pattern; NaN payloads are preserved.
func HalfToFloat32(bits uint16) float32 {
	sign := uint32(bits&0x8000) << 16
	significand := uint32(bits & 0x03ff)
	exponent := uint32(bits & 0x7c00)

	switch exponent {
	case 0:
		if significand != 0 {
			// subnormal: normalize into the float32 exponent range
			exponent = 0x1c400
			for {
				significand <<= 1
				exponent -= 0x400
				if significand&0x400 != 0 {
					break
				}
			}
			significand &= 0x3ff
		}
	case 0x7c00:
		exponent = 0x3fc00
	default:
		exponent += 0x1c000
	}

	return math.Float32frombits(sign | (exponent|significand)<<13)
}
