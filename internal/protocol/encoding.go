package protocol

import "math"

// VelocityScale converts blocks/tick into the wire's velocity units.
const VelocityScale = 320

// AngleByte packs an angle in degrees into 1/256ths of a turn:
// floor(((deg mod 360) / 360) * 256). Negative angles wrap first, so -90
// and 270 encode identically.
func AngleByte(deg float32) byte {
	a := math.Mod(float64(deg), 360)
	if a < 0 {
		a += 360
	}
	v := math.Floor(a / 360 * 256)
	if v >= 256 { // a rounded up to 360 in float64
		v = 0
	}
	return byte(v)
}

// VelocityComponent scales one velocity axis: floor(v * 320), saturated to
// the int16 range.
func VelocityComponent(v float64) int16 {
	s := math.Floor(v * VelocityScale)
	switch {
	case math.IsNaN(s):
		return 0
	case s > math.MaxInt16:
		return math.MaxInt16
	case s < math.MinInt16:
		return math.MinInt16
	}
	return int16(s)
}

// FixedPoint converts a block coordinate into the wire's 1/32 block units.
func FixedPoint(v float64) int32 {
	return int32(math.Floor(v * 32))
}
