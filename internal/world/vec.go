package world

import "math"

// Vec3 is a position or velocity in block units.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo is the Euclidean distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	dz := v.Z - o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Block returns the integer block coordinate containing v.
func (v Vec3) Block() BlockPos {
	return BlockPos{
		X: int32(math.Floor(v.X)),
		Y: int32(math.Floor(v.Y)),
		Z: int32(math.Floor(v.Z)),
	}
}

// Chunk returns the horizontal chunk coordinate containing v for chunks of
// 1<<shift blocks.
func (v Vec3) Chunk(shift uint) ChunkPos {
	b := v.Block()
	return ChunkPos{X: b.X >> shift, Z: b.Z >> shift}
}

// BlockPos is an integer block coordinate.
type BlockPos struct {
	X, Y, Z int32
}

// Up returns the block directly above b.
func (b BlockPos) Up() BlockPos {
	return BlockPos{X: b.X, Y: b.Y + 1, Z: b.Z}
}

// ChunkPos is a horizontal chunk coordinate.
type ChunkPos struct {
	X, Z int32
}
