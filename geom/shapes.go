package geom

// AABB is an axis-aligned bounding box described by its min and max corners.
type AABB struct {
	Min, Max Vec2
}

// NewAABB builds a box from its center and full size.
func NewAABB(center, size Vec2) AABB {
	half := size.Scale(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

func (b AABB) Center() Vec2 {
	return Vec2{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

func (b AABB) Size() Vec2 {
	return b.Max.Sub(b.Min)
}

// ClosestPoint returns the point inside the box nearest to p.
func (b AABB) ClosestPoint(p Vec2) Vec2 {
	return ClampVec(p, b.Min, b.Max)
}

// Circle is a bounding circle.
type Circle struct {
	Center Vec2
	Radius float32
}

// Side identifies which face of a box a circle hit.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideTop
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// CollideCircleAABB reports whether the circle overlaps the box and, if so,
// which side of the box the circle's center sits on. The side is chosen from
// the offset between the center and its closest point on the box: the
// dominant axis wins, with ties going to top/bottom.
func CollideCircleAABB(c Circle, b AABB) (Side, bool) {
	closest := b.ClosestPoint(c.Center)
	offset := c.Center.Sub(closest)

	if offset.LengthSquared() > c.Radius*c.Radius {
		return 0, false
	}

	abs := func(v float32) float32 {
		if v < 0 {
			return -v
		}
		return v
	}

	var side Side
	if abs(offset.X) > abs(offset.Y) {
		if offset.X < 0 {
			side = SideLeft
		} else {
			side = SideRight
		}
	} else if offset.Y > 0 {
		side = SideTop
	} else {
		side = SideBottom
	}
	return side, true
}
