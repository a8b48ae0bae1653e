package coord

// BoundingBox is a normalized axis-aligned box in project coordinates
// (meters). A plan without vertical extent degenerates to ZMin = ZMax = 0.
type BoundingBox struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// flat reports whether the box carries no vertical extent at all.
func (b BoundingBox) flat() bool {
	return b.ZMin == 0 && b.ZMax == 0
}

// Axis key aliases as the extractors emit them. Min/max pairs win; an
// origin+size pair is the fallback.
var (
	xMinKeys   = []string{"x_min", "xmin"}
	xMaxKeys   = []string{"x_max", "xmax"}
	xOrigKeys  = []string{"x", "origin_x"}
	xSizeKeys  = []string{"width", "breite", "dx"}
	yMinKeys   = []string{"y_min", "ymin"}
	yMaxKeys   = []string{"y_max", "ymax"}
	yOrigKeys  = []string{"y", "origin_y"}
	ySizeKeys  = []string{"depth", "tiefe", "dy", "laenge"}
	zMinKeys   = []string{"z_min", "zmin"}
	zMaxKeys   = []string{"z_max", "zmax"}
	zOrigKeys  = []string{"z", "origin_z", "niveau"}
	zSizeKeys  = []string{"height", "hoehe", "dz"}
)

// NormalizeBox resolves the aliased raw key/value pairs of an extracted
// bounding box into a BoundingBox. Inverted pairs are swapped. Returns
// false when the horizontal extent cannot be resolved; a missing vertical
// extent is tolerated and reads as flat.
func NormalizeBox(raw map[string]float64) (BoundingBox, bool) {
	axisPair := func(minKeys, maxKeys, origKeys, sizeKeys []string) (float64, float64, bool) {
		min, haveMin := lookup(raw, minKeys)
		max, haveMax := lookup(raw, maxKeys)

		if !haveMin || !haveMax {
			orig, haveOrig := lookup(raw, origKeys)
			size, haveSize := lookup(raw, sizeKeys)
			if !haveOrig || !haveSize {
				return 0, 0, false
			}
			min, max = orig, orig+size
		}
		if min > max {
			min, max = max, min
		}
		return min, max, true
	}

	var box BoundingBox
	var ok bool
	if box.XMin, box.XMax, ok = axisPair(xMinKeys, xMaxKeys, xOrigKeys, xSizeKeys); !ok {
		return BoundingBox{}, false
	}
	if box.YMin, box.YMax, ok = axisPair(yMinKeys, yMaxKeys, yOrigKeys, ySizeKeys); !ok {
		return BoundingBox{}, false
	}
	box.ZMin, box.ZMax, _ = axisPair(zMinKeys, zMaxKeys, zOrigKeys, zSizeKeys)
	return box, true
}

func lookup(raw map[string]float64, keys []string) (float64, bool) {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			return v, true
		}
	}
	return 0, false
}

// Overlap is the per-axis extent of an intersection.
type Overlap struct {
	X, Y, Z float64
}

// Intersect computes the overlap of two boxes. Touching boxes do not count
// as overlapping. When neither box carries height data the intersection is
// decided in 2-D; a height-aware box against a flat one never intersects.
func Intersect(a, b BoundingBox) (Overlap, bool) {
	axis := func(minA, maxA, minB, maxB float64) (float64, bool) {
		start := maxFloat(minA, minB)
		end := minFloat(maxA, maxB)
		if end <= start {
			return 0, false
		}
		return end - start, true
	}

	x, ok := axis(a.XMin, a.XMax, b.XMin, b.XMax)
	if !ok {
		return Overlap{}, false
	}
	y, ok := axis(a.YMin, a.YMax, b.YMin, b.YMax)
	if !ok {
		return Overlap{}, false
	}

	z, ok := axis(a.ZMin, a.ZMax, b.ZMin, b.ZMax)
	if !ok {
		if !a.flat() || !b.flat() {
			return Overlap{}, false
		}
		z = 0
	}
	return Overlap{X: x, Y: y, Z: z}, true
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
