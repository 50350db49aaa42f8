package feature

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Bounds is an axis-aligned bounding box in geometry coordinates.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Intersects returns true if the given bounds intersects with this
// bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Expand returns a new Bounds expanded by the given margin in all
// directions.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

func boundsOf(g orb.Geometry) Bounds {
	bd := g.Bound()
	return Bounds{MinX: bd.Min[0], MinY: bd.Min[1], MaxX: bd.Max[0], MaxY: bd.Max[1]}
}

// rtree rectangles must have positive extent; points and degenerate
// geometries are inflated by this much.
const minExtent = 1e-9

func (b Bounds) rect() rtreego.Rect {
	lengths := []float64{b.MaxX - b.MinX, b.MaxY - b.MinY}
	for i, l := range lengths {
		if l < minExtent {
			lengths[i] = minExtent
		}
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, lengths)
	return rect
}

// layerEntry adapts a stored feature for the rtreego.Spatial
// interface.
type layerEntry struct {
	feat   *Feature
	bounds Bounds
}

func (e layerEntry) Bounds() rtreego.Rect {
	return e.bounds.rect()
}

// Layer is an in-memory feature collection with a fixed schema and an
// R-tree spatial index over feature geometries. Spatial queries are
// O(log N) instead of a linear scan.
//
// Layer is not safe for concurrent mutation.
type Layer struct {
	name   string
	schema Schema
	feats  []*Feature
	rtree  *rtreego.Rtree
	nextID uint64
}

// NewLayer creates an empty layer with the given schema.
func NewLayer(name string, schema Schema) *Layer {
	return &Layer{
		name:   name,
		schema: schema,
		rtree:  rtreego.NewTree(2, 25, 50),
		nextID: 1,
	}
}

// Name returns the layer name.
func (l *Layer) Name() string {
	return l.name
}

// Schema returns the layer schema.
func (l *Layer) Schema() Schema {
	return l.schema
}

// Len returns the number of features in the layer.
func (l *Layer) Len() int {
	return len(l.feats)
}

// Append adds a feature with the given geometry and one attribute
// value per schema field, returning its assigned identifier.
func (l *Layer) Append(geom orb.Geometry, values ...interface{}) (uint64, error) {
	if geom == nil {
		return 0, fmt.Errorf("nil geometry")
	}
	if err := l.schema.checkValues(values); err != nil {
		return 0, err
	}
	f := &Feature{
		ID:       l.nextID,
		Geometry: geom,
		Values:   append([]interface{}(nil), values...),
	}
	l.nextID++
	l.feats = append(l.feats, f)
	l.rtree.Insert(layerEntry{feat: f, bounds: boundsOf(geom)})
	return f.ID, nil
}

// All returns a source streaming every feature in insertion order.
func (l *Layer) All() Source {
	return &sliceSource{
		schema: l.schema,
		feats:  append([]*Feature(nil), l.feats...),
	}
}

// Within returns a source streaming the features whose geometry
// bounds intersect b. Candidates come from the R-tree; exact bounds
// intersection is re-checked before a feature is streamed.
func (l *Layer) Within(b Bounds) Source {
	candidates := l.rtree.SearchIntersect(b.rect())
	var feats []*Feature
	for _, c := range candidates {
		e := c.(layerEntry)
		if b.Intersects(e.bounds) {
			feats = append(feats, e.feat)
		}
	}
	return &sliceSource{schema: l.schema, feats: feats}
}
