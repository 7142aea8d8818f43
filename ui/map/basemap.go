package mapview

import (
	"fmt"

	"github.com/jonas-p/go-shp"
)

// worldBounds is the full lon/lat extent, used when no basemap is loaded and
// as the zoom-out limit.
var worldBounds = shp.Box{MinX: -180, MinY: -85, MaxX: 180, MaxY: 85}

// loadBasemap reads polygon outlines from a shapefile, skipping any
// non-polygon shapes.
func loadBasemap(path string) ([]*shp.Polygon, error) {
	shapeFile, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shapeFile.Close()

	var polygons []*shp.Polygon
	for shapeFile.Next() {
		_, shape := shapeFile.Shape()
		polygon, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		polygons = append(polygons, polygon)
	}

	if len(polygons) == 0 {
		return nil, fmt.Errorf("no polygons found in shapefile: %s", path)
	}

	return polygons, nil
}

// boxOverlaps reports whether two boxes intersect.
func boxOverlaps(a, b shp.Box) bool {
	return !(a.MaxX < b.MinX || a.MinX > b.MaxX || a.MaxY < b.MinY || a.MinY > b.MaxY)
}
