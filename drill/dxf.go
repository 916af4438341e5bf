package drill

import (
	"fmt"

	"github.com/MartinBloedorn/pmu/record"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ReadDXF returns a drill for every CIRCLE entity in the DXF file at
// path. Coordinates are taken as millimetres; other entities are ignored.
func ReadDXF(path string) ([]record.Drill, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dxf %s: %w", path, err)
	}

	var res []record.Drill
	for _, ent := range drawing.Entities() {
		c, ok := ent.(*entity.Circle)
		if !ok {
			continue
		}
		res = append(res, record.Drill{
			Diameter: 2 * c.Radius,
			X:        c.Center[0],
			Y:        c.Center[1],
		})
	}
	return res, nil
}
