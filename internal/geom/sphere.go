package geom

import "github.com/chewxy/math32"

// Sphere returns an indexed UV sphere with (widthSegments+1)*(heightSegments+1) vertices.
// Pole rows keep their duplicated vertices and skip the degenerate triangle of each quad.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	n := (widthSegments + 1) * (heightSegments + 1)
	g := &Geometry{
		Positions: make([]float32, 0, n*3),
		Normals:   make([]float32, 0, n*3),
		UVs:       make([]float32, 0, n*2),
	}
	grid := make([][]uint32, heightSegments+1)
	var index uint32
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		// Half-step u offset at the poles so their UVs sit in the middle of the fan.
		var uOffset float32
		switch {
		case iy == 0:
			uOffset = 0.5 / float32(widthSegments)
		case iy == heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			theta := v * math32.Pi
			p := Vec3{
				X: -radius * math32.Cos(phi) * math32.Sin(theta),
				Y: radius * math32.Cos(theta),
				Z: radius * math32.Sin(phi) * math32.Sin(theta),
			}
			nrm := p.Normalize()
			g.Positions = append(g.Positions, p.X, p.Y, p.Z)
			g.Normals = append(g.Normals, nrm.X, nrm.Y, nrm.Z)
			g.UVs = append(g.UVs, u+uOffset, v)
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}
