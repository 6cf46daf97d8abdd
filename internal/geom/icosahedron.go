package geom

import "github.com/chewxy/math32"

// golden ratio; the 12 icosahedron corners sit on three orthogonal golden rectangles.
var icoT = (1 + math32.Sqrt(5)) / 2

var icoVertices = [12]Vec3{
	{-1, icoT, 0}, {1, icoT, 0}, {-1, -icoT, 0}, {1, -icoT, 0},
	{0, -1, icoT}, {0, 1, icoT}, {0, -1, -icoT}, {0, 1, -icoT},
	{icoT, 0, -1}, {icoT, 0, 1}, {-icoT, 0, -1}, {-icoT, 0, 1},
}

var icoFaces = [20][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

// Icosahedron returns a non-indexed geodesic sphere: each of the 20 faces is split into
// (detail+1)^2 triangles whose corners are pushed out to radius. The vertex count is
// 20 * (detail+1)^2 * 3. UVs are equirectangular (v=0 at the north pole, the top row of an
// unflipped image) with the seam and poles patched per triangle.
func Icosahedron(radius float32, detail int) *Geometry {
	if detail < 0 {
		detail = 0
	}
	cols := detail + 1
	tris := 20 * cols * cols
	g := &Geometry{
		Positions: make([]float32, 0, tris*9),
		Normals:   make([]float32, 0, tris*9),
		UVs:       make([]float32, 0, tris*6),
	}

	for _, f := range icoFaces {
		a, b, c := icoVertices[f[0]], icoVertices[f[1]], icoVertices[f[2]]
		// grid[i][j]: row i walks from edge ab toward c, j walks across the row.
		grid := make([][]Vec3, cols+1)
		for i := 0; i <= cols; i++ {
			aj := a.Lerp(c, float32(i)/float32(cols))
			bj := b.Lerp(c, float32(i)/float32(cols))
			rows := cols - i
			grid[i] = make([]Vec3, rows+1)
			for j := 0; j <= rows; j++ {
				if j == 0 && i == cols {
					grid[i][j] = aj
				} else {
					grid[i][j] = aj.Lerp(bj, float32(j)/float32(rows))
				}
			}
		}
		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				if j%2 == 0 {
					g.addSphereTriangle(radius, grid[i][k+1], grid[i+1][k], grid[i][k])
				} else {
					g.addSphereTriangle(radius, grid[i][k+1], grid[i+1][k+1], grid[i+1][k])
				}
			}
		}
	}
	return g
}

func (g *Geometry) addSphereTriangle(radius float32, p ...Vec3) {
	var uv [3][2]float32
	var n [3]Vec3
	for i := range p {
		n[i] = p[i].Normalize()
		uv[i] = [2]float32{azimuth(n[i])/(2*math32.Pi) + 0.5, inclination(n[i])/math32.Pi + 0.5}
	}
	fixSeam(&uv, n)
	for i := range p {
		v := n[i].Scale(radius)
		g.Positions = append(g.Positions, v.X, v.Y, v.Z)
		g.Normals = append(g.Normals, n[i].X, n[i].Y, n[i].Z)
		g.UVs = append(g.UVs, uv[i][0], uv[i][1])
	}
}

func azimuth(v Vec3) float32 { return math32.Atan2(v.Z, -v.X) }

func inclination(v Vec3) float32 {
	return math32.Atan2(-v.Y, math32.Sqrt(v.X*v.X+v.Z*v.Z))
}

// fixSeam keeps a triangle's u range contiguous where it straddles the u=0/1 wrap, and gives
// pole vertices (whose azimuth is undefined) the azimuth of the triangle's centroid.
func fixSeam(uv *[3][2]float32, n [3]Vec3) {
	maxU := max(uv[0][0], uv[1][0], uv[2][0])
	if maxU > 0.9 {
		minU := min(uv[0][0], uv[1][0], uv[2][0])
		if maxU-minU > 0.5 {
			for i := range uv {
				if uv[i][0] < 0.2 {
					uv[i][0]++
				}
			}
		}
	}
	centroid := n[0].Add(n[1]).Add(n[2])
	for i := range n {
		if n[i].X == 0 && n[i].Z == 0 {
			uv[i][0] = azimuth(centroid)/(2*math32.Pi) + 0.5
			if maxU > 0.9 && uv[i][0] < 0.2 {
				uv[i][0]++
			}
		}
	}
}
