package metadata

// MeshResourceData is the raw content of an OBJ file: vertex positions
// and the triangle faces indexing them (already zero-based).
type MeshResourceData struct {
	Vertices [][3]float32
	Faces    [][3]uint32
}

// ComputeFaces expands the faces into a flat xyz list, three vertices per
// face in file order.
func (m *MeshResourceData) ComputeFaces() []float32 {
	out := make([]float32, 0, len(m.Faces)*9)
	for _, face := range m.Faces {
		for _, idx := range face {
			v := m.Vertices[idx]
			out = append(out, v[0], v[1], v[2])
		}
	}
	return out
}

// MapCell is a solid cell of a map grid.
type MapCell struct {
	Row int
	Col int
}

// MapResourceData is a parsed map grid.
type MapResourceData struct {
	Rows  []string
	Cells []MapCell
}
