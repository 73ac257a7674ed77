package loaders

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

// MapSolidCell marks a cell that holds a cube.
const MapSolidCell = 'x'

type MapLoader struct{}

func (ml *MapLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	f, size, err := openAsset(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	grid, err := ParseMap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &metadata.Resource{
		Type:     metadata.ResourceTypeMap,
		Name:     resourceName(path),
		FullPath: path,
		DataSize: uint64(size),
		Data:     grid,
	}, nil
}

func (ml *MapLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}

// ParseMap reads a text grid. Every line is a row; every MapSolidCell
// character in it is a solid cell at (row, column). Any other character is
// empty space.
func ParseMap(r io.Reader) (*metadata.MapResourceData, error) {
	grid := &metadata.MapResourceData{}
	scanner := bufio.NewScanner(r)
	for row := 0; scanner.Scan(); row++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		grid.Rows = append(grid.Rows, line)
		for col, ch := range []byte(line) {
			if ch == MapSolidCell {
				grid.Cells = append(grid.Cells, metadata.MapCell{Row: row, Col: col})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return grid, nil
}
