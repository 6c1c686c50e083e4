// Package topology defines the declarative input consumed by the socmap
// resolver: a 2D grid of tile roles with per-tile feature flags, plus the
// scalar platform options of one SoC design.
package topology

import (
	"encoding/json"
	"fmt"
	"os"
)

// TileSpec describes one grid cell of the NoC.
//
// Type is the raw role string from the designer: "cpu", "mem", "slm", "IO",
// "empty" (or blank), or the name of an accelerator registered in
// Config.Accelerators. Off-chip-DDR-backed SLM is declared as "slm" with
// HasDDR set.
type TileSpec struct {
	Type        string `json:"type"`
	Vendor      string `json:"vendor,omitempty"`
	DesignPoint string `json:"design_point,omitempty"`
	HasL2       bool   `json:"has_l2,omitempty"`
	HasTDVFS    bool   `json:"has_tdvfs,omitempty"`
	HasDDR      bool   `json:"has_ddr,omitempty"`
}

// Grid is the tile plan of the SoC, stored row-major.
type Grid struct {
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	Tiles [][]TileSpec `json:"tiles"`
}

// At returns the spec of the cell at the given coordinates.
func (g *Grid) At(row, col int) TileSpec {
	return g.Tiles[row][col]
}

// NumTiles returns the total cell count.
func (g *Grid) NumTiles() int {
	return g.Rows * g.Cols
}

// Validate checks that the tile plan matches the declared dimensions.
func (g *Grid) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("grid dimensions %dx%d are not positive",
			g.Rows, g.Cols)
	}

	if len(g.Tiles) != g.Rows {
		return fmt.Errorf("grid declares %d rows but carries %d",
			g.Rows, len(g.Tiles))
	}

	for i, row := range g.Tiles {
		if len(row) != g.Cols {
			return fmt.Errorf("row %d declares %d columns, want %d",
				i, len(row), g.Cols)
		}
	}

	return nil
}

// LoadGrid reads a grid from a JSON file.
func LoadGrid(path string) (*Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	g := &Grid{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("parsing grid %s: %w", path, err)
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("grid %s: %w", path, err)
	}

	return g, nil
}
