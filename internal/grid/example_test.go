package grid_test

import (
	"fmt"

	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/grid"
)

func ExampleIterate() {
	grid.Iterate(geom.R(0, 0, 240, 240), 80, 80, grid.EdgeSkip, func(c grid.Cell) {
		if c.Column == c.Row {
			fmt.Printf("(%d,%d) at %.0f,%.0f-%.0f,%.0f\n", c.Column, c.Row, c.X, c.Y, c.X+c.Width, c.Y+c.Height)
		}
	})
	// Output:
	// (0,0) at 0,0-80,80
	// (1,1) at 80,80-160,160
	// (2,2) at 160,160-240,240
}
