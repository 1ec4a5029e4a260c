// Package grid walks regions of the canvas cell by cell.
//
// Iterate steps a fixed cell size across a rectangle; Divide splits a
// rectangle into a fixed number of columns and rows. Both visit cells in
// row-major order. The recursive variants split geometry instead:
// Triangles performs midpoint subdivision of a triangle and Nest produces a
// chain of shrinking squares.
//
// When a region is not an exact multiple of the step, the EdgePolicy passed
// to Iterate decides what happens to the partial cells at the right and
// bottom edges: EdgeSkip leaves them out, EdgeClip visits them trimmed to the
// region. Either way no visited cell extends past the region.
package grid
