// Package filter holds the color-matrix math shared by both engines.
//
// Matrices are 4x5, row-major, with channels and offsets in 0..255 units.
// The GPU engine stores offsets normalized to 0..1 and converts with
// ScaleOffsets(255) before applying; the canvas engine keeps a 5x5 matrix
// whose first four rows are a Matrix.
//
// Hue uses the luminance-preserving rotation for both engines, so a hue
// filter transforms pixels identically whichever engine draws it.
package filter
