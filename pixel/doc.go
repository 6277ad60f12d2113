// Package pixel defines the RGBA colour value carried by colour grids, its
// parsing from hex strings and CSS colour names, and the conversion of a
// colour grid to a standard image for encoding.
//
// Colours are non-premultiplied with every channel in [0,1]; A is coverage.
package pixel
