// Package imaging provides the grayscale raster operations the layout
// engine is built on: binarization, rectangular-kernel morphology,
// connected-component labeling, mask arithmetic, and axis projections.
//
// All operations work on *image.Gray. Binary masks use 255 for foreground
// (ink) and 0 for background. Functions that return images always return
// freshly allocated images whose bounds start at (0,0); inputs are never
// modified unless the function name says so (Fill, RemoveMask).
package imaging
