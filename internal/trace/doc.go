// Package trace turns a stream of sample frames into a scrolling
// oscilloscope display: a polyline per frame, a reveal mask that sweeps
// off the canvas over one time window, and an optional reference grid.
//
// Everything except ScrollController and Slot is a pure function of its
// inputs.
package trace
