// Package fanout computes pad-to-via fan-out geometry for a PCB component.
//
// Given a component and a Config, the planner chooses a direction for every
// connected pad, scales it by the trace length and reports one track and one
// via per pad. The package never touches a board document: callers supply
// read-only Pad and Component views and apply the returned Results
// themselves.
//
// # Styles
//
// Four direction policies are supported:
//
//   - Quadrant: the axis direction of whichever side of the origin the pad is
//     closest to.
//   - Diagonal: the diagonal pointing away from the origin.
//   - SquareQuadrant: the diagonal of the quadrant the pad sits in.
//   - Angled: a fixed angle, or the pad's own orientation.
//
// Quadrant and SquareQuadrant directions are additionally rotated by the
// configured angle. Zero offsets count as positive on both axes, so a pad on
// the origin always gets a non-zero direction.
//
// # Units
//
// Points are integer nanometres. Directions are not normalised: a Diagonal
// pad with trace length L moves L along each axis. The via target is rounded
// to the nearest nanometre, halves away from zero.
package fanout
