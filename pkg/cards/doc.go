// Package cards implements the placecard layout engine.
//
// Generate is a pure function from booking records plus a resolved style
// configuration to an ordered sequence of pages, each holding positioned,
// content-derived card slots. No drawing happens here: the render sinks in
// pkg/render/sink consume the page description and turn it into document
// bytes. Keeping layout separate from drawing lets the placement logic be
// tested without any PDF library.
//
// Geometry is computed in points (1 inch = 72 points) with a top-left
// origin, matching the coordinate system of the PDF renderer.
package cards
