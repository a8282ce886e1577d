// Package render lays the segmented and shuffled question model out onto
// a fresh A4 page sequence.
//
// The preserved header is redrawn with as much fidelity as the source
// allowed: positioned runs at their literal coordinates, block spans in
// sequence, or centered DOCX paragraphs. Header failures are absorbed so
// the body still renders. Body text uses greedy word wrapping, tables
// redraw as bordered grids, and every page is stamped with a QR artifact
// identifying the exam, variant and page.
package render
