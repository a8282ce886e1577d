// Package tables provides table detection and decomposition for text
// blocks.
//
// Hand-typed exam documents commonly carry ASCII-art or space-aligned
// tables rather than native table objects, so detection works on the
// block's line structure: delimiter alignment across lines, box-drawing
// glyphs, separator-count consistency and monospace font usage. Any one
// signal is sufficient to classify a block as tabular.
//
// Detection degrades gracefully: a misjudged table renders as an
// unstructured multi-line paragraph downstream rather than failing.
package tables
