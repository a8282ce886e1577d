// Package model provides the intermediate representation for extracted
// exam documents.
//
// This package defines the shared data structures produced by the format
// adapters (pdfdoc, docxdoc) and consumed by segmentation, shuffling and
// rendering. All extraction paths normalize into these types.
//
// # Document Structure
//
// [SourceDocument] is the extraction output: the full text, ordered
// [TextBlock] values with extraction-assigned IDs, detected [Table]
// records, image placements and the original header content. Block order
// is reading order and is semantically meaningful; only the shuffle step
// may reorder anything, and it operates on questions, never on blocks.
//
// # Header Content
//
// Header content comes in three shapes depending on the source format.
// [HeaderContent] is a tagged variant decided once at extraction time:
//
//   - [HeaderPositionedRuns] - PDF runs with literal page positions
//   - [HeaderPDFBlocks] - PDF block/line/span structure
//   - [HeaderDocxParagraphs] - DOCX paragraph/run lists
//
// # Geometry and Units
//
// [BBox] and [Point] support position calculations. Unit conversions
// between points, millimeters and pixels use fixed factors
// (1pt = 0.352778mm); see [PtToMM] and friends.
package model
