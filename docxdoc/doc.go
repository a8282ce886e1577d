// Package docxdoc extracts structured content from DOCX exam documents.
//
// The document body is walked in order: each paragraph becomes a block,
// each table becomes a table-flagged block plus a structured table
// record. DOCX carries no page geometry, so blocks have no bounding
// boxes and header content comes from the section's header part rather
// than a positional cutoff. Headers keep their paragraph runs and any
// embedded images, which are exported to the session directory with an
// estimated placement.
package docxdoc
