// Package pdfdoc extracts structured content from PDF exam documents.
//
// Positioned text comes from the page content streams and is reassembled
// into spans, lines and blocks by geometry: characters sharing a baseline
// form a line, lines separated by less than a font-height gap form a
// block. Embedded images are exported to the session directory, and the
// first page's header region is additionally composited into a standalone
// raster for preview and fallback rendering.
//
// A page that fails to parse is skipped with a warning; the rest of the
// document still loads.
package pdfdoc
