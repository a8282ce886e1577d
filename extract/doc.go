// Package extract turns a source document on disk into the structured
// representation the rest of the pipeline works on.
//
// It sniffs the file's format and dispatches to the PDF or DOCX backend;
// extracted images land in a per-run session directory so concurrent
// extractions never collide.
package extract
