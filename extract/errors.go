package extract

import "errors"

// ErrFileNotFound indicates the source path does not exist or is not a
// regular file.
var ErrFileNotFound = errors.New("source file not found")

// ErrUnsupportedFormat indicates the file is neither a PDF nor a DOCX.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrCorruptDocument indicates the file matched a known format but could
// not be parsed.
var ErrCorruptDocument = errors.New("corrupt document")
