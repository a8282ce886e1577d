package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/rangel3l/sem-colar-system/docxdoc"
	"github.com/rangel3l/sem-colar-system/format"
	"github.com/rangel3l/sem-colar-system/model"
	"github.com/rangel3l/sem-colar-system/pdfdoc"
)

// Extract reads the document at path and returns its structured form.
// The format is decided by extension first and by content sniffing when
// the extension is unknown. Extracted images are written into the
// session's directory.
func Extract(ctx context.Context, path string, sess *Session) (*model.SourceDocument, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	log := sess.Logger().With("path", path, "format", f.String())
	log.Info("extracting document")

	var doc *model.SourceDocument
	switch f {
	case format.PDF:
		doc, err = pdfdoc.Extract(ctx, path, pdfdoc.Options{
			AssetDir: sess.Dir(),
			Logger:   sess.Logger(),
		})
	case format.DOCX:
		doc, err = docxdoc.Extract(ctx, path, docxdoc.Options{
			AssetDir: sess.Dir(),
			Logger:   sess.Logger(),
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	log.Info("extraction complete",
		"blocks", len(doc.Blocks),
		"tables", len(doc.Tables),
		"header_images", len(doc.HeaderImages))
	return doc, nil
}

func detectFormat(path string) (format.Format, error) {
	if f := format.Detect(path); f != format.Unknown {
		return f, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return format.Unknown, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := format.DetectFromReader(file, info.Size())
	if err != nil || f == format.Unknown {
		return format.Unknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return f, nil
}
