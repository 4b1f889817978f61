package dnd

import (
	"strings"
	"unicode/utf8"

	"github.com/appcues/inkwell/internal/log"
)

// Extractor produces text from dropped files. Extraction may complete
// after the call returns; done is invoked exactly once with the result,
// which may be empty when nothing textual could be read.
type Extractor interface {
	Extract(files []File, done func(text string))
}

// BlobExtractor reads file payloads directly: every file whose bytes are
// valid UTF-8 contributes its content, in drop order, joined by newlines.
// Binary files are skipped. Resolution is synchronous.
type BlobExtractor struct{}

func (BlobExtractor) Extract(files []File, done func(text string)) {
	var parts []string
	for _, f := range files {
		if !utf8.Valid(f.Data) {
			log.Debug(log.CatDnd, "skipping non-text file", "name", f.Name, "bytes", len(f.Data))
			continue
		}
		parts = append(parts, string(f.Data))
	}
	done(strings.Join(parts, "\n"))
}
