package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
	"github.com/corpagent/reviewAPI/pkg/logger_i"
	"github.com/lu4p/cat"
)

type Kind string

const (
	DOCX Kind = "DOCX"
	PDF  Kind = "PDF"
	TEXT Kind = "TEXT"
	ERR  Kind = "ERROR"
)

// MalformedDocumentError means the input bytes could not be parsed as a valid
// document container. Fatal for that document only, never for the batch.
type MalformedDocumentError struct {
	Name string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document %q: %v", e.Name, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

var logger *logger_i.Logger

func init() {
	logger = logger_i.NewLogger("Extractor")
}

func KindOf(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return DOCX
	case ".pdf":
		return PDF
	case ".txt", ".rtf", ".odt":
		return TEXT
	default:
		return ERR
	}
}

// FromFile pulls ordered segments out of a staged upload. Only DOCX segments
// carry location handles; the other formats are read-only review material.
func FromFile(path string, displayName string) ([]reviewModel.Segment, Kind, error) {
	kind := KindOf(path)
	logger.Debug("extracting document", "file", displayName, "kind", kind)

	switch kind {
	case DOCX:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, kind, &MalformedDocumentError{Name: displayName, Err: err}
		}
		doc, err := ReadDocx(raw, displayName)
		if err != nil {
			return nil, kind, err
		}
		return DocxSegments(doc), kind, nil

	case PDF:
		pages, err := extractPDF(path)
		if err != nil {
			return nil, kind, &MalformedDocumentError{Name: displayName, Err: err}
		}
		var segments []reviewModel.Segment
		for _, page := range pages {
			segments = appendTextSegments(segments, page.Content)
		}
		return segments, kind, nil

	case TEXT:
		text, err := cat.File(path)
		if err != nil {
			return nil, kind, &MalformedDocumentError{Name: displayName, Err: err}
		}
		return appendTextSegments(nil, text), kind, nil

	default:
		return nil, ERR, &MalformedDocumentError{Name: displayName, Err: fmt.Errorf("unsupported extension %q", filepath.Ext(path))}
	}
}

// appendTextSegments splits handle-less text into trimmed non-empty lines.
func appendTextSegments(segments []reviewModel.Segment, text string) []reviewModel.Segment {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		segments = append(segments, reviewModel.Segment{
			Text:      line,
			Position:  len(segments),
			ParaIndex: -1,
			HasHandle: false,
		})
	}
	return segments
}

// JoinText concatenates segment texts the way the rule engine and classifier
// expect a full-document blob.
func JoinText(segments []reviewModel.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, "\n")
}
