package extract

import (
	"bytes"
	"strings"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
	"github.com/unidoc/unioffice/v2/document"
)

// ReadDocx parses raw docx bytes into a live document object. The annotator
// mutates this same object later, so segment handles stay valid against it.
func ReadDocx(raw []byte, displayName string) (*document.Document, error) {
	doc, err := document.Read(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, &MalformedDocumentError{Name: displayName, Err: err}
	}
	return doc, nil
}

// DocxSegments walks the document body in order and returns one segment per
// non-empty paragraph. ParaIndex is the paragraph's position in
// doc.Paragraphs(), the handle the annotator marks through.
func DocxSegments(doc *document.Document) []reviewModel.Segment {
	var segments []reviewModel.Segment
	for i, para := range doc.Paragraphs() {
		text := strings.TrimSpace(paragraphText(para))
		if text == "" {
			continue
		}
		segments = append(segments, reviewModel.Segment{
			Text:      text,
			Position:  len(segments),
			ParaIndex: i,
			HasHandle: true,
		})
	}
	return segments
}

func paragraphText(para document.Paragraph) string {
	var b strings.Builder
	for _, run := range para.Runs() {
		b.WriteString(run.Text())
	}
	return b.String()
}
