package annotate

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
	"github.com/corpagent/reviewAPI/internal/review/classify"
	"github.com/corpagent/reviewAPI/internal/review/extract"
	"github.com/corpagent/reviewAPI/internal/review/rules"
	"github.com/corpagent/reviewAPI/pkg/logger_i"
	"github.com/unidoc/unioffice/v2/document"
	"github.com/unidoc/unioffice/v2/schema/soo/wml"
)

// AnnotationWriteError means the modified document could not be serialized.
// Fatal for that document only.
type AnnotationWriteError struct {
	Name string
	Err  error
}

func (e *AnnotationWriteError) Error() string {
	return fmt.Sprintf("failed writing annotated copy of %q: %v", e.Name, e.Err)
}

func (e *AnnotationWriteError) Unwrap() error { return e.Err }

// Result is one annotated document plus its structured report. Unmarked
// counts issues whose visual highlight could not be applied; their textual
// notes still landed.
type Result struct {
	Data     []byte
	Report   reviewModel.Report
	Unmarked int
}

var logger = logger_i.NewLogger("Annotator")

// Run parses a fresh copy of the docx, re-detects type and issues against it,
// then merges the issues back in: highlighted segments with inline notes,
// document-level notes for unlocated issues, and a trailing summary table.
// The input bytes are never touched.
func Run(raw []byte, displayName string) (Result, error) {
	doc, err := extract.ReadDocx(raw, displayName)
	if err != nil {
		return Result{}, err
	}

	segments := extract.DocxSegments(doc)
	fullText := extract.JoinText(segments)
	detected := classify.Detect(fullText)
	issues := rules.Scan(segments, fullText)

	paras := doc.Paragraphs()
	comments := CommentsFromIssues(issues)
	unmarked := 0

	for i, issue := range issues {
		note := fmt.Sprintf("«%s: %s (severity: %s)»", comments[i].ID, issue.Issue, issue.Severity)

		if issue.ParaIndex >= 0 && issue.ParaIndex < len(paras) {
			para := paras[issue.ParaIndex]
			if !highlightRuns(para) {
				unmarked++
			}
			para.AddRun().AddText(" " + note)
		} else {
			doc.AddParagraph().AddRun().AddText(note)
		}
	}

	appendSummary(doc, comments)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return Result{}, &AnnotationWriteError{Name: displayName, Err: err}
	}

	if unmarked > 0 {
		logger.Debug("some issues kept their note but lost the highlight", "file", displayName, "unmarked", unmarked)
	}

	return Result{
		Data:     buf.Bytes(),
		Report:   reviewModel.Report{DetectedType: detected, Comments: comments},
		Unmarked: unmarked,
	}, nil
}

// CommentsFromIssues assigns sequential reviewer ids in emission order and
// truncates excerpts for the summary table. One comment per issue, always.
func CommentsFromIssues(issues []reviewModel.Issue) []reviewModel.Comment {
	comments := make([]reviewModel.Comment, 0, len(issues))
	for i, issue := range issues {
		comments = append(comments, reviewModel.Comment{
			ID:       fmt.Sprintf("REVIEWER-%d", i+1),
			Issue:    issue.Issue,
			Severity: issue.Severity,
			Excerpt:  truncate(issue.Text, config.ExcerptLimit),
		})
	}
	return comments
}

// highlightRuns is best-effort: the note is the contract, the yellow mark is
// cosmetic. A paragraph with no runs, or run properties the library rejects,
// reports false instead of failing the annotation.
func highlightRuns(para document.Paragraph) (marked bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("highlight skipped", "reason", r)
			marked = false
		}
	}()

	runs := para.Runs()
	if len(runs) == 0 {
		return false
	}
	for _, run := range runs {
		run.Properties().SetHighlight(wml.ST_HighlightColorYellow)
	}
	return true
}

func appendSummary(doc *document.Document, comments []reviewModel.Comment) {
	doc.AddParagraph().AddRun().AddPageBreak()

	heading := doc.AddParagraph().AddRun()
	heading.AddText("Reviewer Comments Summary")
	heading.Properties().SetBold(true)

	if len(comments) == 0 {
		return
	}

	table := doc.AddTable()
	header := table.AddRow()
	for _, title := range []string{"Comment ID", "Issue", "Severity", "Text Excerpt"} {
		header.AddCell().AddParagraph().AddRun().AddText(title)
	}
	for _, c := range comments {
		row := table.AddRow()
		row.AddCell().AddParagraph().AddRun().AddText(c.ID)
		row.AddCell().AddParagraph().AddRun().AddText(c.Issue)
		row.AddCell().AddParagraph().AddRun().AddText(string(c.Severity))
		row.AddCell().AddParagraph().AddRun().AddText(c.Excerpt)
	}
}

// ReviewedName turns "articles.docx" into "articles_reviewed.docx".
func ReviewedName(inputName string) string {
	ext := filepath.Ext(inputName)
	return strings.TrimSuffix(inputName, ext) + config.ReviewedFileSuffix + ext
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
