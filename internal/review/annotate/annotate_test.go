package annotate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
	"github.com/corpagent/reviewAPI/internal/review/extract"
	"github.com/unidoc/unioffice/v2/document"
)

func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()
	doc := document.New()
	for _, text := range paragraphs {
		doc.AddParagraph().AddRun().AddText(text)
	}
	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		t.Fatalf("could not build test document: %v", err)
	}
	return buf.Bytes()
}

func allParagraphText(t *testing.T, raw []byte) string {
	t.Helper()
	doc, err := extract.ReadDocx(raw, "reviewed.docx")
	if err != nil {
		t.Fatalf("annotated output does not parse: %v", err)
	}
	var b strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			b.WriteString(run.Text())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestRun_AnnotatesIssuesEndToEnd(t *testing.T) {
	raw := buildDocx(t, []string{
		"Articles of Association of Example Ltd",
		"Disputes shall be referred to the Dubai Courts.",
		"The directors may appoint a secretary.",
	})
	before := make([]byte, len(raw))
	copy(before, raw)

	result, err := Run(raw, "articles.docx")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !bytes.Equal(raw, before) {
		t.Error("input bytes were mutated")
	}

	if result.Report.DetectedType != reviewModel.ArticlesOfAssociation {
		t.Errorf("detected type got %q, want Articles of Association", result.Report.DetectedType)
	}

	//jurisdiction + missing signature + ambiguous language
	comments := result.Report.Comments
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3: %+v", len(comments), comments)
	}
	for i, c := range comments {
		wantID := "REVIEWER-" + string(rune('1'+i))
		if c.ID != wantID {
			t.Errorf("comment %d id got %q, want %q", i, c.ID, wantID)
		}
	}

	text := allParagraphText(t, result.Data)

	for _, c := range comments {
		if !strings.Contains(text, c.ID+": "+c.Issue) {
			t.Errorf("annotated document is missing the note for %s", c.ID)
		}
	}
	if !strings.Contains(text, "Reviewer Comments Summary") {
		t.Error("annotated document is missing the summary heading")
	}

	doc, err := extract.ReadDocx(result.Data, "reviewed.docx")
	if err != nil {
		t.Fatal(err)
	}
	tables := doc.Tables()
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	//header plus one row per comment
	if rows := tables[0].Rows(); len(rows) != len(comments)+1 {
		t.Errorf("summary table has %d rows, want %d", len(rows), len(comments)+1)
	}
}

func TestRun_JurisdictionAndSignatureOnly(t *testing.T) {
	raw := buildDocx(t, []string{
		"Articles of Association",
		"Disputes shall be settled by the Dubai Courts.",
	})

	result, err := Run(raw, "articles.docx")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	comments := result.Report.Comments
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	for _, c := range comments {
		if c.Severity != reviewModel.SeverityHigh {
			t.Errorf("comment %s severity got %q, want High", c.ID, c.Severity)
		}
	}

	doc, err := extract.ReadDocx(result.Data, "reviewed.docx")
	if err != nil {
		t.Fatal(err)
	}
	if rows := doc.Tables()[0].Rows(); len(rows) != 3 {
		t.Errorf("summary table has %d rows, want header plus 2", len(rows))
	}
}

func TestRun_CleanDocumentStillGetsSummary(t *testing.T) {
	raw := buildDocx(t, []string{
		"Articles of Association",
		"Registered in ADGM. The company shall keep records.",
		"Signed for and on behalf of the subscribers.",
	})

	result, err := Run(raw, "clean.docx")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Report.Comments) != 0 {
		t.Fatalf("clean document produced comments: %+v", result.Report.Comments)
	}

	text := allParagraphText(t, result.Data)
	if !strings.Contains(text, "Reviewer Comments Summary") {
		t.Error("summary heading should always be appended")
	}

	doc, err := extract.ReadDocx(result.Data, "clean_reviewed.docx")
	if err != nil {
		t.Fatal(err)
	}
	if tables := doc.Tables(); len(tables) != 0 {
		t.Errorf("no comments means no table, got %d", len(tables))
	}
}

func TestRun_Malformed(t *testing.T) {
	_, err := Run([]byte("not a document"), "broken.docx")
	if err == nil {
		t.Fatal("expected an error for malformed input")
	}
}

func TestCommentsFromIssues(t *testing.T) {
	long := strings.Repeat("x", 500)
	issues := []reviewModel.Issue{
		{Issue: "Incorrect jurisdiction reference", Severity: reviewModel.SeverityHigh, Text: long},
		{Issue: "Missing signatory block", Severity: reviewModel.SeverityHigh, Text: "No signature block detected"},
	}

	comments := CommentsFromIssues(issues)
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].ID != "REVIEWER-1" || comments[1].ID != "REVIEWER-2" {
		t.Errorf("ids not sequential: %q, %q", comments[0].ID, comments[1].ID)
	}
	if len(comments[0].Excerpt) != 300 {
		t.Errorf("long excerpt should be truncated to 300, got %d", len(comments[0].Excerpt))
	}
	if comments[1].Excerpt != "No signature block detected" {
		t.Errorf("short excerpt should pass through, got %q", comments[1].Excerpt)
	}
}

func TestReviewedName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"articles.docx", "articles_reviewed.docx"},
		{"a.b.docx", "a.b_reviewed.docx"},
		{"noext", "noext_reviewed"},
	}
	for _, tt := range tests {
		if got := ReviewedName(tt.in); got != tt.expected {
			t.Errorf("ReviewedName(%q) got %q, want %q", tt.in, got, tt.expected)
		}
	}
}
