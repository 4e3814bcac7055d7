package reviewModel

// Segment is one trimmed, non-empty unit of extracted document text.
// ParaIndex points back at the paragraph inside the live document object the
// segment came from; it is only meaningful against that same object.
// HasHandle is false for formats we can read but not annotate (pdf, txt, rtf).
type Segment struct {
	Text      string `json:"text"`
	Position  int    `json:"position"`
	ParaIndex int    `json:"para_index"`
	HasHandle bool   `json:"has_handle"`
}

type DocumentType string

const (
	ArticlesOfAssociation   DocumentType = "Articles of Association"
	MemorandumOfAssociation DocumentType = "Memorandum of Association"
	IncorporationApp        DocumentType = "Incorporation Application"
	UBODeclaration          DocumentType = "UBO Declaration"
	RegisterMembersDirs     DocumentType = "Register of Members and Directors"
	UnknownType             DocumentType = "Unknown"
)

type TypeKeywords struct {
	Type     DocumentType
	Keywords []string
}

// Catalog is the fixed document type catalog. Order matters: the classifier
// breaks score ties by declaration order, and the checklist reports missing
// documents in this order.
var Catalog = []TypeKeywords{
	{ArticlesOfAssociation, []string{"articles of association", "aoa", "objects of the company", "share capital"}},
	{MemorandumOfAssociation, []string{"memorandum of association", "moa", "subscribers"}},
	{IncorporationApp, []string{"incorporation application", "application for incorporation"}},
	{UBODeclaration, []string{"ultimate beneficial owner", "ubo", "beneficial owner"}},
	{RegisterMembersDirs, []string{"register of members", "register of directors", "members register"}},
}

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Issue is one located compliance finding. Created by the rule engine, never
// mutated afterwards. ParaIndex is -1 for document-level issues.
type Issue struct {
	Document  string   `json:"document"`
	Section   string   `json:"section,omitempty"`
	Text      string   `json:"text"`
	Issue     string   `json:"issue"`
	Severity  Severity `json:"severity"`
	ParaIndex int      `json:"-"`
}

// Comment is an Issue after annotation: sequential reviewer id plus the
// truncated excerpt that lands in the summary table.
type Comment struct {
	ID       string   `json:"id"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
	Excerpt  string   `json:"excerpt"`
}

// Report is the per-document structured output of the annotate flow.
type Report struct {
	DetectedType DocumentType `json:"document_detected_type"`
	Comments     []Comment    `json:"issues_found"`
}

type FileReport struct {
	File   string `json:"file"`
	Report Report `json:"report"`
	Error  string `json:"error,omitempty"`
}

// ChecklistResult compares detected types against the required set for the
// selected process. Recomputed per batch, never persisted.
type ChecklistResult struct {
	Process       string         `json:"process"`
	Required      []DocumentType `json:"required_documents"`
	Found         int            `json:"documents_found"`
	Missing       []DocumentType `json:"missing_documents"`
	DetectedTypes []DocumentType `json:"detected_document_types"`
}

// BatchSummary is the annotate flow output object.
type BatchSummary struct {
	Process           string         `json:"process"`
	DocumentsUploaded int            `json:"documents_uploaded"`
	DetectedTypes     []DocumentType `json:"detected_document_types"`
	RequiredDocuments []DocumentType `json:"required_documents_for_process"`
	DocumentsFound    int            `json:"documents_found"`
	MissingDocuments  []DocumentType `json:"missing_documents"`
	FileReports       []FileReport   `json:"file_reports"`
}

// RAGSummary is the retrieval flow output object.
type RAGSummary struct {
	Process           string         `json:"process"`
	DocumentsUploaded int            `json:"documents_uploaded"`
	DetectedTypes     []DocumentType `json:"detected_document_types"`
	RequiredDocuments []DocumentType `json:"required_documents"`
	DocumentsFound    int            `json:"documents_found"`
	MissingDocuments  []DocumentType `json:"missing_documents"`
	FileNames         []string       `json:"file_names"`
	IssuesFound       string         `json:"issues_found"`
}

// Artifact is one annotated output document.
type Artifact struct {
	Name string
	Data []byte
}
