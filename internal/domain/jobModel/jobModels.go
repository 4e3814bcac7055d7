package jobModel

import (
	"context"
	"time"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	ReviewInit       InternalStatus = "Init"
	Extraction       InternalStatus = "Extraction"
	Classification   InternalStatus = "Classification"
	RuleScan         InternalStatus = "RuleScan"
	Annotation       InternalStatus = "Annotation"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	IndexBuild       InternalStatus = "IndexBuild"
	Retrieval        InternalStatus = "Retrieval"
	LLMCall          InternalStatus = "LLM"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeAnnotate JobType = "Annotate"
	JobTypeRAG      JobType = "RAGReview"
)

// UploadedFile is one document the request handler staged on disk for a job.
type UploadedFile struct {
	Name string `json:"name"` //display name as uploaded
	Path string `json:"path"` //temp file the worker reads and removes
}

type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Files []UploadedFile `json:"files,omitempty"`
	Query string         `json:"query,omitempty"`

	//annotate flow results
	BatchSummary  *reviewModel.BatchSummary `json:"batch_summary,omitempty"`
	ArtifactNames []string                  `json:"artifact_names,omitempty"`

	//rag flow results
	RAGSummary *reviewModel.RAGSummary `json:"rag_summary,omitempty"`
	Review     string                  `json:"review,omitempty"`
	Context    []string                `json:"context,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// ArtifactStore keeps annotated document bytes until the caller downloads
// them. Keys are scoped per job; entries expire with the job.
type ArtifactStore interface {
	SaveArtifact(ctx context.Context, jobId string, artifact reviewModel.Artifact) error
	GetArtifact(ctx context.Context, jobId string, name string) (reviewModel.Artifact, bool)
	DeleteArtifacts(ctx context.Context, jobId string, names []string)
}
