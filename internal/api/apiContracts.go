package api

import (
	"time"

	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

// BatchReviewResponse is the annotate flow result. ReviewedFiles lists
// artifact names the caller can fetch from the download endpoint.
type BatchReviewResponse struct {
	Summary       reviewModel.BatchSummary `json:"summary"`
	ReviewedFiles []string                 `json:"reviewed_files,omitempty"`
}

type RAGReviewResponse struct {
	Query   string                 `json:"query"`
	Review  string                 `json:"review"`
	Summary reviewModel.RAGSummary `json:"summary"`
	Context []string               `json:"context,omitempty"`
}

type Result struct {
	Status      string               `json:"status"`
	BatchReview *BatchReviewResponse `json:"batch_review,omitempty"`
	RAGReview   *RAGReviewResponse   `json:"rag_review,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}
