package review

import (
	"context"
	"os"
	"time"

	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/domain/jobModel"
	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
	"github.com/corpagent/reviewAPI/internal/metrics"
	"github.com/corpagent/reviewAPI/internal/rag/embedding"
	"github.com/corpagent/reviewAPI/internal/rag/llm"
	"github.com/corpagent/reviewAPI/internal/review/checklist"
	"github.com/corpagent/reviewAPI/internal/review/classify"
	"github.com/corpagent/reviewAPI/internal/review/extract"
	"github.com/corpagent/reviewAPI/pkg/logger_i"
)

// Service is the whole review pipeline behind one contract. The worker only
// sees this; the embedder, the LLM and the artifact store stay private to the
// implementation so tests can swap them for mocks.
type Service interface {
	AnnotateBatch(ctx context.Context, job jobModel.Job) jobModel.Job
	RAGReview(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	embedder    embedding.Embedder
	llmProvider llm.Provider
	artifacts   jobModel.ArtifactStore
	logger      *logger_i.Logger
}

func NewService(em embedding.Embedder, provider llm.Provider, artifacts jobModel.ArtifactStore) Service {
	return &service{
		embedder:    em,
		llmProvider: provider,
		artifacts:   artifacts,
		logger:      logger_i.NewLogger("Review Service :"),
	}
}

// AnnotateBatch runs extraction, classification, rule scanning and annotation
// per document, independently: a malformed or unwritable document is reported
// and skipped, never aborting the batch. Detected types feed the checklist.
func (s *service) AnnotateBatch(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)
	defer s.removeStagedFiles(jobt.JobPayload.Files)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("annotate_batch", time.Since(start)) }()

	var detectedTypes []reviewModel.DocumentType
	fileReports := make([]reviewModel.FileReport, 0, len(jobt.JobPayload.Files))
	var artifactNames []string

	jobt.CurrentStep = jobModel.Annotation
	for _, file := range jobt.JobPayload.Files {
		report, artifact, err := s.reviewOneDocument(ctx, file)
		if err != nil {
			//fatal for this document only
			inMethodLogger.Error("Document skipped", "file", file.Name, "error", err)
			fileReports = append(fileReports, reviewModel.FileReport{File: file.Name, Error: err.Error()})
			metrics.CountDocumentReviewed("annotate", "skipped")
			continue
		}

		metrics.CountDocumentReviewed("annotate", "ok")
		detectedTypes = append(detectedTypes, report.DetectedType)
		fileReports = append(fileReports, reviewModel.FileReport{File: file.Name, Report: report})

		if artifact != nil {
			if err := s.artifacts.SaveArtifact(ctx, jobt.Id, *artifact); err != nil {
				inMethodLogger.Error("Failed to store annotated copy", "file", artifact.Name, "error", err)
				continue
			}
			artifactNames = append(artifactNames, artifact.Name)
		}
	}

	result := checklist.Evaluate(detectedTypes)

	jobt.JobPayload.BatchSummary = &reviewModel.BatchSummary{
		Process:           result.Process,
		DocumentsUploaded: len(jobt.JobPayload.Files),
		DetectedTypes:     detectedTypes,
		RequiredDocuments: result.Required,
		DocumentsFound:    result.Found,
		MissingDocuments:  result.Missing,
		FileReports:       fileReports,
	}
	jobt.JobPayload.ArtifactNames = artifactNames
	jobt.CurrentStep = jobModel.Complete
	return jobt
}

// RAGReview pools every document's segments into one ephemeral vector index,
// retrieves the context closest to the caller's query, and asks the LLM for a
// narrative review. The index never outlives this call.
func (s *service) RAGReview(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)
	defer s.removeStagedFiles(jobt.JobPayload.Files)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("rag_review", time.Since(start)) }()

	var detectedTypes []reviewModel.DocumentType
	var fileNames []string
	var pool []string

	jobt.CurrentStep = jobModel.Extraction
	for _, file := range jobt.JobPayload.Files {
		segments, _, err := extract.FromFile(file.Path, file.Name)
		if err != nil {
			inMethodLogger.Error("Document skipped", "file", file.Name, "error", err)
			metrics.CountDocumentReviewed("rag", "skipped")
			continue
		}
		metrics.CountDocumentReviewed("rag", "ok")
		for _, seg := range segments {
			pool = append(pool, seg.Text)
		}
		detectedTypes = append(detectedTypes,
			classify.DetectSample(extract.JoinText(segments), config.ClassifierSampleSize))
		fileNames = append(fileNames, file.Name)
	}

	// Embedding
	vectors, err := s.executeEmbeddingStep(ctx, inMethodLogger, &jobt, pool)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Index build + retrieval
	contextBlocks, err := s.executeRetrievalStep(ctx, inMethodLogger, &jobt, pool, vectors)
	if err != nil {
		return s.jobError(jobt, err, "RETRIEVAL_FAILURE", true)
	}

	// LLM generation
	review, err := s.executeLLMStep(ctx, inMethodLogger, &jobt, contextBlocks)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	result := checklist.Evaluate(detectedTypes)

	jobt.JobPayload.RAGSummary = &reviewModel.RAGSummary{
		Process:           result.Process,
		DocumentsUploaded: len(jobt.JobPayload.Files),
		DetectedTypes:     detectedTypes,
		RequiredDocuments: result.Required,
		DocumentsFound:    result.Found,
		MissingDocuments:  result.Missing,
		FileNames:         fileNames,
		IssuesFound:       review,
	}
	jobt.JobPayload.Review = review
	jobt.JobPayload.Context = contextBlocks
	jobt.CurrentStep = jobModel.Complete
	return jobt
}

func (s *service) removeStagedFiles(files []jobModel.UploadedFile) {
	for _, file := range files {
		if err := os.Remove(file.Path); err != nil {
			s.logger.Error("Error removing staged file", "path", file.Path, "error", err)
		}
	}
}
