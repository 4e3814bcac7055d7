package review

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/domain/jobModel"
	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
	"github.com/corpagent/reviewAPI/internal/metrics"
	"github.com/corpagent/reviewAPI/internal/rag/vectorindex"
	"github.com/corpagent/reviewAPI/internal/review/annotate"
	"github.com/corpagent/reviewAPI/internal/review/classify"
	"github.com/corpagent/reviewAPI/internal/review/extract"
	"github.com/corpagent/reviewAPI/internal/review/rules"
	"github.com/corpagent/reviewAPI/pkg/logger_i"
)

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	job.Error = jobModel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func logStep(job *jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) {
	job.CurrentStep = status
	log.Debug("review step", "Current Status", job.CurrentStep)
}

// reviewOneDocument classifies and rule-scans one staged upload. DOCX gets the
// full annotate treatment and yields an artifact; read-only formats yield a
// report with no annotated copy.
func (s *service) reviewOneDocument(ctx context.Context, file jobModel.UploadedFile) (reviewModel.Report, *reviewModel.Artifact, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("annotate_document", time.Since(start)) }()

	if extract.KindOf(file.Path) == extract.DOCX {
		raw, err := os.ReadFile(file.Path)
		if err != nil {
			return reviewModel.Report{}, nil, &extract.MalformedDocumentError{Name: file.Name, Err: err}
		}
		res, err := annotate.Run(raw, file.Name)
		if err != nil {
			return reviewModel.Report{}, nil, err
		}
		artifact := &reviewModel.Artifact{Name: annotate.ReviewedName(file.Name), Data: res.Data}
		return res.Report, artifact, nil
	}

	segments, _, err := extract.FromFile(file.Path, file.Name)
	if err != nil {
		return reviewModel.Report{}, nil, err
	}
	fullText := extract.JoinText(segments)
	report := reviewModel.Report{
		DetectedType: classify.Detect(fullText),
		Comments:     annotate.CommentsFromIssues(rules.Scan(segments, fullText)),
	}
	return report, nil, nil
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, pool []string) ([][]float32, error) {
	logStep(job, jobModel.EmbeddingAPICall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.BatchEmbedding(ctx, pool)
}

func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, pool []string, vectors [][]float32) ([]string, error) {
	logStep(job, jobModel.IndexBuild, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	index, err := vectorindex.Build(pool, vectors)
	if err != nil {
		return nil, err
	}
	if index.Len() == 0 {
		return nil, nil
	}

	logStep(job, jobModel.Retrieval, log)
	queryVector, err := s.embedder.GetEmbedding(ctx, job.JobPayload.Query)
	if err != nil {
		return nil, err
	}

	matches := index.Search(queryVector, config.RetrievalTopK)
	contextBlocks := make([]string, 0, len(matches))
	for _, m := range matches {
		contextBlocks = append(contextBlocks, m.Text)
	}
	return contextBlocks, nil
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, contextBlocks []string) (string, error) {
	logStep(job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, job.JobPayload.Query, contextBlocks)
}
