package review_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/domain/jobModel"
	"github.com/corpagent/reviewAPI/internal/domain/reviewModel"
	"github.com/corpagent/reviewAPI/internal/review"
	"github.com/unidoc/unioffice/v2/document"
)

func stageFile(t *testing.T, name string, data []byte) jobModel.UploadedFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return jobModel.UploadedFile{Name: name, Path: path}
}

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

func testCtx() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestAnnotateBatch_EndToEnd(t *testing.T) {
	docxFile := stageFile(t, "articles.docx", buildDocx(t, []string{
		"Articles of Association of Example Ltd",
		"Disputes go to the Dubai Courts.",
	}))
	txtFile := stageFile(t, "notes.txt", []byte("Memorandum of association listing the subscribers.\nSigned.\n"))

	artifacts := NewMockArtifactStore()
	svc := review.NewService(&MockEmbedder{}, &MockLLM{}, artifacts)

	job := jobModel.Job{
		Id: "job-1",
		JobPayload: jobModel.JobPayload{
			Files: []jobModel.UploadedFile{docxFile, txtFile},
		},
	}

	result := svc.AnnotateBatch(testCtx(), job)

	if result.Status == jobModel.JobStatusError {
		t.Fatalf("batch failed: %+v", result.Error)
	}
	if result.CurrentStep != jobModel.Complete {
		t.Errorf("current step got %q, want Complete", result.CurrentStep)
	}

	summary := result.JobPayload.BatchSummary
	if summary == nil {
		t.Fatal("batch summary missing")
	}
	if summary.DocumentsUploaded != 2 {
		t.Errorf("documents uploaded got %d, want 2", summary.DocumentsUploaded)
	}
	if summary.Process != "Company Incorporation" {
		t.Errorf("process got %q, want Company Incorporation", summary.Process)
	}
	if summary.DocumentsFound != 2 {
		t.Errorf("documents found got %d, want 2", summary.DocumentsFound)
	}
	if len(summary.FileReports) != 2 {
		t.Fatalf("got %d file reports, want 2", len(summary.FileReports))
	}

	docxReport := summary.FileReports[0]
	if docxReport.Report.DetectedType != reviewModel.ArticlesOfAssociation {
		t.Errorf("docx detected type got %q", docxReport.Report.DetectedType)
	}
	if len(docxReport.Report.Comments) == 0 {
		t.Error("docx report should carry comments for the jurisdiction issue")
	}

	//only the docx yields an annotated copy
	if len(result.JobPayload.ArtifactNames) != 1 {
		t.Fatalf("got %d artifacts, want 1", len(result.JobPayload.ArtifactNames))
	}
	wantName := "articles_reviewed.docx"
	if result.JobPayload.ArtifactNames[0] != wantName {
		t.Errorf("artifact name got %q, want %q", result.JobPayload.ArtifactNames[0], wantName)
	}
	stored, found := artifacts.GetArtifact(testCtx(), "job-1", wantName)
	if !found {
		t.Fatal("annotated copy was not stored")
	}
	if len(stored.Data) == 0 {
		t.Error("stored artifact is empty")
	}

	//staged files are removed after the batch
	if _, err := os.Stat(docxFile.Path); !os.IsNotExist(err) {
		t.Error("staged docx was not cleaned up")
	}
	if _, err := os.Stat(txtFile.Path); !os.IsNotExist(err) {
		t.Error("staged txt was not cleaned up")
	}
}

func TestAnnotateBatch_MalformedDocumentIsSkipped(t *testing.T) {
	broken := stageFile(t, "broken.docx", []byte("not a zip container"))
	good := stageFile(t, "good.docx", buildDocx(t, []string{"Incorporation application. Signed in ADGM."}))

	artifacts := NewMockArtifactStore()
	svc := review.NewService(&MockEmbedder{}, &MockLLM{}, artifacts)

	result := svc.AnnotateBatch(testCtx(), jobModel.Job{
		Id:         "job-2",
		JobPayload: jobModel.JobPayload{Files: []jobModel.UploadedFile{broken, good}},
	})

	summary := result.JobPayload.BatchSummary
	if summary == nil {
		t.Fatal("batch summary missing")
	}
	if len(summary.FileReports) != 2 {
		t.Fatalf("got %d file reports, want 2", len(summary.FileReports))
	}
	if summary.FileReports[0].Error == "" {
		t.Error("the malformed document should carry an error in its report")
	}
	if summary.FileReports[1].Error != "" {
		t.Errorf("the good document should not carry an error, got %q", summary.FileReports[1].Error)
	}
	//the malformed document contributes no detected type
	if len(summary.DetectedTypes) != 1 {
		t.Errorf("got %d detected types, want 1", len(summary.DetectedTypes))
	}
}

func TestRAGReview_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(e *MockEmbedder, l *MockLLM)
		expectedStatus jobModel.JobStatus
		expectedReview string
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, blocks []string) (string, error) {
					return "structured legal review", nil
				}
			},
			expectedStatus: jobModel.JobStatus(""),
			expectedReview: "structured legal review",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, l *MockLLM) {
				e.OnBatchEmbedding = func(ctx context.Context, chunks []string) ([][]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Query_Embedding",
			setupMocks: func(e *MockEmbedder, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, q string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, blocks []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := stageFile(t, "articles.txt",
				[]byte("Articles of association.\nShare capital is one dirham.\nSigned.\n"))

			mEmbed := &MockEmbedder{
				OnBatchEmbedding: func(ctx context.Context, chunks []string) ([][]float32, error) {
					vectors := make([][]float32, len(chunks))
					for i := range vectors {
						vectors[i] = []float32{float32(i), 1}
					}
					return vectors, nil
				},
				OnGetEmbedding: func(ctx context.Context, q string) ([]float32, error) {
					return []float32{0, 1}, nil
				},
			}
			mLLM := &MockLLM{}
			tt.setupMocks(mEmbed, mLLM)

			svc := review.NewService(mEmbed, mLLM, NewMockArtifactStore())
			job := jobModel.Job{
				Id: "rag-job",
				JobPayload: jobModel.JobPayload{
					Files: []jobModel.UploadedFile{file},
					Query: "review these documents",
				},
			}

			result := svc.RAGReview(testCtx(), job)

			if result.Status != tt.expectedStatus {
				t.Errorf("status got %q, want %q", result.Status, tt.expectedStatus)
			}

			if tt.expectedStatus == jobModel.JobStatusError {
				if result.Error.Code != http.StatusInternalServerError {
					t.Errorf("error code got %d, want 500", result.Error.Code)
				}
				if !result.Error.Retry {
					t.Error("pipeline failures should be retryable")
				}
				return
			}

			if result.CurrentStep != jobModel.Complete {
				t.Errorf("current step got %q, want Complete", result.CurrentStep)
			}
			if result.JobPayload.Review != tt.expectedReview {
				t.Errorf("review got %q, want %q", result.JobPayload.Review, tt.expectedReview)
			}

			summary := result.JobPayload.RAGSummary
			if summary == nil {
				t.Fatal("rag summary missing")
			}
			if summary.IssuesFound != tt.expectedReview {
				t.Errorf("summary review got %q, want %q", summary.IssuesFound, tt.expectedReview)
			}
			if len(summary.FileNames) != 1 || summary.FileNames[0] != "articles.txt" {
				t.Errorf("file names got %v", summary.FileNames)
			}
			if summary.Process != "Company Incorporation" {
				t.Errorf("process got %q", summary.Process)
			}
			if len(result.JobPayload.Context) == 0 || len(result.JobPayload.Context) > config.RetrievalTopK {
				t.Errorf("context block count got %d, want between 1 and %d",
					len(result.JobPayload.Context), config.RetrievalTopK)
			}
		})
	}
}

func TestRAGReview_RetrievalRanksByDistance(t *testing.T) {
	file := stageFile(t, "doc.txt", []byte("alpha\nbravo\ncharlie\ndelta\n"))

	var generatedWith []string
	mEmbed := &MockEmbedder{
		OnBatchEmbedding: func(ctx context.Context, chunks []string) ([][]float32, error) {
			//place chunk i at x=i
			vectors := make([][]float32, len(chunks))
			for i := range vectors {
				vectors[i] = []float32{float32(i)}
			}
			return vectors, nil
		},
		OnGetEmbedding: func(ctx context.Context, q string) ([]float32, error) {
			return []float32{3}, nil //nearest to "delta"
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, blocks []string) (string, error) {
			generatedWith = blocks
			return "done", nil
		},
	}

	svc := review.NewService(mEmbed, mLLM, NewMockArtifactStore())
	result := svc.RAGReview(testCtx(), jobModel.Job{
		Id: "rag-rank",
		JobPayload: jobModel.JobPayload{
			Files: []jobModel.UploadedFile{file},
			Query: "anything",
		},
	})

	if result.Status == jobModel.JobStatusError {
		t.Fatalf("rag flow failed: %+v", result.Error)
	}
	want := []string{"delta", "charlie", "bravo"}
	if len(generatedWith) != len(want) {
		t.Fatalf("llm got %d context blocks, want %d", len(generatedWith), len(want))
	}
	for i := range want {
		if generatedWith[i] != want[i] {
			t.Errorf("context block %d got %q, want %q", i, generatedWith[i], want[i])
		}
	}
}

func TestRAGReview_EmptyPoolSkipsRetrieval(t *testing.T) {
	//a file that cannot be read leaves the pool empty
	file := jobModel.UploadedFile{Name: "ghost.txt", Path: filepath.Join(t.TempDir(), "missing.txt")}

	queryEmbedCalled := false
	mEmbed := &MockEmbedder{
		OnGetEmbedding: func(ctx context.Context, q string) ([]float32, error) {
			queryEmbedCalled = true
			return []float32{0}, nil
		},
	}
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, q string, blocks []string) (string, error) {
			if len(blocks) != 0 {
				t.Errorf("expected no context blocks, got %v", blocks)
			}
			return "no context review", nil
		},
	}

	svc := review.NewService(mEmbed, mLLM, NewMockArtifactStore())
	result := svc.RAGReview(testCtx(), jobModel.Job{
		Id: "rag-empty",
		JobPayload: jobModel.JobPayload{
			Files: []jobModel.UploadedFile{file},
			Query: "anything",
		},
	})

	if result.Status == jobModel.JobStatusError {
		t.Fatalf("empty pool should not fail the job: %+v", result.Error)
	}
	if queryEmbedCalled {
		t.Error("query embedding should be skipped when the index is empty")
	}
	if result.JobPayload.Review != "no context review" {
		t.Errorf("review got %q", result.JobPayload.Review)
	}
}
