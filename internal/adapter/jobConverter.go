package adapter

import (
	"fmt"
	"time"

	"github.com/corpagent/reviewAPI/internal/api"
	"github.com/corpagent/reviewAPI/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id), //pass "status/job.Id"
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:      string(job.Status),
		BatchReview: ToBatchReviewResponse(job.JobPayload),
		RAGReview:   ToRAGReviewResponse(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToBatchReviewResponse(payload jobModel.JobPayload) *api.BatchReviewResponse {
	if payload.BatchSummary == nil {
		return nil
	}

	return &api.BatchReviewResponse{
		Summary:       *payload.BatchSummary,
		ReviewedFiles: payload.ArtifactNames,
	}
}

func ToRAGReviewResponse(payload jobModel.JobPayload) *api.RAGReviewResponse {
	if payload.RAGSummary == nil && payload.Review == "" {
		return nil
	}

	response := &api.RAGReviewResponse{
		Query:   payload.Query,
		Review:  payload.Review,
		Context: payload.Context,
	}
	if payload.RAGSummary != nil {
		response.Summary = *payload.RAGSummary
	}
	return response
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
