package handlers

import (
	"fmt"
	"net/http"

	"github.com/corpagent/reviewAPI/internal/adapter"
	"github.com/corpagent/reviewAPI/internal/adapter/utils"
	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/domain/jobModel"
	"github.com/corpagent/reviewAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

// technically i dont need this
// but i want to eventually remove jobHandler from handlers and set it in another package
// so in anticipation for that this struct exists
type newJobData struct {
	id      string
	traceId string
	jobType jobModel.JobType
	files   []jobModel.UploadedFile
	query   string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// PostReviewHandler godoc
// @Summary      Review uploaded documents
// @Description  Receives one or more docx/pdf/txt files via multipart/form-data, stages them, and queues an annotation review job.
// @Tags         Review
// @Accept       multipart/form-data
// @Produce      json
// @Param        documents  formData  file  true  "The documents to review (repeat the field for multiple files)"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Missing files or file too large"
// @Failure      500  {object}  api.JobResponse      "Storage or write error"
// @Router       /review [post]
func PostReviewHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		staged, ok := stageUploadedFiles(w, r)
		if !ok {
			return
		}
		processNewJobData(r, w, jobModel.JobTypeAnnotate, staged, "")
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// PostRAGReviewHandler godoc
// @Summary      Retrieval-augmented review of uploaded documents
// @Description  Receives files plus a query via multipart/form-data and queues a retrieval review job. The answer cites context pulled from the uploaded documents.
// @Tags         Review
// @Accept       multipart/form-data
// @Produce      json
// @Param        documents  formData  file    true  "The documents to review"
// @Param        query      formData  string  true  "The review question or instruction"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Missing files, missing query, or file too large"
// @Failure      500  {object}  api.JobResponse      "Storage or write error"
// @Router       /review/rag [post]
func PostRAGReviewHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		staged, ok := stageUploadedFiles(w, r)
		if !ok {
			return
		}

		query := r.FormValue("query")
		if query == "" {
			removeStaged(staged)
			WriteErrorResponse(w, http.StatusBadRequest, "", "query is required")
			return
		}
		processNewJobData(r, w, jobModel.JobTypeRAG, staged, query)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Job Status
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found (returns Error object within JobResponse)"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		//use chi get the url id
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// GetReviewedFileHandler godoc
// @Summary      Download a reviewed document
// @Description  Streams an annotated docx produced by a completed review job.
// @Tags         Review
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id    path  string  true  "Job ID"
// @Param        name  path  string  true  "Reviewed file name as listed in the job result"
// @Success      200  {file}    file             "The annotated document"
// @Failure      404  {object}  api.JobResponse  "Job or file not found"
// @Router       /review/{id}/files/{name} [get]
func GetReviewedFileHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		jobId := utils.GetChiURLParam(r, "id")
		name := utils.GetChiURLParam(r, "name")
		if jobId == "" || name == "" {
			WriteErrorResponse(w, http.StatusNotFound, jobId, "File not found")
			return
		}

		artifact, isFound := GetJobArtifact(jobId, name, r.Context().Value(config.TRACE_ID_KEY).(string))
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, jobId, "File not found")
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Name))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(artifact.Data); err != nil {
			logRH.Error("Error writing reviewed file:", "name", artifact.Name, "error:", err)
		}
	}
}

func processNewJobData(request *http.Request, w http.ResponseWriter, jobType jobModel.JobType, files []jobModel.UploadedFile, query string) {
	newJob := newJobData{
		id:      utils.GetNewUUID(),
		traceId: request.Context().Value(config.TRACE_ID_KEY).(string),
		jobType: jobType,
		files:   files,
		query:   query,
	}
	CreateNewJob(newJob)
	res := adapter.ToInitJobResponse(newJob.id)
	writeJsonResponse(w, http.StatusAccepted, res)
}
