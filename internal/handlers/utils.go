package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/corpagent/reviewAPI/internal/adapter"
	"github.com/corpagent/reviewAPI/internal/config"
	"github.com/corpagent/reviewAPI/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY).(string))
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

// stageUploadedFiles copies every multipart "documents" part to the staging
// directory and returns the handles the worker will read and remove. On any
// failure it writes the error response, cleans up what was already staged,
// and returns ok=false.
func stageUploadedFiles(w http.ResponseWriter, r *http.Request) ([]jobModel.UploadedFile, bool) {
	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return nil, false
	}

	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return nil, false
	}

	parts := r.MultipartForm.File["documents"]
	if len(parts) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "at least one document is required")
		return nil, false
	}

	var staged []jobModel.UploadedFile
	for _, part := range parts {
		displayName := filepath.Base(part.Filename)

		fileReader, err := part.Open()
		if err != nil {
			removeStaged(staged)
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return nil, false
		}

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), displayName)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			fileReader.Close()
			removeStaged(staged)
			WriteErrorResponse(w, http.StatusInternalServerError, displayName, "Storage error")
			return nil, false
		}

		_, err = io.Copy(destinationFileWriter, fileReader)
		fileReader.Close()
		destinationFileWriter.Close()
		if err != nil {
			removeStaged(staged)
			WriteErrorResponse(w, http.StatusInternalServerError, displayName, "Write error")
			return nil, false
		}

		staged = append(staged, jobModel.UploadedFile{Name: displayName, Path: tempFilePath})
	}
	return staged, true
}

func removeStaged(files []jobModel.UploadedFile) {
	for _, f := range files {
		if err := os.Remove(f.Path); err != nil {
			logRH.Warn("Couldn't remove staged file", "path", f.Path, "error:", err)
		}
	}
}
