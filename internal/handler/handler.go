// Package handler binds HTTP requests to the usecases.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GoArmGo/MovieCatalog/internal/apperrors"
	"github.com/GoArmGo/MovieCatalog/internal/listquery"
	"github.com/GoArmGo/MovieCatalog/internal/usecase"
)

const maxBodySize = 1 << 20

// respondWithJSON sends payload as a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError sends {"error": message}.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

func respondWithMessage(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"message": message}, logger)
}

// respondWithAppError maps the kind of err to the HTTP status.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "status", code, "error", err)
	}
	respondWithError(w, code, apperrors.MessageOf(err), logger)
}

func statusOf(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrorTypeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return nil, apperrors.BadRequest("failed to read request body")
	}
	if len(body) > maxBodySize {
		return nil, apperrors.BadRequest("request body is too large")
	}
	return body, nil
}

// decodeJSON reads the request body into dest. An empty body leaves dest untouched.
func decodeJSON(r *http.Request, dest any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	return nil
}

// pathID reads a positive integer URL parameter.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id < 1 {
		return 0, apperrors.BadRequest(name + " must be a positive integer")
	}
	return id, nil
}

func pageOf(r *http.Request) (listquery.Page, error) {
	return listquery.ParsePage(r.URL.Query(), listquery.DefaultPerPage)
}

// readUpload returns the multipart "file" field. The caller closes the file.
func readUpload(w http.ResponseWriter, r *http.Request) (usecase.Upload, io.Closer, error) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadSize+maxBodySize)
	if err := r.ParseMultipartForm(usecase.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return usecase.Upload{}, nil, apperrors.BadRequest("file is larger than 5 MiB")
		}
		return usecase.Upload{}, nil, apperrors.BadRequest("invalid multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return usecase.Upload{}, nil, apperrors.BadRequest("file is required")
	}
	return usecase.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, file, nil
}
