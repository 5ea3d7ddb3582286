package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"

	"github.com/mkrogh/boldklub/internal/apperr"
	"github.com/mkrogh/boldklub/internal/repository"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// successEnvelope and errorEnvelope form the wire contract shared with the
// mutation controller.
type successEnvelope struct {
	Success  bool     `json:"success"`
	Data     any      `json:"data"`
	Warnings []string `json:"warnings,omitempty"`
}

type errorEnvelope struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Code    apperr.Code `json:"code"`
	Details any         `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, status int, data any, warnings []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data, Warnings: warnings}); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err *apperr.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Status)
	env := errorEnvelope{Error: err.Message, Code: err.Code, Details: err.Details}
	if encErr := json.NewEncoder(w).Encode(env); encErr != nil {
		log.Error("Failed to encode error response", "error", encErr)
	}
}

// fileFields are the multipart fields that carry attachments; everything else
// in a write request travels in the "data" JSON part.
var fileFields = []string{"images", "files"}

// imageOnlyFields restrict their attachments to image MIME types.
var imageOnlyFields = map[string]bool{"images": true}

// decodeWrite parses a create/update request body into dst. Multipart bodies
// carry a "data" JSON part plus file parts; plain JSON bodies carry the data
// alone. Attachments are sniffed, never trusted from the declared type.
func decodeWrite(r *http.Request, maxUploadBytes int64, dst any) (repository.FilesByField, *apperr.Error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return decodeMultipart(r, maxUploadBytes, dst)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return nil, bodyError(err)
	}
	return nil, nil
}

func decodeMultipart(r *http.Request, maxUploadBytes int64, dst any) (repository.FilesByField, *apperr.Error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, bodyError(err)
	}
	data := r.FormValue("data")
	if data == "" {
		return nil, apperr.Validation("Forespørgslen mangler data.")
	}
	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return nil, apperr.Validation("Forespørgslens data kunne ikke læses.").WithCause(err)
	}

	files := repository.FilesByField{}
	for _, field := range fileFields {
		for _, header := range r.MultipartForm.File[field] {
			upload, appErr := readUpload(field, header, maxUploadBytes)
			if appErr != nil {
				return nil, appErr
			}
			files[field] = append(files[field], upload)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}
	return files, nil
}

func readUpload(field string, header *multipart.FileHeader, maxUploadBytes int64) (strapi.UploadFile, *apperr.Error) {
	if header.Size > maxUploadBytes {
		return strapi.UploadFile{}, apperr.FileTooLarge(fmt.Sprintf("Filen %q er for stor.", header.Filename)).
			WithDetails(map[string]any{"field": field, "size": header.Size, "max": maxUploadBytes})
	}

	f, err := header.Open()
	if err != nil {
		return strapi.UploadFile{}, apperr.Internal("").WithCause(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return strapi.UploadFile{}, bodyError(err)
	}

	detected := mimetype.Detect(data)
	if !allowedUpload(field, detected) {
		return strapi.UploadFile{}, apperr.InvalidFileType(fmt.Sprintf("Filtypen %s understøttes ikke.", detected.String())).
			WithDetails(map[string]any{"field": field, "file": header.Filename, "mime": detected.String()})
	}

	return strapi.UploadFile{Name: header.Filename, ContentType: detected.String(), Data: data}, nil
}

// allowedUpload gates attachments by sniffed MIME type: images must be
// images; the general files field also accepts PDFs.
func allowedUpload(field string, detected *mimetype.MIME) bool {
	isImage := strings.HasPrefix(detected.String(), "image/")
	if imageOnlyFields[field] {
		return isImage
	}
	return isImage || detected.Is("application/pdf")
}

// bodyError classifies read failures, surfacing the body-size cap as
// file-too-large rather than a generic internal error.
func bodyError(err error) *apperr.Error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return apperr.FileTooLarge("Forespørgslen er for stor.").WithCause(err)
	}
	return apperr.Validation("Forespørgslen kunne ikke læses.").WithCause(err)
}
