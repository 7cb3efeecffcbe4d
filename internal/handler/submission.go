// internal/handler/submission.go
package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/serializer"
	"github.com/dangerclosesec/onboarding/internal/service"
	"github.com/go-playground/form/v4"
)

var formDecoder = form.NewDecoder()

// errFormValues marks form fields that could not be decoded, such as a
// malformed is_password_protected flag.
var errFormValues = errors.New("invalid form values")

// multipartMemory is how much of a multipart body is buffered in memory
// before file parts spill to disk.
const multipartMemory = 8 << 20

type SubmissionHandler struct {
	submissionService *service.SubmissionService
	maxBodyBytes      int64
}

// NewSubmissionHandler creates the handler. maxBodyBytes bounds the whole
// request body; zero disables the bound.
func NewSubmissionHandler(submissionService *service.SubmissionService, maxBodyBytes int64) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, maxBodyBytes: maxBodyBytes}
}

// CRMSummary is the mirror outcome returned with a new submission.
type CRMSummary struct {
	Status string `json:"status"`
	*service.SyncReport
}

type SubmissionResponse struct {
	DataResponse
	CRM *CRMSummary `json:"crm,omitempty"`
}

// Create handles POST /api/submissions/.
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		respondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	var files map[string][]*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File
	}

	input, closers, err := parseSubmissionForm(r.Form, files)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	if errors.Is(err, errFormValues) {
		respondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload")
		return
	}

	result, err := h.submissionService.Create(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	view, err := serializer.View(r.Context(), result.Submission)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	resp := SubmissionResponse{
		DataResponse: DataResponse{
			BaseResponse: BaseResponse{Ok: true},
			Type:         string(result.Submission.Kind()),
			Data:         view,
		},
	}
	if result.CRM != nil {
		resp.CRM = &CRMSummary{Status: result.CRM.Status(), SyncReport: result.CRM}
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

// parseSubmissionForm maps form values onto SubmissionInput using its form
// tags. The variant is chosen once from submission_type, which also picks
// the slot field prefix. Every file part becomes an image upload; the
// returned closers must be closed once the upload has been consumed.
func parseSubmissionForm(values url.Values, files map[string][]*multipart.FileHeader) (service.SubmissionInput, []io.Closer, error) {
	var in service.SubmissionInput
	if err := formDecoder.Decode(&in, values); err != nil {
		return in, nil, fmt.Errorf("%w: %v", errFormValues, err)
	}
	in.Kind = model.KindFromForm(values.Get("submission_type"))

	prefix := "pillar"
	if in.Kind == model.KindOrganization {
		prefix = "service"
	}
	for i := range in.Slots {
		key := fmt.Sprintf("%s_%d", prefix, i+1)
		in.Slots[i] = model.Pillar{
			Label:       values.Get(key),
			Description: values.Get(key + "_desc"),
		}
	}

	var closers []io.Closer
	if len(files) > 0 {
		in.Images = make(map[string]service.ImageUpload, len(files))
	}
	for field, headers := range files {
		if len(headers) == 0 {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			return in, closers, fmt.Errorf("opening %s: %w", field, err)
		}
		closers = append(closers, f)
		in.Images[field] = service.ImageUpload{Filename: headers[0].Filename, Content: f}
	}

	return in, closers, nil
}
