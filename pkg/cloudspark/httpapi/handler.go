// Package httpapi exposes presigned-URL issuance over HTTP for browser
// clients that must not hold storage credentials.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/muhammedrahil/cloudspark/pkg/cloudspark"
	"github.com/muhammedrahil/cloudspark/pkg/cloudspark/postpolicy"
)

// URLIssuer is the slice of the session the handler needs.
type URLIssuer interface {
	PresignedCreateURL(ctx context.Context, req cloudspark.CreateURLRequest) (*cloudspark.PresignedUpload, error)
	PresignedGetURL(ctx context.Context, objectKey string, opts ...cloudspark.URLOption) (string, error)
	PresignedDeleteURL(ctx context.Context, objectKey string, opts ...cloudspark.URLOption) (string, error)
}

// Handler serves the presign endpoints.
type Handler struct {
	issuer URLIssuer
}

// NewHandler creates a presign handler backed by the given issuer.
func NewHandler(issuer URLIssuer) *Handler {
	return &Handler{issuer: issuer}
}

// Routes returns the router for presign endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload", h.CreateUploadURL)
	r.Get("/download/*", h.CreateDownloadURL)
	r.Delete("/object/*", h.CreateDeleteURL)
	r.Post("/policy/decode", h.DecodePolicy)
	return r
}

// CreateUploadURLRequest is the request to presign a browser-form upload.
type CreateUploadURLRequest struct {
	ObjectKey    string `json:"object_key,omitempty"`
	ExpiresIn    *int64 `json:"expires_in,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	MaxSizeBytes int64  `json:"max_size_bytes,omitempty"`
}

// CreateUploadURLResponse carries the upload endpoint and the form fields
// the browser must submit with the file.
type CreateUploadURLResponse struct {
	URL       string            `json:"url"`
	Fields    map[string]string `json:"fields"`
	ObjectKey string            `json:"object_key"`
}

// URLResponse carries a single presigned URL.
type URLResponse struct {
	URL string `json:"url"`
}

// DecodePolicyRequest is the request to decode a Base64 policy document.
type DecodePolicyRequest struct {
	Policy string `json:"policy"`
}

// DecodePolicyResponse carries the decoded policy as indented JSON.
type DecodePolicyResponse struct {
	Policy string `json:"policy"`
}

// CreateUploadURL presigns a browser-form upload. An empty object key gets
// a generated one so every upload lands under a distinct name.
func (h *Handler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	var req CreateUploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Fail to decode request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	objectKey := req.ObjectKey
	if objectKey == "" {
		objectKey = uuid.New().String()
	}

	createReq := cloudspark.CreateURLRequest{
		ObjectKey: objectKey,
		ExpiresIn: req.ExpiresIn,
	}
	if req.ContentType != "" {
		createReq.Conditions = append(createReq.Conditions,
			postpolicy.Equals{Field: "Content-Type", Value: req.ContentType})
		createReq.Fields = map[string]string{"Content-Type": req.ContentType}
	}
	if req.MaxSizeBytes > 0 {
		createReq.Conditions = append(createReq.Conditions,
			postpolicy.ContentLengthRange{Min: 0, Max: req.MaxSizeBytes})
	}

	upload, err := h.issuer.PresignedCreateURL(r.Context(), createReq)
	if err != nil {
		writeError(w, "presign upload", err)
		return
	}

	render.JSON(w, r, CreateUploadURLResponse{
		URL:       upload.URL,
		Fields:    upload.Fields,
		ObjectKey: objectKey,
	})
}

// CreateDownloadURL presigns a download URL for the object named by the
// wildcard path.
func (h *Handler) CreateDownloadURL(w http.ResponseWriter, r *http.Request) {
	objectKey := chi.URLParam(r, "*")

	url, err := h.issuer.PresignedGetURL(r.Context(), objectKey)
	if err != nil {
		writeError(w, "presign download", err)
		return
	}
	render.JSON(w, r, URLResponse{URL: url})
}

// CreateDeleteURL presigns a delete URL for the object named by the
// wildcard path.
func (h *Handler) CreateDeleteURL(w http.ResponseWriter, r *http.Request) {
	objectKey := chi.URLParam(r, "*")

	url, err := h.issuer.PresignedDeleteURL(r.Context(), objectKey)
	if err != nil {
		writeError(w, "presign delete", err)
		return
	}
	render.JSON(w, r, URLResponse{URL: url})
}

// DecodePolicy decodes a Base64 policy document for inspection.
func (h *Handler) DecodePolicy(w http.ResponseWriter, r *http.Request) {
	var req DecodePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Fail to decode request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pretty, err := cloudspark.PolicyDecode(req.Policy)
	if err != nil {
		writeError(w, "decode policy", err)
		return
	}
	render.JSON(w, r, DecodePolicyResponse{Policy: pretty})
}

// writeError maps library errors onto HTTP statuses: caller mistakes are
// 400, a missing bucket binding is 409, provider rejections are 502.
func writeError(w http.ResponseWriter, op string, err error) {
	var verr *cloudspark.ValidationError
	var cerr *cloudspark.ConfigurationError
	var perr *cloudspark.ProviderError

	switch {
	case errors.As(err, &verr):
		slog.Warn("Invalid request", "op", op, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &cerr):
		slog.Error("Session not configured", "op", op, "error", err)
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &perr):
		slog.Error("Provider rejected request", "op", op, "code", perr.Code, "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		slog.Error("Unexpected error", "op", op, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
