package media

import (
	"log/slog"
	"net/http"

	"github.com/sk-equipments/storefront/internal/platform/httpx"
)

// Handler exposes the admin image upload endpoint.
type Handler struct {
	logger   *slog.Logger
	client   *Client
	maxBytes int64
}

// NewHandler constructs a Handler. maxBytes bounds the accepted request body.
func NewHandler(logger *slog.Logger, client *Client, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &Handler{logger: logger, client: client, maxBytes: maxBytes}
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl,omitempty"`
	PublicID string `json:"publicId,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Upload accepts a multipart image and forwards it to the image host.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		httpx.JSON(w, http.StatusBadRequest, uploadResponse{Error: "image too large or malformed"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, uploadResponse{Error: "image field is required"})
		return
	}
	defer file.Close()

	result, err := h.client.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Error("image upload failed", slog.Any("error", err), slog.String("filename", header.Filename))
		httpx.JSON(w, http.StatusBadGateway, uploadResponse{Error: "upload failed"})
		return
	}

	h.logger.Info("image uploaded", slog.String("public_id", result.PublicID))
	httpx.JSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		ImageURL: result.SecureURL,
		PublicID: result.PublicID,
	})
}
