// Package httpapi exposes the reference server over JSON/HTTP: /login,
// /userend and /feedMediaUploadURL.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/feedmedia/internal/common"
	"github.com/dmitrijs2005/feedmedia/internal/logging"
	"github.com/dmitrijs2005/feedmedia/internal/server/models"
	"github.com/go-chi/render"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

type UserService interface {
	Login(ctx context.Context, handle, password string) (string, error)
	CreateUserEnd(ctx context.Context, userID string) (*models.UserEnd, string, error)
}

type MediaService interface {
	UploadURL(ctx context.Context, userID, userEndID, fileName string) (*models.UploadTarget, error)
}

type Handler struct {
	users     UserService
	media     MediaService
	logger    logging.Logger
	jwtSecret []byte
}

func NewHandler(us UserService, ms MediaService, l logging.Logger, secretKey string) *Handler {
	return &Handler{
		users:     us,
		media:     ms,
		logger:    l.With("module", "http_api"),
		jwtSecret: []byte(secretKey),
	}
}

type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type userEndResponse struct {
	ID string `json:"id"`
}

type uploadURLRequest struct {
	FileName string `json:"fileName"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Access denied", http.StatusBadRequest)
		return
	}

	token, err := h.users.Login(r.Context(), req.Handle, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "login refused", "handle", req.Handle, "error", err)
		http.Error(w, "Access denied", http.StatusBadRequest)
		return
	}

	w.Header().Set(common.TokenHeaderName, token)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) createUserEnd(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	ue, token, err := h.users.CreateUserEnd(r.Context(), claims.UserID)
	if err != nil {
		h.logger.Error(r.Context(), "userend creation failed", "user_id", claims.UserID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set(common.TokenHeaderName, token)
	render.Status(r, http.StatusOK)
	render.JSON(w, r, userEndResponse{ID: ue.ID})
}

func (h *Handler) feedMediaUploadURL(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req uploadURLRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	target, err := h.media.UploadURL(r.Context(), claims.UserID, claims.UserEndID, req.FileName)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrUnknownFileType):
		h.logger.Warn(r.Context(), "unknown file type", "file_name", req.FileName)
		http.Error(w, "Unknown file type", http.StatusBadRequest)
		return
	case errors.Is(err, common.ErrorUnauthorized):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	default:
		h.logger.Error(r.Context(), "upload url failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, target)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return render.DecodeJSON(r.Body, dst)
}
