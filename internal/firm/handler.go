package firm

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vendora/service/internal/media"
	"github.com/vendora/service/internal/middleware"
	"github.com/vendora/service/internal/response"
	"github.com/vendora/service/internal/vendor"
)

// maxUploadBytes caps the in-memory portion of a multipart upload.
const maxUploadBytes = 10 << 20

// Handler holds HTTP handlers for firm endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new firm Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type addFirmResponse struct {
	Message        string  `json:"message"`
	FirmID         string  `json:"firmId"`
	VendorFirmName string  `json:"vendorFirmName"`
	ImageURL       *string `json:"imageUrl,omitempty"`
}

// AddFirm godoc
//
//	@Summary		Add a firm
//	@Description	Create the authenticated vendor's firm. A vendor can have only one firm. The optional image is stored under the "firms" namespace.
//	@Tags			firms
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			firmName	formData	string	true	"Firm name"
//	@Param			area		formData	string	false	"Area"
//	@Param			category	formData	string	false	"Category"
//	@Param			region		formData	string	false	"Region"
//	@Param			offer		formData	string	false	"Offer"
//	@Param			image		formData	file	false	"Firm image"
//	@Success		200			{object}	addFirmResponse
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		409			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/firms [post]
func (h *Handler) AddFirm(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := r.Context().Value(middleware.VendorIDKey).(string)
	if !ok || vendorID == "" {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	in := CreateInput{
		FirmName: r.FormValue("firmName"),
		Area:     r.FormValue("area"),
		Category: r.FormValue("category"),
		Region:   r.FormValue("region"),
		Offer:    r.FormValue("offer"),
	}
	if in.FirmName == "" {
		response.BadRequest(w, "firmName is required")
		return
	}

	file, hdr, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		in.Image = &media.Upload{Reader: file, Filename: hdr.Filename}
	case errors.Is(err, http.ErrMissingFile):
		// no upload, image stays absent
	default:
		response.BadRequest(w, "invalid image upload")
		return
	}

	f, err := h.svc.Create(r.Context(), vendorID, in)
	if errors.Is(err, vendor.ErrNotFound) {
		response.Message(w, http.StatusNotFound, "vendor not found")
		return
	}
	if errors.Is(err, ErrVendorHasFirm) {
		response.Message(w, http.StatusConflict, "vendor can have only one firm")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, addFirmResponse{
		Message:        "firm added successfully",
		FirmID:         f.ID,
		VendorFirmName: f.FirmName,
		ImageURL:       f.Image,
	})
}

// DeleteFirm godoc
//
//	@Summary		Delete a firm
//	@Description	Delete a firm by id. Its stored image is removed best-effort; the owning vendor's firm list is not pruned.
//	@Tags			firms
//	@Produce		json
//	@Security		BearerAuth
//	@Param			firmId	path		string	true	"Firm ID"
//	@Success		200		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/firms/{firmId} [delete]
func (h *Handler) DeleteFirm(w http.ResponseWriter, r *http.Request) {
	firmID := chi.URLParam(r, "firmId")

	err := h.svc.Delete(r.Context(), firmID)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "no firm found")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Message(w, http.StatusOK, "firm deleted successfully")
}
