package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vendora/service/internal/firm"
	"github.com/vendora/service/internal/media"
	"github.com/vendora/service/internal/response"
)

// maxUploadBytes caps the in-memory portion of a multipart upload.
const maxUploadBytes = 10 << 20

// Handler holds HTTP handlers for product endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new product Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// AddProduct godoc
//
//	@Summary		Add a product
//	@Description	Create a product under an existing firm. The optional image is stored under the "product_images" namespace; without an upload the stored reference is the empty string.
//	@Tags			products
//	@Accept			mpfd
//	@Produce		json
//	@Param			firmId		path		string	true	"Firm ID"
//	@Param			productName	formData	string	true	"Product name"
//	@Param			price		formData	number	false	"Price"
//	@Param			category	formData	string	false	"Category"
//	@Param			bestSeller	formData	boolean	false	"Best seller flag"
//	@Param			description	formData	string	false	"Description"
//	@Param			image		formData	file	false	"Product image"
//	@Success		200			{object}	Product
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/firms/{firmId}/products [post]
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	firmID := chi.URLParam(r, "firmId")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	in := CreateInput{
		ProductName: r.FormValue("productName"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
	}
	if in.ProductName == "" {
		response.BadRequest(w, "productName is required")
		return
	}
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(w, "price must be a number")
			return
		}
		in.Price = price
	}
	in.BestSeller = r.FormValue("bestSeller") == "true"

	file, hdr, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		in.Image = &media.Upload{Reader: file, Filename: hdr.Filename}
	case errors.Is(err, http.ErrMissingFile):
		// no upload, image stays the empty reference
	default:
		response.BadRequest(w, "invalid image upload")
		return
	}

	p, err := h.svc.Create(r.Context(), firmID, in)
	if errors.Is(err, firm.ErrNotFound) {
		response.NotFound(w, "no firm found")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, p)
}

// GetProductsByFirm godoc
//
//	@Summary		List products of a firm
//	@Description	Returns the firm's display name and all its products.
//	@Tags			products
//	@Produce		json
//	@Param			firmId	path		string	true	"Firm ID"
//	@Success		200		{object}	FirmProducts
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/firms/{firmId}/products [get]
func (h *Handler) GetProductsByFirm(w http.ResponseWriter, r *http.Request) {
	firmID := chi.URLParam(r, "firmId")

	listing, err := h.svc.ListByFirm(r.Context(), firmID)
	if errors.Is(err, firm.ErrNotFound) {
		response.NotFound(w, "no firm found")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, listing)
}

// DeleteProduct godoc
//
//	@Summary		Delete a product
//	@Description	Delete a product by id. The owning firm's product list and any stored image are not touched.
//	@Tags			products
//	@Produce		json
//	@Param			productId	path		string	true	"Product ID"
//	@Success		200			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/products/{productId} [delete]
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	err := h.svc.Delete(r.Context(), productID)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(w, "no product found")
		return
	}
	if err != nil {
		response.InternalError(w)
		return
	}

	response.Message(w, http.StatusOK, "product deleted successfully")
}
