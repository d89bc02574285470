package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/challenge-asso/challenge-admin/internal/core/domain"
	"github.com/challenge-asso/challenge-admin/internal/core/validation"
)

// =============================================================================
// Product Handlers
// =============================================================================

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreateProductFields(req.Name); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}
	for _, v := range req.Variants {
		if field, msg := validation.ValidateCreateVariantFields(v.Name, v.PriceCents); field != "" {
			h.writeError(w, http.StatusBadRequest, msg, "validation_error")
			return
		}
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          domain.NewID("prod"),
		Name:        req.Name,
		Description: req.Description,
		Required:    req.Required,
		SchoolType:  domain.SchoolType(req.SchoolType),
		PublicType:  domain.PublicType(req.PublicType),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, v := range req.Variants {
		product.Variants = append(product.Variants, domain.ProductVariant{
			ID:         domain.NewID("var"),
			ProductID:  product.ID,
			Name:       v.Name,
			PriceCents: v.PriceCents,
			Enabled:    v.Enabled,
		})
	}

	if err := h.store.CreateProduct(r.Context(), product); err != nil {
		h.logger.Error("failed to create product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create product", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	opts := h.listOptions(r)

	products, err := h.store.ListProducts(r.Context(), opts)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to list products", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, ListResponse[domain.Product]{
		Items:  products,
		Total:  len(products),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.store.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "product not found", "product_not_found")
			return
		}
		h.logger.Error("failed to get product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get product", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.store.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "product not found", "product_not_found")
			return
		}
		h.logger.Error("failed to get product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get product", "internal_error")
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if field, msg := validation.ValidateCreateProductFields(req.Name); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	// Variants are managed through their own endpoints.
	product.Name = req.Name
	product.Description = req.Description
	product.Required = req.Required
	product.SchoolType = domain.SchoolType(req.SchoolType)
	product.PublicType = domain.PublicType(req.PublicType)
	product.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateProduct(r.Context(), product); err != nil {
		h.logger.Error("failed to update product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to update product", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusOK, product)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "product not found", "product_not_found")
			return
		}
		h.logger.Error("failed to delete product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete product", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Variant Handlers
// =============================================================================

func (h *Handler) handleCreateVariant(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	if _, err := h.store.GetProduct(r.Context(), productID); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "product not found", "product_not_found")
			return
		}
		h.logger.Error("failed to get product", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to get product", "internal_error")
		return
	}

	var req CreateVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}
	if field, msg := validation.ValidateCreateVariantFields(req.Name, req.PriceCents); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	variant := &domain.ProductVariant{
		ID:         domain.NewID("var"),
		ProductID:  productID,
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Enabled:    req.Enabled,
	}

	if err := h.store.CreateVariant(r.Context(), variant); err != nil {
		h.logger.Error("failed to create variant", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create variant", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, variant)
}

func (h *Handler) handleDeleteVariant(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteVariant(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "variant not found", "variant_not_found")
			return
		}
		h.logger.Error("failed to delete variant", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete variant", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Purchase Handlers
// =============================================================================

// handleCreatePurchase records a manual purchase, typically a cash
// payment taken at the welcome desk.
func (h *Handler) handleCreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "validation_error")
		return
	}

	if field, msg := validation.ValidateCreatePurchaseFields(req.UserID, req.VariantID, req.Quantity); field != "" {
		h.writeError(w, http.StatusBadRequest, msg, "validation_error")
		return
	}

	purchase := &domain.Purchase{
		ID:        domain.NewID("pur"),
		UserID:    req.UserID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		Validated: req.Validated,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.UpsertPurchase(r.Context(), purchase); err != nil {
		h.logger.Error("failed to create purchase", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to create purchase", "internal_error")
		return
	}

	h.writeJSON(w, http.StatusCreated, purchase)
}

func (h *Handler) handleDeletePurchase(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePurchase(r.Context(), chi.URLParam(r, "id")); err != nil {
		if isNotFound(err) {
			h.writeError(w, http.StatusNotFound, "purchase not found", "purchase_not_found")
			return
		}
		h.logger.Error("failed to delete purchase", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to delete purchase", "internal_error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
