package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
	"github.com/youness/libris/services"
)

// AuthorHandler, yazar endpoint'lerini yöneten struct.
// Tüm author endpoint'leri admin middleware arkasındadır.
type AuthorHandler struct {
	authorService services.AuthorService
}

// NewAuthorHandler, constructor.
func NewAuthorHandler(authorService services.AuthorService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService}
}

// GetAll godoc
// GET /api/author
func (h *AuthorHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authorService.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, authors)
}

// GetByID godoc
// GET /api/author/{id}
func (h *AuthorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	author, err := h.authorService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, author)
}

// Create godoc
// POST /api/author
// Body: { "first_name": "...", "last_name": "..." }
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AuthorRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	author, err := h.authorService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Location: yeni kaydın adresi — REST convention.
	w.Header().Set("Location", "/api/author/"+author.ID)
	pkg.JSON(w, http.StatusCreated, author)
}

// Update godoc
// PUT /api/author/{id}
// Her iki alan da zorunlu — partial update yok. Başarıda 204 döner.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.AuthorRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.authorService.Update(r.Context(), r.PathValue("id"), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}

// Delete godoc
// DELETE /api/author/{id}
// Kitabı olan yazar silinemez — 400 döner.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.authorService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
