package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
	"github.com/youness/libris/services"
)

// Sayfalama varsayılanları. limit istemciden gelmezse 3 kitaplık
// sayfa döner — liste ekranının varsayılan boyutu.
const (
	defaultPage  = 1
	defaultLimit = 3
)

// BookHandler, kitap endpoint'lerini yöneten struct.
type BookHandler struct {
	bookService services.BookService
	maxUpload   int64
}

// NewBookHandler, constructor.
// maxUpload: multipart form parse sınırı (byte).
func NewBookHandler(bookService services.BookService, maxUpload int64) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		maxUpload:   maxUpload,
	}
}

// GetPage godoc
// GET /api/books?page=&limit=
// Geçersiz veya eksik parametreler sessizce varsayılana düşer.
// Aralık dışı sayfa boş liste döner — 404 değil.
func (h *BookHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page := parsePositiveInt(r.URL.Query().Get("page"), defaultPage)
	limit := parsePositiveInt(r.URL.Query().Get("limit"), defaultLimit)

	books, err := h.bookService.GetPage(r.Context(), page, limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, books)
}

// GetByID godoc
// GET /api/books/{id}
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	book, err := h.bookService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, book)
}

// Create godoc
// POST /api/books
// multipart/form-data: title, coverText, idAuthor (opsiyonel), image (opsiyonel dosya).
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, file, header, ok := h.parseBookForm(w, r)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	book, err := h.bookService.Create(r.Context(), req, file, header)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	w.Header().Set("Location", "/api/books/"+book.ID)
	pkg.JSON(w, http.StatusCreated, book)
}

// Update godoc
// PUT|POST /api/books/{id}
// HTML formları PUT gönderemediği için POST da kabul edilir.
// Başarıda 204 döner.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, file, header, ok := h.parseBookForm(w, r)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	if _, err := h.bookService.Update(r.Context(), r.PathValue("id"), req, file, header); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}

// Delete godoc
// DELETE /api/books/{id}
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.bookService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}

// parseBookForm, multipart form'dan BookRequest + opsiyonel görseli çıkarır.
// Hata durumunda response'u kendisi yazar ve ok=false döner.
func (h *BookHandler) parseBookForm(w http.ResponseWriter, r *http.Request) (*models.BookRequest, multipart.File, *multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid multipart form")
		return nil, nil, nil, false
	}

	req := &models.BookRequest{
		Title:     r.FormValue("title"),
		CoverText: r.FormValue("coverText"),
		IDAuthor:  r.FormValue("idAuthor"),
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid image upload")
			return nil, nil, nil, false
		}
		// Görsel opsiyonel — yoksa nil geçilir.
		file, header = nil, nil
	}

	return req, file, header, true
}

// parsePositiveInt, query parametresini int'e çevirir.
// Boş, sayı olmayan veya pozitif olmayan değerler fallback'e düşer.
func parsePositiveInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
