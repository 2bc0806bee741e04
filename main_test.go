package main

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youness/libris/config"
	"github.com/youness/libris/database"
	"github.com/youness/libris/models"
	"github.com/youness/libris/pkg"
	"github.com/youness/libris/services"
)

// newTestServer, tam wire-up'lı bir test server kurar: in-memory DB,
// gerçek repo/service/handler zinciri, initRoutes ile bağlanmış mux.
// Email konfigüre edilmez — reset isteği 500 döner (bilinçli).
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			AccessTokenExpiry:  15,
			RefreshTokenExpiry: 7,
		},
		Upload: config.UploadConfig{
			Dir:     t.TempDir(),
			MaxSize: 8 << 20,
		},
		Reset: config.ResetConfig{TokenExpiryMinutes: 60},
	}

	db, err := database.New(":memory:", database.Migrations())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := initRepositories(db.Conn)
	svcs, limiters, err := initServices(db.Conn, repos, cfg)
	require.NoError(t, err)
	h := initHandlers(svcs, limiters, cfg)

	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User, cfg.Upload.Dir)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// doJSON, JSON body'li istek atar ve envelope'u çözer.
func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, pkg.APIResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope pkg.APIResponse
	if resp.StatusCode != http.StatusNoContent {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &envelope))
		}
	}

	return resp, envelope
}

// decodeData, envelope'un data alanını verilen hedefe çözer.
func decodeData(t *testing.T, envelope pkg.APIResponse, dest any) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}

// registerAndLogin, kullanıcı kaydeder ve access token döner.
func registerAndLogin(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()

	resp, _ := doJSON(t, srv, "POST", "/api/register", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope := doJSON(t, srv, "POST", "/api/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens services.AuthTokens
	decodeData(t, envelope, &tokens)
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

// postBookMultipart, multipart form ile kitap oluşturur/günceller.
func postBookMultipart(t *testing.T, srv *httptest.Server, method, path, token string, fields map[string]string) (*http.Response, pkg.APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope pkg.APIResponse
	if resp.StatusCode != http.StatusNoContent {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		if len(raw) > 0 {
			require.NoError(t, json.Unmarshal(raw, &envelope))
		}
	}

	return resp, envelope
}

func TestAPI_RegisterRoles(t *testing.T) {
	srv := newTestServer(t)

	resp, envelope := doJSON(t, srv, "POST", "/api/register", "", map[string]string{
		"email": "first@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var first models.User
	decodeData(t, envelope, &first)
	assert.Contains(t, first.Roles, models.RoleAdmin)

	resp, envelope = doJSON(t, srv, "POST", "/api/register", "", map[string]string{
		"email": "second@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var second models.User
	decodeData(t, envelope, &second)
	assert.NotContains(t, second.Roles, models.RoleAdmin)
	assert.Contains(t, second.Roles, models.RoleUser)

	// Duplicate email → 409.
	resp, _ = doJSON(t, srv, "POST", "/api/register", "", map[string]string{
		"email": "first@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Eksik alan → 400.
	resp, _ = doJSON(t, srv, "POST", "/api/register", "", map[string]string{"email": "x@y.co"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_AuthorEndpointsRequireAdmin(t *testing.T) {
	srv := newTestServer(t)

	_ = registerAndLogin(t, srv, "admin@example.com", "password123") // ilk kullanıcı = admin
	userToken := registerAndLogin(t, srv, "user@example.com", "password123")

	// Token yok → 401.
	resp, _ := doJSON(t, srv, "GET", "/api/author", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Admin olmayan → 403, sabit mesaj.
	resp, envelope := doJSON(t, srv, "POST", "/api/author", userToken, map[string]string{
		"first_name": "A", "last_name": "B",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "insufficient privileges", envelope.Error)
}

func TestAPI_CatalogScenario(t *testing.T) {
	srv := newTestServer(t)
	adminToken := registerAndLogin(t, srv, "admin@example.com", "password123")

	// Yazar oluştur.
	resp, envelope := doJSON(t, srv, "POST", "/api/author", adminToken, map[string]string{
		"first_name": "Italo", "last_name": "Calvino",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var author models.Author
	decodeData(t, envelope, &author)
	assert.Equal(t, "/api/author/"+author.ID, resp.Header.Get("Location"))

	// Yazarı güncelle → 204.
	resp, _ = doJSON(t, srv, "PUT", "/api/author/"+author.ID, adminToken, map[string]string{
		"first_name": "Jorge", "last_name": "Borges",
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Kitap oluştur (geçerli yazar).
	resp, envelope = postBookMultipart(t, srv, "POST", "/api/books", adminToken, map[string]string{
		"title": "Ficciones", "coverText": "Labyrinths and mirrors", "idAuthor": author.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var book models.Book
	decodeData(t, envelope, &book)
	assert.Equal(t, "/api/books/"+book.ID, resp.Header.Get("Location"))
	require.NotNil(t, book.Author)
	assert.Equal(t, "Borges", book.Author.LastName)

	// Geçersiz idAuthor ile kitap → yazarsız oluşur, reddedilmez.
	resp, envelope = postBookMultipart(t, srv, "POST", "/api/books", adminToken, map[string]string{
		"title": "Orphan", "coverText": "No author", "idAuthor": "bogus-id",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var orphan models.Book
	decodeData(t, envelope, &orphan)
	assert.Nil(t, orphan.Author)

	// Update'te geçersiz yazar → 400.
	resp, _ = postBookMultipart(t, srv, "PUT", "/api/books/"+book.ID, adminToken, map[string]string{
		"title": "Ficciones", "coverText": "text", "idAuthor": "bogus-id",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Kitabı olan yazar silinemez → 400.
	resp, envelope = doJSON(t, srv, "DELETE", "/api/author/"+author.ID, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope.Error, "cannot delete author with associated books")

	// Kitap sil (public) → 204; ardından yazar silinebilir → 204.
	resp, _ = doJSON(t, srv, "DELETE", "/api/books/"+book.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, srv, "DELETE", "/api/author/"+author.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Bilinmeyen kitap → 404.
	resp, _ = doJSON(t, srv, "GET", "/api/books/"+book.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_BookPaginationDefaults(t *testing.T) {
	srv := newTestServer(t)
	adminToken := registerAndLogin(t, srv, "admin@example.com", "password123")

	titles := []string{"One", "Two", "Three", "Four"}
	for _, title := range titles {
		resp, _ := postBookMultipart(t, srv, "POST", "/api/books", adminToken, map[string]string{
			"title": title, "coverText": "text",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Varsayılan: page=1, limit=3.
	resp, envelope := doJSON(t, srv, "GET", "/api/books", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page []models.Book
	decodeData(t, envelope, &page)
	require.Len(t, page, 3)
	assert.Equal(t, "One", page[0].Title)

	// İkinci sayfa: kalan tek kitap.
	resp, envelope = doJSON(t, srv, "GET", "/api/books?page=2", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, envelope, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Four", page[0].Title)

	// Aralık dışı sayfa: boş liste, 200.
	resp, envelope = doJSON(t, srv, "GET", "/api/books?page=99", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, envelope, &page)
	assert.Empty(t, page)

	// Geçersiz parametreler varsayılana düşer.
	resp, envelope = doJSON(t, srv, "GET", "/api/books?page=abc&limit=-5", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeData(t, envelope, &page)
	assert.Len(t, page, 3)
}

func TestAPI_RequestPasswordReset(t *testing.T) {
	srv := newTestServer(t)
	_ = registerAndLogin(t, srv, "known@example.com", "password123")

	// Bilinmeyen email → 404 (orijinal davranış korunur).
	resp, envelope := doJSON(t, srv, "POST", "/api/request-password-reset", "", map[string]string{
		"email": "ghost@example.com",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, envelope.Error, "user not found")

	// Bilinen email ama email servisi kapalı → 500.
	resp, _ = doJSON(t, srv, "POST", "/api/request-password-reset", "", map[string]string{
		"email": "known@example.com",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// Boş email → 400.
	resp, _ = doJSON(t, srv, "POST", "/api/request-password-reset", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ResetPageEscapesToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/reset-password-page/%3Cscript%3Ealert(1)%3C%2Fscript%3E")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Token sayfaya raw basılmamalı — html/template escape eder.
	assert.NotContains(t, string(body), "<script>alert(1)</script>")
	assert.Contains(t, string(body), "&lt;script&gt;")
}

func TestAPI_MeRequiresAuth(t *testing.T) {
	srv := newTestServer(t)
	token := registerAndLogin(t, srv, "me@example.com", "password123")

	resp, envelope := doJSON(t, srv, "GET", "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeData(t, envelope, &user)
	assert.Equal(t, "me@example.com", user.Email)

	resp, _ = doJSON(t, srv, "GET", "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
