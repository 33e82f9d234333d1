package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivedeal/drivedeal-backend/internal/auth"
	"github.com/drivedeal/drivedeal-backend/internal/config"
	"github.com/drivedeal/drivedeal-backend/internal/repository/memory"
	"github.com/drivedeal/drivedeal-backend/internal/services"
	"github.com/drivedeal/drivedeal-backend/internal/upload"
)

var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89,
}

type testEnv struct {
	router http.Handler
	repos  memory.Repos
}

func newTestEnv(t *testing.T, carrier string, maxUpload int64) *testEnv {
	t.Helper()

	cfg := config.Config{
		Env:         "test",
		AuthCarrier: carrier,
		CookieName:  "dd_session",
		RateLimit:   1000,
	}
	tm := auth.NewTokenManager("test-secret", "drivedeal-test", time.Hour)
	repos := memory.NewRepositories()
	uploads, err := upload.NewStore(t.TempDir(), maxUpload)
	require.NoError(t, err)

	router := NewRouter(Deps{
		Cfg:       cfg,
		TM:        tm,
		Users:     services.NewUserService(repos.Users),
		Listings:  services.NewListingService(repos.Listings),
		Favorites: services.NewFavoriteService(repos.Favorites),
		Reports:   services.NewReportService(repos.Reports),
		Uploads:   uploads,
	})
	return &testEnv{router: router, repos: repos}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "car.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&m))
	return m
}

func (e *testEnv) register(t *testing.T, username, email, password string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (e *testEnv) login(t *testing.T, email, password string) (string, map[string]any) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	tok, _ := body["token"].(string)
	return tok, body
}

func TestRegisterLoginFlow(t *testing.T) {
	e := newTestEnv(t, "token", 5<<20)

	e.register(t, "alice", "a@x.com", "password1")

	// duplicate email
	rec := e.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": "alice2", "email": "a@x.com", "password": "password2",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already exists", decodeBody(t, rec)["error"])

	// missing fields
	rec = e.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// bad credentials
	rec = e.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "a@x.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, body := e.login(t, "a@x.com", "password1")
	require.NotEmpty(t, tok)
	user := body["user"].(map[string]any)
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, false, user["is_admin"])

	// identity endpoint
	rec = e.do(t, http.MethodGet, "/api/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decodeBody(t, rec)["username"])

	rec = e.do(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieCarrier(t *testing.T) {
	e := newTestEnv(t, "cookie", 5<<20)
	e.register(t, "alice", "a@x.com", "password1")

	rec := e.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": "a@x.com", "password": "password1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotContains(t, body, "token")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	var session *http.Cookie
	for _, c := range cookies {
		if c.Name == "dd_session" {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(session)
	rec = httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decodeBody(t, rec)["username"])

	// logout clears the cookie
	rec = e.do(t, http.MethodPost, "/api/logout", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "dd_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func listingFields() map[string]string {
	return map[string]string{
		"make": "Toyota", "model": "Corolla", "year": "2020", "price": "15000",
		"mileage": "42000", "fuel_type": "petrol", "transmission": "manual",
		"color": "red", "description": "one careful owner",
	}
}

func TestListingLifecycle(t *testing.T) {
	e := newTestEnv(t, "token", 5<<20)
	e.register(t, "alice", "a@x.com", "password1")
	e.register(t, "bob", "b@x.com", "password1")
	aliceTok, _ := e.login(t, "a@x.com", "password1")
	bobTok, _ := e.login(t, "b@x.com", "password1")

	// unauthenticated create
	rec := e.doMultipart(t, http.MethodPost, "/api/listings", "", listingFields(), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// invalid price
	bad := listingFields()
	bad["price"] = "0"
	rec = e.doMultipart(t, http.MethodPost, "/api/listings", aliceTok, bad, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad = listingFields()
	bad["year"] = "not-a-year"
	rec = e.doMultipart(t, http.MethodPost, "/api/listings", aliceTok, bad, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// create with image
	rec = e.doMultipart(t, http.MethodPost, "/api/listings", aliceTok, listingFields(), pngBytes)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	assert.Equal(t, true, created["is_active"])
	listingID := int64(created["id"].(float64))
	imageURL := created["image_url"].(string)
	assert.Contains(t, imageURL, "/uploads/")

	// uploaded image is served back
	rec = e.do(t, http.MethodGet, imageURL, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngBytes, rec.Body.Bytes())

	// public list joins the seller username
	rec = e.do(t, http.MethodGet, "/api/listings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listings []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listings))
	require.Len(t, listings, 1)
	assert.Equal(t, "alice", listings[0]["username"])
	assert.NotContains(t, listings[0], "email")

	// detail lookup exposes the seller email
	rec = e.do(t, http.MethodGet, fmt.Sprintf("/api/listings/%d", listingID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a@x.com", decodeBody(t, rec)["email"])

	rec = e.do(t, http.MethodGet, "/api/listings/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// non-owner update and delete read as not found
	rec = e.doMultipart(t, http.MethodPut, fmt.Sprintf("/api/listings/%d", listingID), bobTok, listingFields(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = e.do(t, http.MethodDelete, fmt.Sprintf("/api/listings/%d", listingID), bobTok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// owner update without a new image keeps the old one
	upd := listingFields()
	upd["price"] = "14000"
	rec = e.doMultipart(t, http.MethodPut, fmt.Sprintf("/api/listings/%d", listingID), aliceTok, upd, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody(t, rec)
	assert.Equal(t, float64(14000), updated["price"])
	assert.Equal(t, imageURL, updated["image_url"])

	// owner delete
	rec = e.do(t, http.MethodDelete, fmt.Sprintf("/api/listings/%d", listingID), aliceTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, fmt.Sprintf("/api/listings/%d", listingID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejections(t *testing.T) {
	e := newTestEnv(t, "token", 64)
	e.register(t, "alice", "a@x.com", "password1")
	tok, _ := e.login(t, "a@x.com", "password1")

	// non-image payload
	rec := e.doMultipart(t, http.MethodPost, "/api/listings", tok, listingFields(), []byte("just some text, not an image"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// oversized payload
	big := append(append([]byte{}, pngBytes...), make([]byte, 256)...)
	rec = e.doMultipart(t, http.MethodPost, "/api/listings", tok, listingFields(), big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFavoritesEndpoints(t *testing.T) {
	e := newTestEnv(t, "token", 5<<20)
	e.register(t, "alice", "a@x.com", "password1")
	e.register(t, "bob", "b@x.com", "password1")
	aliceTok, _ := e.login(t, "a@x.com", "password1")
	bobTok, _ := e.login(t, "b@x.com", "password1")

	rec := e.doMultipart(t, http.MethodPost, "/api/listings", aliceTok, listingFields(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listingID := int64(decodeBody(t, rec)["id"].(float64))

	rec = e.do(t, http.MethodGet, "/api/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// double add leaves one row
	for i := 0; i < 2; i++ {
		rec = e.do(t, http.MethodPost, "/api/favorites", bobTok, map[string]int64{"listing_id": listingID})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = e.do(t, http.MethodGet, "/api/favorites", bobTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var favs []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&favs))
	require.Len(t, favs, 1)
	assert.Equal(t, "alice", favs[0]["username"])

	// favoriting a missing listing
	rec = e.do(t, http.MethodPost, "/api/favorites", bobTok, map[string]int64{"listing_id": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// removing an absent favorite still succeeds
	rec = e.do(t, http.MethodDelete, "/api/favorites/999", bobTok, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", listingID), bobTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, "/api/favorites", bobTok, nil)
	favs = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&favs))
	assert.Empty(t, favs)
}

func TestAdminEndpoints(t *testing.T) {
	e := newTestEnv(t, "token", 5<<20)
	e.register(t, "alice", "a@x.com", "password1")
	e.register(t, "bob", "b@x.com", "password1")
	aliceTok, _ := e.login(t, "a@x.com", "password1")
	bobTok, _ := e.login(t, "b@x.com", "password1")

	// seed an admin the way main does
	require.NoError(t, services.NewUserService(e.repos.Users).EnsureAdmin(context.Background(), "Admin", "admin@drivedeal.com", "admin123"))
	adminTok, adminBody := e.login(t, "admin@drivedeal.com", "admin123")
	assert.Equal(t, true, adminBody["user"].(map[string]any)["is_admin"])
	adminID := int64(adminBody["user"].(map[string]any)["id"].(float64))

	// listing to moderate
	rec := e.doMultipart(t, http.MethodPost, "/api/listings", aliceTok, listingFields(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listingID := int64(decodeBody(t, rec)["id"].(float64))

	// non-admin is refused
	for _, path := range []string{"/api/admin/users", "/api/admin/reports"} {
		rec = e.do(t, http.MethodGet, path, bobTok, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
	rec = e.do(t, http.MethodPost, fmt.Sprintf("/api/admin/listings/%d/toggle-active", listingID), bobTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// user list exposes contact fields, never the hash
	rec = e.do(t, http.MethodGet, "/api/admin/users", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&users))
	assert.Len(t, users, 3)
	assert.NotContains(t, rec.Body.String(), "password")

	// deactivate: hidden from the public list, still direct-fetchable
	rec = e.do(t, http.MethodPost, fmt.Sprintf("/api/admin/listings/%d/toggle-active", listingID), adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodGet, "/api/listings", "", nil)
	var listings []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listings))
	assert.Empty(t, listings)
	rec = e.do(t, http.MethodGet, fmt.Sprintf("/api/listings/%d", listingID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// report filed by bob against alice, visible to the admin
	rec = e.do(t, http.MethodPost, "/api/reports", bobTok, map[string]any{
		"reported_user_id": 1, "listing_id": listingID, "reason": "price is a scam, photos stolen",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = e.do(t, http.MethodGet, "/api/admin/reports", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reports []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "bob", reports[0]["reporter_name"])
	assert.Equal(t, "alice", reports[0]["reported_user_name"])
	assert.Equal(t, "Toyota", reports[0]["listing_make"])
	reportID := int64(reports[0]["id"].(float64))

	// resolve twice, both succeed
	for i := 0; i < 2; i++ {
		rec = e.do(t, http.MethodPost, fmt.Sprintf("/api/admin/reports/%d/resolve", reportID), adminTok, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = e.do(t, http.MethodGet, "/api/admin/reports", adminTok, nil)
	reports = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reports))
	assert.Equal(t, "resolved", reports[0]["status"])

	// self toggle-admin and self delete are blocked
	rec = e.do(t, http.MethodPost, fmt.Sprintf("/api/admin/users/%d/toggle-admin", adminID), adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = e.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminID), adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// promote bob, then delete him; his report cascades away
	rec = e.do(t, http.MethodPost, "/api/admin/users/2/toggle-admin", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodDelete, "/api/admin/users/2", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/admin/reports", adminTok, nil)
	reports = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reports))
	assert.Empty(t, reports)
}
