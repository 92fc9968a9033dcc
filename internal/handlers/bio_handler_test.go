package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridiangallery/backend/internal/models"
)

func newBioRouter(store *stubBioStore) *gin.Engine {
	h := NewBioHandler(store)
	r := gin.New()
	r.GET("/bio", h.GetBio)
	r.PUT("/bio", h.UpdateBio)
	return r
}

func TestGetBio(t *testing.T) {
	store := &stubBioStore{bio: &models.Bio{ID: models.BioKey, Name: "Jo"}}
	r := newBioRouter(store)

	w := doJSON(r, http.MethodGet, "/bio", "")
	require.Equal(t, http.StatusOK, w.Code)

	var bio models.Bio
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bio))
	assert.Equal(t, "Jo", bio.Name)
}

func TestGetBioNotFound(t *testing.T) {
	r := newBioRouter(&stubBioStore{})
	w := doJSON(r, http.MethodGet, "/bio", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBioAlwaysSendsAllFields(t *testing.T) {
	store := &stubBioStore{}
	r := newBioRouter(store)

	// imageUrl omitted by the client still overwrites with empty string
	w := doJSON(r, http.MethodPut, "/bio", `{"id":"bio","name":"Jo","content":"Hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Jo", store.lastName)
	assert.Equal(t, "Hello", store.lastContent)
	assert.Equal(t, "", store.lastImageURL)
}

func TestUpdateBioRejectsMultipart(t *testing.T) {
	store := &stubBioStore{}
	r := newBioRouter(store)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Jo"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/bio", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.lastName)
}
