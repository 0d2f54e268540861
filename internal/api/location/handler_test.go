package location_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercadinho/internal/api/location"
	"mercadinho/internal/domain"
	"mercadinho/internal/pkg/logger"
	"mercadinho/internal/repository/memstore"
	"mercadinho/internal/service/locationservice"
)

func newMux() *http.ServeMux {
	log := logger.NewLogger("fatal")
	h := location.NewHandler(locationservice.NewService(memstore.New().Locations(), log), log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/locations", h.CreateLocationHandler)
	mux.HandleFunc("GET /v1/locations", h.ListLocationsHandler)
	mux.HandleFunc("GET /v1/locations/{id}", h.GetLocationHandler)
	mux.HandleFunc("PUT /v1/locations/{id}", h.UpdateLocationHandler)
	return mux
}

func serve(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestLocationHandlers_CreateGetUpdateList(t *testing.T) {
	mux := newMux()

	rec := serve(mux, http.MethodPost, "/v1/locations", `{"name":"Condomínio Aurora"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created domain.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.IsActive)

	rec = serve(mux, http.MethodGet, "/v1/locations/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(mux, http.MethodPut, "/v1/locations/"+created.ID, `{"name":"Aurora Bloco B","is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated domain.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Aurora Bloco B", updated.Name)
	assert.False(t, updated.IsActive)

	rec = serve(mux, http.MethodGet, "/v1/locations", "")
	var all []domain.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 1)
}

func TestGetLocationHandler_Fail_NotFound(t *testing.T) {
	rec := serve(newMux(), http.MethodGet, "/v1/locations/"+uuid.New().String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateLocationHandler_Fail_ShortName(t *testing.T) {
	rec := serve(newMux(), http.MethodPost, "/v1/locations", `{"name":"ab"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
