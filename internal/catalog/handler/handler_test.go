package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"release-gateway/internal/catalog"
	"release-gateway/internal/catalog/handler/mocks"
	derrors "release-gateway/pkg/domain-errors"
	"release-gateway/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/catalog-mocks.go -package=mocks Service
type CatalogHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *CatalogHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerSuite))
}

func newTestRouter(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, logger)
	r := chi.NewRouter()
	h.Register(r)
	return r, mockService
}

func get(t *testing.T, r chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, path))
}

func (s *CatalogHandlerSuite) TestHandleSearch() {
	s.Run("passes parsed query parameters through", func() {
		r, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			Search(gomock.Any(), catalog.Query{
				Text:      "warehouse",
				Status:    catalog.StatusUpcoming,
				AssetType: catalog.AssetRealEstate,
				Sort:      catalog.SortAmount,
			}).
			Return([]catalog.Release{{ID: "TKN-007", Title: "Cold storage warehouse, Yekaterinburg"}})

		w := get(s.T(), r, "/releases?q=warehouse&status=upcoming&type=realEstate&sort=amount")
		assert.Equal(s.T(), http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), float64(1), resp["count"])
		releases := resp["releases"].([]any)
		first := releases[0].(map[string]any)
		assert.Equal(s.T(), "TKN-007", first["id"])
	})

	s.Run("empty result serializes as an empty array", func() {
		r, mockService := newTestRouter(s.T())
		mockService.EXPECT().Search(gomock.Any(), catalog.Query{Sort: catalog.SortDefault}).Return(nil)

		w := get(s.T(), r, "/releases")
		assert.Equal(s.T(), http.StatusOK, w.Code)
		assert.JSONEq(s.T(), `{"releases":[],"count":0}`, w.Body.String())
	})

	s.Run("rejects an unknown status", func() {
		r, _ := newTestRouter(s.T())
		w := get(s.T(), r, "/releases?status=open")
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		var resp map[string]string
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), string(derrors.CodeInvalidInput), resp["error"])
	})

	s.Run("rejects an unknown sort key", func() {
		r, _ := newTestRouter(s.T())
		w := get(s.T(), r, "/releases?sort=oldest")
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	})
}

func (s *CatalogHandlerSuite) TestHandleStats() {
	r, mockService := newTestRouter(s.T())
	mockService.EXPECT().Stats(gomock.Any()).Return(catalog.Stats{Total: 9, Active: 6, Upcoming: 2, Redeemed: 1})

	w := get(s.T(), r, "/releases/stats")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.JSONEq(s.T(), `{"total":9,"active":6,"upcoming":2,"redeemed":1}`, w.Body.String())
}

func (s *CatalogHandlerSuite) TestHandleGet() {
	s.Run("returns the release", func() {
		r, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			Get(gomock.Any(), "TKN-004").
			Return(catalog.Release{ID: "TKN-004", Title: "Prizma coworking, Kazan", Status: catalog.StatusRedeemed}, nil)

		w := get(s.T(), r, "/releases/TKN-004")
		assert.Equal(s.T(), http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), "redeemed", resp["status"])
	})

	s.Run("maps unknown ids to 404", func() {
		r, mockService := newTestRouter(s.T())
		mockService.EXPECT().
			Get(gomock.Any(), "TKN-999").
			Return(catalog.Release{}, derrors.New(derrors.CodeNotFound, "release not found"))

		w := get(s.T(), r, "/releases/TKN-999")
		assert.Equal(s.T(), http.StatusNotFound, w.Code)
	})
}
