package handler

import (
	"bytes"
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

	"release-gateway/internal/identity"
	"release-gateway/internal/identity/handler/mocks"
	derrors "release-gateway/pkg/domain-errors"
	"release-gateway/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/identity-mocks.go -package=mocks Service
type IdentityHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *IdentityHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestIdentityHandlerSuite(t *testing.T) {
	suite.Run(t, new(IdentityHandlerSuite))
}

func newTestRouter(t *testing.T, demoMode bool) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := New(mockService, logger, demoMode)
	r := chi.NewRouter()
	h.Register(r)
	return r, mockService
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return testutil.DoRequest(r, testutil.NewJSONRequest(t, method, path, body))
}

func (s *IdentityHandlerSuite) TestHandleCurrent() {
	r, mockService := newTestRouter(s.T(), true)
	rec := identity.DefaultRecord()
	rec.Status = identity.StatusPending
	rec.Profile.FullName = "Anna Petrova"
	mockService.EXPECT().Current(gomock.Any()).Return(rec)
	mockService.EXPECT().Attachments().Return(map[identity.FileSlot]identity.Attachment{
		identity.SlotIDFront: {Name: "passport.jpg", Size: 48211},
	})
	mockService.EXPECT().CanSubmit(gomock.Any()).Return(false)

	w := doJSON(s.T(), r, http.MethodGet, "/identity", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	record := resp["record"].(map[string]any)
	assert.Equal(s.T(), "pending", record["status"])
	profile := record["profile"].(map[string]any)
	assert.Equal(s.T(), "Anna Petrova", profile["fullName"])
	assert.Equal(s.T(), "RU", profile["citizenship"])
	attachments := resp["attachments"].(map[string]any)
	front := attachments["idFront"].(map[string]any)
	assert.Equal(s.T(), "passport.jpg", front["name"])
	assert.Equal(s.T(), false, resp["canSubmit"])
}

func (s *IdentityHandlerSuite) TestHandleProfileField() {
	r, mockService := newTestRouter(s.T(), true)

	s.Run("updates a known field", func() {
		mockService.EXPECT().
			UpdateProfileField(gomock.Any(), identity.FieldFullName, "Anna Petrova").
			Return(nil)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/profile", map[string]string{
			"field": "fullName",
			"value": "Anna Petrova",
		})
		assert.Equal(s.T(), http.StatusNoContent, w.Code)
	})

	s.Run("rejects an unknown field", func() {
		w := doJSON(s.T(), r, http.MethodPost, "/identity/profile", map[string]string{
			"field": "nickname",
			"value": "anna",
		})
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		s.assertErrorCode(w, derrors.CodeInvalidInput)
	})

	s.Run("rejects a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/identity/profile", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		s.assertErrorCode(w, derrors.CodeBadRequest)
	})
}

func (s *IdentityHandlerSuite) TestHandleFileSlot() {
	r, mockService := newTestRouter(s.T(), true)

	s.Run("stores an attachment", func() {
		mockService.EXPECT().
			UpdateFileSlot(gomock.Any(), identity.SlotSelfie, identity.Attachment{Name: "selfie.png", Size: 120034}).
			Return(nil)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/files", map[string]any{
			"slot": "selfie",
			"name": "selfie.png",
			"size": 120034,
		})
		assert.Equal(s.T(), http.StatusNoContent, w.Code)
	})

	s.Run("clears a slot with an empty name", func() {
		mockService.EXPECT().
			UpdateFileSlot(gomock.Any(), identity.SlotIDBack, identity.Attachment{}).
			Return(nil)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/files", map[string]any{
			"slot": "idBack",
			"name": "",
		})
		assert.Equal(s.T(), http.StatusNoContent, w.Code)
	})

	s.Run("rejects an unknown slot", func() {
		w := doJSON(s.T(), r, http.MethodPost, "/identity/files", map[string]any{
			"slot": "portrait",
			"name": "x.png",
		})
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		s.assertErrorCode(w, derrors.CodeInvalidInput)
	})
}

func (s *IdentityHandlerSuite) TestHandleConsent() {
	r, mockService := newTestRouter(s.T(), true)

	s.Run("grants a consent", func() {
		mockService.EXPECT().
			UpdateConsent(gomock.Any(), identity.ConsentTerms, true).
			Return(nil)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/consents", map[string]any{
			"field":   "terms",
			"granted": true,
		})
		assert.Equal(s.T(), http.StatusNoContent, w.Code)
	})

	s.Run("withdraws a consent", func() {
		mockService.EXPECT().
			UpdateConsent(gomock.Any(), identity.ConsentPersonalData, false).
			Return(nil)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/consents", map[string]any{
			"field":   "personal",
			"granted": false,
		})
		assert.Equal(s.T(), http.StatusNoContent, w.Code)
	})
}

func (s *IdentityHandlerSuite) TestHandleSubmit() {
	r, mockService := newTestRouter(s.T(), true)

	s.Run("accepts a complete application", func() {
		mockService.EXPECT().Submit(gomock.Any()).Return(nil)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/submit", nil)
		assert.Equal(s.T(), http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), "pending", resp["status"])
	})

	s.Run("maps an incomplete application to 422", func() {
		mockService.EXPECT().
			Submit(gomock.Any()).
			Return(derrors.New(derrors.CodeValidationFailed, "application incomplete"))

		w := doJSON(s.T(), r, http.MethodPost, "/identity/submit", nil)
		assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
		s.assertErrorCode(w, derrors.CodeValidationFailed)
	})
}

func (s *IdentityHandlerSuite) TestHandleReset() {
	r, mockService := newTestRouter(s.T(), true)
	mockService.EXPECT().Reset(gomock.Any()).Return(nil)

	w := doJSON(s.T(), r, http.MethodPost, "/identity/reset", nil)
	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *IdentityHandlerSuite) TestHandleSetStatus() {
	s.Run("reassigns status in demo mode", func() {
		r, mockService := newTestRouter(s.T(), true)
		mockService.EXPECT().SetStatus(gomock.Any(), identity.StatusOK).Return(nil)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/status", map[string]string{"status": "ok"})
		assert.Equal(s.T(), http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), "ok", resp["status"])
	})

	s.Run("rejects an unknown status", func() {
		r, _ := newTestRouter(s.T(), true)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/status", map[string]string{"status": "approved"})
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		s.assertErrorCode(w, derrors.CodeInvalidInput)
	})

	s.Run("is hidden outside demo mode", func() {
		r, _ := newTestRouter(s.T(), false)

		w := doJSON(s.T(), r, http.MethodPost, "/identity/status", map[string]string{"status": "ok"})
		assert.Equal(s.T(), http.StatusNotFound, w.Code)
	})
}

func (s *IdentityHandlerSuite) assertErrorCode(w *httptest.ResponseRecorder, code derrors.Code) {
	s.T().Helper()
	testutil.AssertErrorCode(s.T(), w, string(code))
}
