package issuer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"release-gateway/internal/audit"
	"release-gateway/internal/catalog"
	"release-gateway/internal/identity"
	"release-gateway/internal/platform/metrics"
	"release-gateway/internal/recordstore"
	derrors "release-gateway/pkg/domain-errors"
)

// promauto registers globally, so the metrics struct is created once per test
// binary.
var testMetrics = metrics.New()

type stubGate struct {
	status identity.Status
}

func (g *stubGate) Status(context.Context) identity.Status { return g.status }

type IssuerServiceSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *IssuerServiceSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestIssuerServiceSuite(t *testing.T) {
	suite.Run(t, new(IssuerServiceSuite))
}

func newTestService(t *testing.T, status identity.Status) (*Service, *catalog.Service) {
	t.Helper()
	store := recordstore.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.New(store, logger, testMetrics)

	inbox := make(chan audit.Event, 16)
	publisher := audit.NewPublisher(inbox, logger)

	gate := &stubGate{status: status}
	return New(store, gate, cat, logger, testMetrics, publisher), cat
}

func strPtr(v string) *string { return &v }
func i64Ptr(v int64) *int64   { return &v }

func completePatch() Patch {
	return Patch{
		Title:     strPtr("Revenue shares: Online IT courses"),
		Issuer:    strPtr("EdTech+ LLC"),
		Amount:    i64Ptr(9_000_000),
		UnitPrice: i64Ptr(1_000),
		Start:     strPtr("2026-01-01"),
		End:       strPtr("2026-09-01"),
		Tags:      strPtr(" online-education , marketing, online-education "),
	}
}

func (s *IssuerServiceSuite) TestUnitCount() {
	s.Run("divides volume by unit price with rounding", func() {
		assert.Equal(s.T(), int64(3_500), UnitCount(35_000_000, 10_000))
		assert.Equal(s.T(), int64(3), UnitCount(10, 3))
		assert.Equal(s.T(), int64(17), UnitCount(50, 3))
	})

	s.Run("zero or negative price yields zero", func() {
		assert.Equal(s.T(), int64(0), UnitCount(35_000_000, 0))
		assert.Equal(s.T(), int64(0), UnitCount(35_000_000, -5))
	})

	s.Run("is derived, never stored", func() {
		svc, _ := newTestService(s.T(), identity.StatusOK)
		draft := svc.StartDraft(s.ctx)
		draft, err := svc.Update(s.ctx, draft.ID, Patch{Amount: i64Ptr(100), UnitPrice: i64Ptr(10)})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), int64(10), draft.UnitCount())

		draft, err = svc.Update(s.ctx, draft.ID, Patch{UnitPrice: i64Ptr(0)})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), int64(0), draft.UnitCount())
	})
}

func (s *IssuerServiceSuite) TestStartDraft() {
	svc, _ := newTestService(s.T(), identity.StatusGuest)
	draft := svc.StartDraft(s.ctx)

	assert.NotEmpty(s.T(), draft.ID)
	assert.Equal(s.T(), StepDetails, draft.Step)
	assert.Equal(s.T(), catalog.AssetRealEstate, draft.AssetType)
	assert.Equal(s.T(), catalog.InstrumentSPVEquity, draft.Instrument)
	assert.Equal(s.T(), catalog.StatusActive, draft.Status)
	assert.Equal(s.T(), "BB", draft.Risk)

	second := svc.StartDraft(s.ctx)
	assert.NotEqual(s.T(), draft.ID, second.ID)
}

func (s *IssuerServiceSuite) TestNavigation() {
	svc, _ := newTestService(s.T(), identity.StatusGuest)
	draft := svc.StartDraft(s.ctx)

	s.Run("back clamps at the first step", func() {
		got, err := svc.Back(s.ctx, draft.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), StepDetails, got.Step)
	})

	s.Run("advance clamps at the last step", func() {
		var got Draft
		var err error
		for i := 0; i < 6; i++ {
			got, err = svc.Advance(s.ctx, draft.ID)
			require.NoError(s.T(), err)
		}
		assert.Equal(s.T(), StepDocuments, got.Step)
	})

	s.Run("navigation ignores validation state", func() {
		// Draft is entirely empty; steps still move freely.
		got, err := svc.Back(s.ctx, draft.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), StepDates, got.Step)
	})

	s.Run("unknown draft is a not-found error", func() {
		_, err := svc.Advance(s.ctx, "nope")
		assert.True(s.T(), derrors.HasCode(err, derrors.CodeNotFound))
	})
}

func (s *IssuerServiceSuite) TestUpdate() {
	svc, _ := newTestService(s.T(), identity.StatusGuest)
	draft := svc.StartDraft(s.ctx)

	s.Run("applies only the provided fields", func() {
		got, err := svc.Update(s.ctx, draft.ID, Patch{Title: strPtr("Warehouse tokens")})
		require.NoError(s.T(), err)
		assert.Equal(s.T(), "Warehouse tokens", got.Title)
		assert.Equal(s.T(), "BB", got.Risk)
	})

	s.Run("validates enum fields", func() {
		bad := catalog.AssetType("crypto")
		_, err := svc.Update(s.ctx, draft.ID, Patch{AssetType: &bad})
		assert.True(s.T(), derrors.HasCode(err, derrors.CodeInvalidInput))

		got, err := svc.Get(s.ctx, draft.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), catalog.AssetRealEstate, got.AssetType)
	})
}

func (s *IssuerServiceSuite) TestCanPublish() {
	s.Run("requires verified identity", func() {
		svc, _ := newTestService(s.T(), identity.StatusGuest)
		draft := svc.StartDraft(s.ctx)
		_, err := svc.Update(s.ctx, draft.ID, completePatch())
		require.NoError(s.T(), err)

		ok, err := svc.CanPublish(s.ctx, draft.ID)
		require.NoError(s.T(), err)
		assert.False(s.T(), ok)
	})

	s.Run("requires every mandatory field", func() {
		svc, _ := newTestService(s.T(), identity.StatusOK)
		draft := svc.StartDraft(s.ctx)
		_, err := svc.Update(s.ctx, draft.ID, completePatch())
		require.NoError(s.T(), err)

		ok, err := svc.CanPublish(s.ctx, draft.ID)
		require.NoError(s.T(), err)
		assert.True(s.T(), ok)

		for name, breaking := range map[string]Patch{
			"title":  {Title: strPtr("")},
			"issuer": {Issuer: strPtr("")},
			"amount": {Amount: i64Ptr(0)},
			"price":  {UnitPrice: i64Ptr(0)},
			"start":  {Start: strPtr("")},
			"end":    {End: strPtr("")},
		} {
			fresh := svc.StartDraft(s.ctx)
			_, err := svc.Update(s.ctx, fresh.ID, completePatch())
			require.NoError(s.T(), err)
			_, err = svc.Update(s.ctx, fresh.ID, breaking)
			require.NoError(s.T(), err)

			ok, err := svc.CanPublish(s.ctx, fresh.ID)
			require.NoError(s.T(), err)
			assert.False(s.T(), ok, "missing %s must block publication", name)
		}
	})
}

func (s *IssuerServiceSuite) TestPublish() {
	s.Run("publishes a complete draft to the head of the catalog", func() {
		svc, cat := newTestService(s.T(), identity.StatusOK)
		draft := svc.StartDraft(s.ctx)
		_, err := svc.Update(s.ctx, draft.ID, completePatch())
		require.NoError(s.T(), err)
		_, err = svc.Update(s.ctx, draft.ID, Patch{OfferDocName: strPtr("offer.pdf")})
		require.NoError(s.T(), err)

		release, err := svc.Publish(s.ctx, draft.ID)
		require.NoError(s.T(), err)

		assert.True(s.T(), strings.HasPrefix(release.ID, "REL-"), "got id %q", release.ID)
		assert.Equal(s.T(), int64(0), release.Raised)
		assert.Equal(s.T(), int64(9_000), release.UnitCount)
		assert.NotEmpty(s.T(), release.CreatedAt)
		assert.Equal(s.T(), []string{"online-education", "marketing"}, release.Tags)
		assert.Equal(s.T(), []string{"offer.pdf"}, release.DocumentNames)

		merged := cat.Merged(s.ctx)
		require.NotEmpty(s.T(), merged)
		assert.Equal(s.T(), release.ID, merged[0].ID)
		for _, other := range merged[1:] {
			assert.NotEqual(s.T(), release.ID, other.ID)
		}

		// Draft is gone after a successful publication.
		_, err = svc.Get(s.ctx, draft.ID)
		assert.True(s.T(), derrors.HasCode(err, derrors.CodeNotFound))
	})

	s.Run("newest publication comes first", func() {
		svc, cat := newTestService(s.T(), identity.StatusOK)
		first := svc.StartDraft(s.ctx)
		_, err := svc.Update(s.ctx, first.ID, completePatch())
		require.NoError(s.T(), err)
		firstRelease, err := svc.Publish(s.ctx, first.ID)
		require.NoError(s.T(), err)

		second := svc.StartDraft(s.ctx)
		_, err = svc.Update(s.ctx, second.ID, completePatch())
		require.NoError(s.T(), err)
		secondRelease, err := svc.Publish(s.ctx, second.ID)
		require.NoError(s.T(), err)

		merged := cat.Merged(s.ctx)
		require.GreaterOrEqual(s.T(), len(merged), 2)
		assert.Equal(s.T(), secondRelease.ID, merged[0].ID)
		assert.Equal(s.T(), firstRelease.ID, merged[1].ID)
	})

	s.Run("unverified identity blocks publication without side effects", func() {
		svc, cat := newTestService(s.T(), identity.StatusPending)
		before := len(cat.Merged(s.ctx))
		draft := svc.StartDraft(s.ctx)
		_, err := svc.Update(s.ctx, draft.ID, completePatch())
		require.NoError(s.T(), err)

		_, err = svc.Publish(s.ctx, draft.ID)
		assert.True(s.T(), derrors.HasCode(err, derrors.CodeIdentityRequired))
		assert.Len(s.T(), cat.Merged(s.ctx), before)

		// Draft survives a failed attempt.
		_, err = svc.Get(s.ctx, draft.ID)
		require.NoError(s.T(), err)
	})

	s.Run("incomplete draft fails validation", func() {
		svc, cat := newTestService(s.T(), identity.StatusOK)
		before := len(cat.Merged(s.ctx))
		draft := svc.StartDraft(s.ctx)
		_, err := svc.Update(s.ctx, draft.ID, Patch{Title: strPtr("Only a title")})
		require.NoError(s.T(), err)

		_, err = svc.Publish(s.ctx, draft.ID)
		assert.True(s.T(), derrors.HasCode(err, derrors.CodeValidationFailed))
		assert.Len(s.T(), cat.Merged(s.ctx), before)
	})
}
