package issuer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"release-gateway/internal/audit"
	"release-gateway/internal/catalog"
	"release-gateway/internal/identity"
	"release-gateway/internal/platform/metrics"
	"release-gateway/internal/recordstore"
	derrors "release-gateway/pkg/domain-errors"
	"release-gateway/pkg/platform/sentinel"
	platformstrings "release-gateway/pkg/platform/strings"
)

// IdentityGate is the issuer flow's read-only view of identification status.
type IdentityGate interface {
	Status(ctx context.Context) identity.Status
}

// Catalog is the merged-catalog view used for id collision checks.
type Catalog interface {
	Merged(ctx context.Context) []catalog.Release
}

// Service owns release drafts and publication. Drafts live in memory only;
// published releases go to the record store where the catalog picks them up.
type Service struct {
	store    recordstore.Store
	identity IdentityGate
	catalog  Catalog
	log      *slog.Logger
	metrics  *metrics.Metrics
	audit    *audit.Publisher
	tracer   trace.Tracer
	now      func() time.Time

	mu     sync.Mutex
	drafts map[string]*Draft
}

func New(store recordstore.Store, gate IdentityGate, cat Catalog, log *slog.Logger, m *metrics.Metrics, publisher *audit.Publisher) *Service {
	return &Service{
		store:    store,
		identity: gate,
		catalog:  cat,
		log:      log,
		metrics:  m,
		audit:    publisher,
		tracer:   otel.Tracer("issuer"),
		now:      time.Now,
		drafts:   make(map[string]*Draft),
	}
}

// StartDraft opens a fresh draft at step 1 with the wizard's defaults.
func (s *Service) StartDraft(_ context.Context) Draft {
	draft := &Draft{
		ID:         uuid.NewString(),
		Step:       StepDetails,
		AssetType:  catalog.AssetRealEstate,
		Instrument: catalog.InstrumentSPVEquity,
		Status:     catalog.StatusActive,
		Risk:       "BB",
	}
	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()
	return *draft
}

func (s *Service) draftLocked(id string) (*Draft, error) {
	draft, ok := s.drafts[id]
	if !ok {
		return nil, derrors.New(derrors.CodeNotFound, "draft not found")
	}
	return draft, nil
}

// Get returns a snapshot of the draft.
func (s *Service) Get(_ context.Context, id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.draftLocked(id)
	if err != nil {
		return Draft{}, err
	}
	return *draft, nil
}

// Update applies a partial edit. Enum fields are validated; everything else
// is accepted as-is since only Publish enforces completeness.
func (s *Service) Update(_ context.Context, id string, patch Patch) (Draft, error) {
	if patch.AssetType != nil {
		if _, err := catalog.ParseAssetType(string(*patch.AssetType)); err != nil {
			return Draft{}, err
		}
	}
	if patch.Instrument != nil {
		if _, err := catalog.ParseInstrumentType(string(*patch.Instrument)); err != nil {
			return Draft{}, err
		}
	}
	if patch.Status != nil {
		if _, err := catalog.ParseReleaseStatus(string(*patch.Status)); err != nil {
			return Draft{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.draftLocked(id)
	if err != nil {
		return Draft{}, err
	}
	applyPatch(draft, patch)
	return *draft, nil
}

func applyPatch(d *Draft, p Patch) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Issuer != nil {
		d.Issuer = *p.Issuer
	}
	if p.AssetType != nil {
		d.AssetType = *p.AssetType
	}
	if p.Instrument != nil {
		d.Instrument = *p.Instrument
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Tags != nil {
		d.Tags = *p.Tags
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.UnitPrice != nil {
		d.UnitPrice = *p.UnitPrice
	}
	if p.Yield != nil {
		d.Yield = *p.Yield
	}
	if p.TermMonths != nil {
		d.TermMonths = *p.TermMonths
	}
	if p.Risk != nil {
		d.Risk = *p.Risk
	}
	if p.Start != nil {
		d.Start = *p.Start
	}
	if p.End != nil {
		d.End = *p.End
	}
	if p.OfferDocName != nil {
		d.OfferDocName = *p.OfferDocName
	}
	if p.MemoDocName != nil {
		d.MemoDocName = *p.MemoDocName
	}
}

// Advance moves to the next step, clamped at the last one. Navigation never
// validates.
func (s *Service) Advance(_ context.Context, id string) (Draft, error) {
	return s.step(id, 1)
}

// Back moves to the previous step, clamped at the first one.
func (s *Service) Back(_ context.Context, id string) (Draft, error) {
	return s.step(id, -1)
}

func (s *Service) step(id string, delta int) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, err := s.draftLocked(id)
	if err != nil {
		return Draft{}, err
	}
	next := draft.Step + delta
	if next < StepDetails {
		next = StepDetails
	}
	if next > StepDocuments {
		next = StepDocuments
	}
	draft.Step = next
	return *draft, nil
}

// CanPublish reports whether the draft satisfies the publication gate:
// verified identity plus the required fields.
func (s *Service) CanPublish(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	draft, err := s.draftLocked(id)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	snapshot := *draft
	s.mu.Unlock()
	return s.canPublish(ctx, snapshot), nil
}

func (s *Service) canPublish(ctx context.Context, d Draft) bool {
	if s.identity.Status(ctx) != identity.StatusOK {
		return false
	}
	return d.Title != "" && d.Issuer != "" && d.Amount > 0 && d.UnitPrice > 0 && d.Start != "" && d.End != ""
}

// Publish turns the draft into a catalog release: fresh unique id, zero
// raised, derived unit count. The draft is discarded on success and untouched
// on failure.
func (s *Service) Publish(ctx context.Context, id string) (catalog.Release, error) {
	ctx, span := s.tracer.Start(ctx, "issuer.Publish")
	defer span.End()

	s.mu.Lock()
	draft, err := s.draftLocked(id)
	if err != nil {
		s.mu.Unlock()
		return catalog.Release{}, err
	}
	snapshot := *draft
	s.mu.Unlock()

	if !s.canPublish(ctx, snapshot) {
		s.metrics.IncrementPublishRejected()
		if s.identity.Status(ctx) != identity.StatusOK {
			return catalog.Release{}, derrors.New(derrors.CodeIdentityRequired, "publication requires verified identity")
		}
		return catalog.Release{}, derrors.New(derrors.CodeValidationFailed, "required fields missing")
	}

	release := s.buildRelease(ctx, snapshot)
	if err := s.prependRelease(ctx, release); err != nil {
		return catalog.Release{}, err
	}

	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()

	s.metrics.IncrementReleasesPublished()
	s.audit.Emit(ctx, audit.Event{
		Action:  audit.ActionReleasePublished,
		Subject: release.ID,
		Detail:  release.Title,
	})
	s.log.Info("release published", "id", release.ID, "issuer", release.Issuer)
	return release, nil
}

func (s *Service) buildRelease(ctx context.Context, d Draft) catalog.Release {
	risk := d.Risk
	if risk == "" {
		risk = "—"
	}
	var docs []string
	if d.OfferDocName != "" {
		docs = append(docs, d.OfferDocName)
	}
	if d.MemoDocName != "" {
		docs = append(docs, d.MemoDocName)
	}
	return catalog.Release{
		ID:            s.newReleaseID(ctx),
		Title:         d.Title,
		Issuer:        d.Issuer,
		AssetType:     d.AssetType,
		Instrument:    d.Instrument,
		Status:        d.Status,
		Risk:          risk,
		Tags:          platformstrings.SplitList(d.Tags),
		Amount:        d.Amount,
		Raised:        0,
		UnitPrice:     d.UnitPrice,
		UnitCount:     d.UnitCount(),
		Yield:         d.Yield,
		TermMonths:    d.TermMonths,
		Start:         d.Start,
		End:           d.End,
		CreatedAt:     s.now().UTC().Format(time.RFC3339),
		DocumentNames: docs,
	}
}

// newReleaseID derives a short printable id and retries on the unlikely
// collision with the merged catalog.
func (s *Service) newReleaseID(ctx context.Context) string {
	existing := make(map[string]bool)
	for _, r := range s.catalog.Merged(ctx) {
		existing[r.ID] = true
	}
	for {
		raw := strings.ReplaceAll(uuid.NewString(), "-", "")
		id := fmt.Sprintf("REL-%s", raw[:6])
		if !existing[id] {
			return id
		}
	}
}

// prependRelease puts the new release at the head of the stored user list so
// the newest publication surfaces first.
func (s *Service) prependRelease(ctx context.Context, release catalog.Release) error {
	var list []catalog.Release
	raw, err := s.store.Load(ctx, recordstore.KeyReleases)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &list); err != nil {
			s.log.Warn("malformed stored release list, rebuilding", "error", err)
			list = nil
		}
	case errors.Is(err, sentinel.ErrNotFound):
		// first publication
	default:
		return derrors.Wrap(derrors.CodeInternal, "loading release list", err)
	}

	list = append([]catalog.Release{release}, list...)
	updated, err := json.Marshal(list)
	if err != nil {
		return derrors.Wrap(derrors.CodeInternal, "encoding release list", err)
	}
	if err := s.store.Save(ctx, recordstore.KeyReleases, updated); err != nil {
		return derrors.Wrap(derrors.CodeInternal, "saving release list", err)
	}
	return nil
}
