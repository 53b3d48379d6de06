package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"release-gateway/internal/audit"
	"release-gateway/internal/platform/metrics"
	"release-gateway/internal/recordstore"
	derrors "release-gateway/pkg/domain-errors"
)

// Service owns the identity record. Every mutation is a read-modify-write
// against the record store under the service mutex, so the persisted document
// is always the full current record.
type Service struct {
	store   recordstore.Store
	log     *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
	tracer  trace.Tracer

	mu    sync.Mutex
	files map[FileSlot]Attachment
}

func New(store recordstore.Store, log *slog.Logger, m *metrics.Metrics, publisher *audit.Publisher) *Service {
	return &Service{
		store:   store,
		log:     log,
		metrics: m,
		audit:   publisher,
		tracer:  otel.Tracer("identity"),
		files:   make(map[FileSlot]Attachment),
	}
}

// load substitutes the documented default on a missing or malformed
// persisted value. Read failures are recovered here, never surfaced.
func (s *Service) load(ctx context.Context) Record {
	raw, err := s.store.Load(ctx, recordstore.KeyIdentity)
	if err != nil {
		return DefaultRecord()
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.WarnContext(ctx, "malformed identity record, substituting default", "error", err)
		return DefaultRecord()
	}
	if !validStatuses[rec.Status] {
		rec.Status = StatusGuest
	}
	return rec
}

func (s *Service) persist(ctx context.Context, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return derrors.Wrap(derrors.CodeInternal, "encode identity record", err)
	}
	if err := s.store.Save(ctx, recordstore.KeyIdentity, raw); err != nil {
		return derrors.Wrap(derrors.CodeInternal, "persist identity record", err)
	}
	return nil
}

// Current returns the persisted record.
func (s *Service) Current(ctx context.Context) Record {
	return s.load(ctx)
}

// Status returns the verification status. The issuer flow uses this as its
// read-only publication gate.
func (s *Service) Status(ctx context.Context) Status {
	return s.load(ctx).Status
}

// Attachments returns a copy of the transient attachment metadata.
func (s *Service) Attachments() map[FileSlot]Attachment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[FileSlot]Attachment, len(s.files))
	for slot, att := range s.files {
		out[slot] = att
	}
	return out
}

// UpdateProfileField sets one profile field and persists. No validation at
// mutation time; completeness is checked only on submit.
func (s *Service) UpdateProfileField(ctx context.Context, field ProfileField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load(ctx)
	switch field {
	case FieldFullName:
		rec.Profile.FullName = value
	case FieldDateOfBirth:
		rec.Profile.DateOfBirth = value
	case FieldCitizenship:
		rec.Profile.Citizenship = value
	case FieldDocumentNumber:
		rec.Profile.DocumentNumber = value
	case FieldAddress:
		rec.Profile.Address = value
	default:
		return derrors.New(derrors.CodeInvalidInput, "invalid profile field")
	}
	return s.persist(ctx, rec)
}

// UpdateFileSlot records attachment metadata for one slot. Attachments stay
// in memory for the session; the persisted record never contains them.
func (s *Service) UpdateFileSlot(_ context.Context, slot FileSlot, att Attachment) error {
	if !validFileSlots[slot] {
		return derrors.New(derrors.CodeInvalidInput, "invalid file slot")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if att.Name == "" {
		delete(s.files, slot)
	} else {
		s.files[slot] = att
	}
	return nil
}

// UpdateConsent sets one consent flag and persists.
func (s *Service) UpdateConsent(ctx context.Context, field ConsentField, granted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load(ctx)
	switch field {
	case ConsentTerms:
		rec.Consents.Terms = granted
	case ConsentPersonalData:
		rec.Consents.PersonalData = granted
	default:
		return derrors.New(derrors.CodeInvalidInput, "invalid consent field")
	}
	return s.persist(ctx, rec)
}

// CanSubmit reports whether the record is complete: the four free-text
// profile fields, the three attachment slots, and both consents.
func (s *Service) CanSubmit(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSubmitLocked(ctx)
}

func (s *Service) canSubmitLocked(ctx context.Context) bool {
	rec := s.load(ctx)
	p := rec.Profile
	if p.FullName == "" || p.DateOfBirth == "" || p.DocumentNumber == "" || p.Address == "" {
		return false
	}
	for _, slot := range []FileSlot{SlotIDFront, SlotIDBack, SlotSelfie} {
		if _, ok := s.files[slot]; !ok {
			return false
		}
	}
	return rec.Consents.Terms && rec.Consents.PersonalData
}

// Submit hands the record off for verification: status moves to pending. With
// no real provider wired, the hand-off ends here; the demo control surface
// stands in for the provider callback.
func (s *Service) Submit(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "identity.Submit")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.canSubmitLocked(ctx) {
		return derrors.New(derrors.CodeValidationFailed, "identity record incomplete")
	}

	rec := s.load(ctx)
	rec.Status = StatusPending
	if err := s.persist(ctx, rec); err != nil {
		return err
	}

	s.metrics.IncrementIdentitySubmissions()
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionIdentitySubmitted})
	s.log.InfoContext(ctx, "identity submitted for verification")
	return nil
}

// Reset restores the default record and clears all attachments.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files = make(map[FileSlot]Attachment)
	if err := s.persist(ctx, DefaultRecord()); err != nil {
		return err
	}

	s.metrics.IncrementIdentityResets()
	s.audit.Emit(ctx, audit.Event{Action: audit.ActionIdentityReset})
	return nil
}

// SetStatus assigns the status directly. This substitutes the external
// verifier's out-of-band callback in the demo; any status is assignable.
func (s *Service) SetStatus(ctx context.Context, status Status) error {
	if !validStatuses[status] {
		return derrors.New(derrors.CodeInvalidInput, "invalid identity status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load(ctx)
	rec.Status = status
	if err := s.persist(ctx, rec); err != nil {
		return err
	}

	s.audit.Emit(ctx, audit.Event{
		Action: audit.ActionIdentityStatusSet,
		Detail: string(status),
	})
	s.log.InfoContext(ctx, "identity status set", "status", string(status))
	return nil
}
