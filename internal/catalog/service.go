package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"release-gateway/internal/platform/metrics"
	"release-gateway/internal/recordstore"
	derrors "release-gateway/pkg/domain-errors"
	"release-gateway/pkg/platform/sentinel"
)

// Service serves merged catalog reads. User-published releases come from the
// record store; the sample inventory is compiled in.
type Service struct {
	store   recordstore.Store
	log     *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	mu       sync.Mutex
	userList []Release
	loaded   bool
}

func New(store recordstore.Store, log *slog.Logger, m *metrics.Metrics) *Service {
	s := &Service{
		store:   store,
		log:     log,
		metrics: m,
		tracer:  otel.Tracer("catalog"),
	}
	// Writes from this process and from peers both land here; either way the
	// cached user slice is stale.
	store.Subscribe(recordstore.KeyReleases, func(key recordstore.Key, origin recordstore.Origin) {
		s.invalidate()
	})
	return s
}

func (s *Service) invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.userList = nil
	s.mu.Unlock()
}

// userReleases loads the user-published list, fail-soft: a missing or
// malformed record reads as empty.
func (s *Service) userReleases(ctx context.Context) []Release {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.userList
	}
	raw, err := s.store.Load(ctx, recordstore.KeyReleases)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.log.Warn("loading user releases", "error", err)
		}
		s.userList = nil
		s.loaded = true
		return nil
	}
	var list []Release
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn("malformed user release list, treating as empty", "error", err)
		list = nil
	}
	s.userList = list
	s.loaded = true
	return s.userList
}

// Merged returns user-published releases followed by the samples.
func (s *Service) Merged(ctx context.Context) []Release {
	user := s.userReleases(ctx)
	out := make([]Release, 0, len(user)+len(sampleReleases))
	out = append(out, user...)
	out = append(out, sampleReleases...)
	return out
}

// Search filters and orders the merged catalog. The result is a fresh slice;
// the default sort preserves merged order.
func (s *Service) Search(ctx context.Context, q Query) []Release {
	ctx, span := s.tracer.Start(ctx, "catalog.Search")
	defer span.End()
	s.metrics.IncrementCatalogQueries()

	arr := s.Merged(ctx)
	if text := strings.TrimSpace(q.Text); text != "" {
		needle := strings.ToLower(text)
		filtered := arr[:0:0]
		for _, r := range arr {
			if matchesText(r, needle) {
				filtered = append(filtered, r)
			}
		}
		arr = filtered
	}
	if q.Status != "" {
		filtered := arr[:0:0]
		for _, r := range arr {
			if r.Status == q.Status {
				filtered = append(filtered, r)
			}
		}
		arr = filtered
	}
	if q.AssetType != "" {
		filtered := arr[:0:0]
		for _, r := range arr {
			if r.AssetType == q.AssetType {
				filtered = append(filtered, r)
			}
		}
		arr = filtered
	}
	switch q.Sort {
	case SortYield:
		sort.SliceStable(arr, func(i, j int) bool { return arr[i].Yield > arr[j].Yield })
	case SortAmount:
		sort.SliceStable(arr, func(i, j int) bool { return arr[i].Amount > arr[j].Amount })
	case SortProgress:
		sort.SliceStable(arr, func(i, j int) bool { return arr[i].Progress() > arr[j].Progress() })
	}
	return arr
}

func matchesText(r Release, needle string) bool {
	fields := []string{r.Title, r.Issuer, r.ID, string(r.AssetType), string(r.Instrument)}
	fields = append(fields, r.Tags...)
	haystack := strings.ToLower(strings.Join(fields, " "))
	return strings.Contains(haystack, needle)
}

// Get looks a release up by id across the merged catalog.
func (s *Service) Get(ctx context.Context, id string) (Release, error) {
	for _, r := range s.Merged(ctx) {
		if r.ID == id {
			return r, nil
		}
	}
	return Release{}, derrors.New(derrors.CodeNotFound, "release not found")
}

// Stats counts the merged catalog by lifecycle phase.
func (s *Service) Stats(ctx context.Context) Stats {
	var st Stats
	for _, r := range s.Merged(ctx) {
		st.Total++
		switch r.Status {
		case StatusActive:
			st.Active++
		case StatusUpcoming:
			st.Upcoming++
		case StatusRedeemed:
			st.Redeemed++
		}
	}
	return st
}
