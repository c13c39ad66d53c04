package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Homeless-Gonnabe-5-0/Nestfinder/internal/model"
)

var (
	// ErrEmptyMessage is returned for blank messages
	ErrEmptyMessage = errors.New("message is empty")
	// ErrStoreDisabled is returned when no extraction store is configured
	ErrStoreDisabled = errors.New("extraction store is not configured")
)

// MissingAnchorPrompt is shown to the user when no location could be found
const MissingAnchorPrompt = "Where do you work or study? Give me an address or neighbourhood, " +
	"or drop a pin on the map, and I'll find places with a good commute."

// ExtractionStore persists extraction results
type ExtractionStore interface {
	LogExtraction(ctx context.Context, entry *model.ExtractionLog) error
	GetExtraction(ctx context.Context, extractionID string) (*model.ExtractionLog, error)
}

// QueryService wraps the extractor with caching, metrics and persistence
type QueryService struct {
	extractor *Extractor
	cache     *ExtractionCache
	store     ExtractionStore
	logger    *slog.Logger
	newID     func() string
	pending   sync.WaitGroup
}

// NewQueryService creates a query service. cache and store may be nil.
func NewQueryService(extractor *Extractor, cache *ExtractionCache, store ExtractionStore, logger *slog.Logger) *QueryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryService{
		extractor: extractor,
		cache:     cache,
		store:     store,
		logger:    logger,
		newID:     uuid.NewString,
	}
}

// Parse extracts a SearchSpec from req. A missing anchor is not an error:
// the response carries IntentNeedLocation and a prompt for the user.
func (s *QueryService) Parse(ctx context.Context, req *model.ExtractRequest) (*model.ExtractResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}
	pinned := req.HasPinnedLocation()

	startTime := time.Now()
	spec, missingAnchor, cached := s.extract(msg, pinned)
	took := time.Since(startTime)
	extractionLatency.Observe(took.Seconds())

	resp := &model.ExtractResponse{
		ExtractionID: s.newID(),
		Cached:       cached,
		Took:         took.Microseconds(),
	}

	outcome := model.OutcomeSuccess
	if missingAnchor {
		outcome = model.OutcomeMissingAnchor
		resp.Intent = model.IntentNeedLocation
		resp.Prompt = MissingAnchorPrompt
	} else {
		resp.Intent = model.IntentSearch
		resp.SearchParams = spec
		if pinned {
			resp.PinnedLat = req.PinnedLat
			resp.PinnedLng = req.PinnedLng
		}
	}
	extractionsTotal.WithLabelValues(outcome).Inc()

	s.logger.InfoContext(ctx, "message parsed",
		"extraction_id", resp.ExtractionID,
		"outcome", outcome,
		"pinned", pinned,
		"cached", cached,
		"took_us", resp.Took,
	)

	s.logAsync(&model.ExtractionLog{
		ExtractionID: resp.ExtractionID,
		Message:      msg,
		Pinned:       pinned,
		Outcome:      outcome,
		Spec:         (*model.SpecJSON)(spec.Clone()),
	})

	return resp, nil
}

// extract consults the cache before running the extractor
func (s *QueryService) extract(msg string, pinned bool) (spec *model.SearchSpec, missingAnchor, cached bool) {
	if s.cache != nil {
		if spec, missingAnchor, ok := s.cache.Get(msg, pinned); ok {
			extractionCacheTotal.WithLabelValues("hit").Inc()
			return spec, missingAnchor, true
		}
		extractionCacheTotal.WithLabelValues("miss").Inc()
	}

	spec, results, err := s.extractor.extract(msg, pinned)
	recordRules(results)
	missingAnchor = errors.Is(err, ErrMissingAnchor)

	s.logger.Debug("rules evaluated", "results", results, "missing_anchor", missingAnchor)

	if s.cache != nil {
		s.cache.Put(msg, pinned, spec, missingAnchor)
	}
	return spec, missingAnchor, false
}

// logAsync persists entry without blocking the caller
func (s *QueryService) logAsync(entry *model.ExtractionLog) {
	if s.store == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.store.LogExtraction(ctx, entry); err != nil {
			s.logger.Warn("failed to log extraction", "extraction_id", entry.ExtractionID, "error", err)
		}
	}()
}

// GetExtraction retrieves a previously logged extraction, or nil if unknown
func (s *QueryService) GetExtraction(ctx context.Context, extractionID string) (*model.ExtractionLog, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	return s.store.GetExtraction(ctx, extractionID)
}

// Wait blocks until every pending log write has finished
func (s *QueryService) Wait() {
	s.pending.Wait()
}
