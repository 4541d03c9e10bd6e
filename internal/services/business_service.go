package services

import (
	"context"
	"sync"

	"panditconnect/internal/caching"
	"panditconnect/internal/models"
	"panditconnect/internal/repositories"
	"panditconnect/internal/transform"

	"go.uber.org/zap"
)

// BusinessService is the synchronization core for the single canonical
// business record. It reconciles the store of record with the fallback cache:
// reads fall back to the cache when the store is empty or unreachable, writes
// go store-first and mirror to the cache only after the store confirms.
type BusinessService interface {
	// Load never fails; it falls back to the cached record, and to the
	// configured defaults when neither tier holds data.
	Load(ctx context.Context) *models.BusinessRecord
	Save(ctx context.Context, record *models.BusinessRecord) (*models.BusinessRecord, error)
	RefreshCache(ctx context.Context) error
}

type businessService struct {
	profileRepo repositories.BusinessProfileRepository
	appFileSvc  AppFileService
	cacheSvc    caching.CacheService
	defaults    *models.BusinessRecord
	logger      *zap.Logger

	// mu serializes the check-then-insert-or-update sequence. Two overlapping
	// writers could otherwise both observe an empty table and insert twice,
	// breaking the single-row invariant.
	mu sync.Mutex
}

func NewBusinessService(profileRepo repositories.BusinessProfileRepository, appFileSvc AppFileService, cacheSvc caching.CacheService, defaults *models.BusinessRecord, logger *zap.Logger) BusinessService {
	return &businessService{
		profileRepo: profileRepo,
		appFileSvc:  appFileSvc,
		cacheSvc:    cacheSvc,
		defaults:    defaults,
		logger:      logger,
	}
}

func (s *businessService) Load(ctx context.Context) *models.BusinessRecord {
	record, err := s.loadRemote(ctx)
	if err != nil {
		s.logger.Warn("store unreachable, falling back to cache", zap.Error(err))
	} else if record != nil {
		return record
	}

	cached, err := s.cacheSvc.GetBusinessRecord(ctx)
	if err != nil {
		s.logger.Warn("cache read failed", zap.Error(err))
	}
	if cached != nil {
		// Repair write: push the cached record back to the store. Awaited
		// under the same guard as Save, so a save cannot race past it.
		s.mu.Lock()
		if _, err := s.persistLocked(ctx, cached); err != nil {
			s.logger.Warn("repair write failed", zap.Error(err))
		}
		s.mu.Unlock()
		return cached
	}

	defaults := *s.defaults
	return &defaults
}

// loadRemote is the store branch of Load: the latest profile row with its
// current app-file reference attached, or nil when no row exists.
func (s *businessService) loadRemote(ctx context.Context) (*models.BusinessRecord, error) {
	profile, err := s.profileRepo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	record := transform.ToRecord(profile)
	ref, err := s.appFileSvc.LatestRef(ctx, profile.ID)
	if err != nil {
		s.logger.Warn("app file lookup failed", zap.Error(err))
	} else if ref != nil {
		record.AppFile = ref
	}
	return record, nil
}

// Save writes the record to the store (update in place when a row exists,
// insert otherwise), persists any freshly attached inline app file under the
// row's id, re-fetches the canonical record, and only then mirrors the
// caller-supplied record into the cache. Every failure propagates; the cache
// is left untouched on a failed store write.
func (s *businessService) Save(ctx context.Context, record *models.BusinessRecord) (*models.BusinessRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.persistLocked(ctx, record); err != nil {
		s.logger.Error("failed to save business record", zap.Error(err))
		return nil, err
	}

	saved, err := s.loadRemote(ctx)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = record
	}

	if err := s.cacheSvc.SetBusinessRecord(ctx, record); err != nil {
		// The cache is advisory; a failed mirror only costs fallback coverage.
		s.logger.Warn("cache mirror failed", zap.Error(err))
	}
	return saved, nil
}

// persistLocked runs the check-then-insert-or-update sequence plus the
// app-file write. Callers must hold mu.
func (s *businessService) persistLocked(ctx context.Context, record *models.BusinessRecord) (*models.BusinessProfile, error) {
	existing, err := s.profileRepo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}

	profile := transform.ToProfile(record)
	if existing != nil {
		profile.ID = existing.ID
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
	} else {
		if err := s.profileRepo.Insert(ctx, profile); err != nil {
			return nil, err
		}
	}

	if record.AppFile != nil && record.AppFile.Data != "" {
		if _, err := s.appFileSvc.Persist(ctx, profile.ID, record.AppFile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// RefreshCache re-mirrors the remote record into the cache. The background
// scheduler runs it so the cached copy never holds an expired signed URL.
func (s *businessService) RefreshCache(ctx context.Context) error {
	record, err := s.loadRemote(ctx)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	return s.cacheSvc.SetBusinessRecord(ctx, record)
}
