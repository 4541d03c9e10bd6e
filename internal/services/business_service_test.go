package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"panditconnect/internal/caching"
	"panditconnect/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type MockBusinessProfileRepository struct {
	mock.Mock
}

func (m *MockBusinessProfileRepository) GetLatest(ctx context.Context) (*models.BusinessProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BusinessProfile), args.Error(1)
}

func (m *MockBusinessProfileRepository) Insert(ctx context.Context, profile *models.BusinessProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockBusinessProfileRepository) Update(ctx context.Context, profile *models.BusinessProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockAppFileServiceForSync struct {
	mock.Mock
}

func (m *MockAppFileServiceForSync) Persist(ctx context.Context, businessID uuid.UUID, ref *models.AppFileRef) (*models.AppFile, error) {
	args := m.Called(ctx, businessID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppFile), args.Error(1)
}

func (m *MockAppFileServiceForSync) LatestRef(ctx context.Context, businessID uuid.UUID) (*models.AppFileRef, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppFileRef), args.Error(1)
}

type BusinessServiceTestSuite struct {
	suite.Suite
	redis    *miniredis.Miniredis
	cacheSvc caching.CacheService
	repo     *MockBusinessProfileRepository
	appFiles *MockAppFileServiceForSync
	service  BusinessService
	context  context.Context
}

func (suite *BusinessServiceTestSuite) SetupTest() {
	redis, err := miniredis.Run()
	assert.NoError(suite.T(), err)
	suite.redis = redis

	suite.cacheSvc = caching.NewRedisCacheService(redis.Addr(), "", 0)
	suite.repo = &MockBusinessProfileRepository{}
	suite.appFiles = &MockAppFileServiceForSync{}
	suite.service = NewBusinessService(suite.repo, suite.appFiles, suite.cacheSvc, models.DefaultBusinessRecord(), zap.NewNop())
	suite.context = context.Background()
}

func (suite *BusinessServiceTestSuite) TearDownTest() {
	suite.redis.Close()
	suite.repo.AssertExpectations(suite.T())
	suite.appFiles.AssertExpectations(suite.T())
}

func TestBusinessServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BusinessServiceTestSuite))
}

func (suite *BusinessServiceTestSuite) TestLoad_RemoteRowWins() {
	id := uuid.New()
	profile := &models.BusinessProfile{
		ID:             id,
		BusinessName:   models.StringPtr("PanditConnect"),
		TotalPandits:   500,
		HappyCustomers: 1000,
		UpdatedAt:      time.Now(),
	}

	suite.repo.On("GetLatest", suite.context).Return(profile, nil).Once()
	suite.appFiles.On("LatestRef", suite.context, id).Return(nil, nil).Once()

	record := suite.service.Load(suite.context)
	assert.Equal(suite.T(), "PanditConnect", *record.BusinessName)
	// Raw counter value; the "500+" suffix is presentation-only.
	assert.Equal(suite.T(), 500, record.TotalPandits)
	assert.Equal(suite.T(), id.String(), record.ID)
	assert.Nil(suite.T(), record.AppFile)
}

func (suite *BusinessServiceTestSuite) TestLoad_AttachesLatestAppFile() {
	id := uuid.New()
	profile := &models.BusinessProfile{ID: id, BusinessName: models.StringPtr("PanditConnect")}
	ref := &models.AppFileRef{Name: "panditconnect.apk", URL: "https://storage.example.com/signed"}

	suite.repo.On("GetLatest", suite.context).Return(profile, nil).Once()
	suite.appFiles.On("LatestRef", suite.context, id).Return(ref, nil).Once()

	record := suite.service.Load(suite.context)
	assert.Equal(suite.T(), ref, record.AppFile)
}

func (suite *BusinessServiceTestSuite) TestLoad_EmptyStoreRepairsFromCache() {
	cached := &models.BusinessRecord{BusinessName: models.StringPtr("X")}
	assert.NoError(suite.T(), suite.cacheSvc.SetBusinessRecord(suite.context, cached))

	// Once for the read, once inside the repair write's presence check.
	suite.repo.On("GetLatest", suite.context).Return(nil, nil).Twice()
	suite.repo.On("Insert", suite.context, mock.AnythingOfType("*models.BusinessProfile")).Return(nil).Once()

	record := suite.service.Load(suite.context)
	assert.Equal(suite.T(), "X", *record.BusinessName)

	// Exactly one repair insert.
	suite.repo.AssertNumberOfCalls(suite.T(), "Insert", 1)
}

func (suite *BusinessServiceTestSuite) TestLoad_UnreachableStoreFallsBackToCache() {
	cached := &models.BusinessRecord{BusinessName: models.StringPtr("X")}
	assert.NoError(suite.T(), suite.cacheSvc.SetBusinessRecord(suite.context, cached))

	suite.repo.On("GetLatest", suite.context).Return(nil, errors.New("connection refused"))

	// The repair write fails too; Load still serves the cached record.
	record := suite.service.Load(suite.context)
	assert.Equal(suite.T(), "X", *record.BusinessName)
}

func (suite *BusinessServiceTestSuite) TestLoad_NothingAnywhereServesDefaults() {
	suite.repo.On("GetLatest", suite.context).Return(nil, nil).Once()

	record := suite.service.Load(suite.context)
	assert.Equal(suite.T(), "PanditConnect", *record.BusinessName)
	assert.Equal(suite.T(), 500, record.TotalPandits)
	assert.Equal(suite.T(), 1000, record.HappyCustomers)

	// Defaults are served, never persisted.
	suite.repo.AssertNotCalled(suite.T(), "Insert", mock.Anything, mock.Anything)
}

func (suite *BusinessServiceTestSuite) TestSave_FirstWriteInsertsAndPersistsAppFile() {
	rowID := uuid.New()
	inline := EncodeForUpload([]byte("apk bytes"), "application/vnd.android.package-archive")
	record := &models.BusinessRecord{
		BusinessName: models.StringPtr("PanditConnect"),
		AppFile:      &models.AppFileRef{Name: "panditconnect.apk", Data: inline},
	}

	savedProfile := &models.BusinessProfile{
		ID:           rowID,
		BusinessName: models.StringPtr("PanditConnect"),
		UpdatedAt:    time.Now(),
	}
	signedRef := &models.AppFileRef{Name: "panditconnect.apk", URL: "https://storage.example.com/signed"}

	// Presence check sees an empty table, then the re-fetch sees the new row.
	suite.repo.On("GetLatest", suite.context).Return(nil, nil).Once()
	suite.repo.On("Insert", suite.context, mock.AnythingOfType("*models.BusinessProfile")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.BusinessProfile).ID = rowID
		}).Return(nil).Once()
	suite.appFiles.On("Persist", suite.context, rowID, record.AppFile).
		Return(&models.AppFile{ID: uuid.New(), BusinessID: rowID}, nil).Once()
	suite.repo.On("GetLatest", suite.context).Return(savedProfile, nil).Once()
	suite.appFiles.On("LatestRef", suite.context, rowID).Return(signedRef, nil).Once()

	saved, err := suite.service.Save(suite.context, record)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), rowID.String(), saved.ID)

	// The caller observes the signed URL, not the inline payload.
	assert.Equal(suite.T(), "https://storage.example.com/signed", saved.AppFile.URL)
	assert.Empty(suite.T(), saved.AppFile.Data)

	// The cache mirrors the caller-supplied shape, inline payload included.
	mirrored, err := suite.cacheSvc.GetBusinessRecord(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), inline, mirrored.AppFile.Data)
}

func (suite *BusinessServiceTestSuite) TestSave_SecondWriteUpdatesInPlace() {
	rowID := uuid.New()
	existing := &models.BusinessProfile{ID: rowID, BusinessName: models.StringPtr("PanditConnect")}
	record := &models.BusinessRecord{BusinessName: models.StringPtr("PanditConnect Updated")}

	suite.repo.On("GetLatest", suite.context).Return(existing, nil)
	suite.repo.On("Update", suite.context, mock.MatchedBy(func(p *models.BusinessProfile) bool {
		return p.ID == rowID
	})).Return(nil).Twice()
	suite.appFiles.On("LatestRef", suite.context, rowID).Return(nil, nil)

	_, err := suite.service.Save(suite.context, record)
	assert.NoError(suite.T(), err)
	_, err = suite.service.Save(suite.context, record)
	assert.NoError(suite.T(), err)

	// Two sequential saves never insert a second row.
	suite.repo.AssertNotCalled(suite.T(), "Insert", mock.Anything, mock.Anything)
}

func (suite *BusinessServiceTestSuite) TestSave_StoreFailureLeavesCacheUntouched() {
	record := &models.BusinessRecord{BusinessName: models.StringPtr("PanditConnect")}

	suite.repo.On("GetLatest", suite.context).Return(nil, errors.New("connection refused")).Once()

	_, err := suite.service.Save(suite.context, record)
	assert.Error(suite.T(), err)

	cached, cerr := suite.cacheSvc.GetBusinessRecord(suite.context)
	assert.NoError(suite.T(), cerr)
	assert.Nil(suite.T(), cached)
}

func (suite *BusinessServiceTestSuite) TestRefreshCache_MirrorsRemoteRecord() {
	id := uuid.New()
	profile := &models.BusinessProfile{ID: id, BusinessName: models.StringPtr("PanditConnect")}
	ref := &models.AppFileRef{Name: "panditconnect.apk", URL: "https://storage.example.com/fresh"}

	suite.repo.On("GetLatest", suite.context).Return(profile, nil).Once()
	suite.appFiles.On("LatestRef", suite.context, id).Return(ref, nil).Once()

	assert.NoError(suite.T(), suite.service.RefreshCache(suite.context))

	cached, err := suite.cacheSvc.GetBusinessRecord(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://storage.example.com/fresh", cached.AppFile.URL)
}

func (suite *BusinessServiceTestSuite) TestRefreshCache_EmptyStoreIsANoOp() {
	suite.repo.On("GetLatest", suite.context).Return(nil, nil).Once()

	assert.NoError(suite.T(), suite.service.RefreshCache(suite.context))

	cached, err := suite.cacheSvc.GetBusinessRecord(suite.context)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), cached)
}
