package integrity

import (
	"context"
	"errors"
	"time"

	"lunar-assistant/core/guildconfig"
	"lunar-assistant/core/holdings"
	"lunar-assistant/core/storage"
	"lunar-assistant/feature/integrity/checks"
	"lunar-assistant/feature/wallet"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageNotConfigured is returned by storage checks without a client.
var ErrStorageNotConfigured = errors.New("storage not configured")

// schemaModels are the tables the service owns.
var schemaModels = []any{wallet.Link{}, guildconfig.Record{}}

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	prefix  string
	db      *gorm.DB
	sources []holdings.Source
	timeout time.Duration
	logger  *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil when
// the corresponding backend is not in use.
func NewService(client storage.Client, bucket, prefix string, db *gorm.DB, sources []holdings.Source, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		db:      db,
		sources: sources,
		timeout: timeout,
		logger:  logger,
	}
}

// CheckStorage reports on the bucket and the rule configuration prefix.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	if s.client == nil {
		return nil, ErrStorageNotConfigured
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.prefix)
}

// FixStorage creates the missing bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return ErrStorageNotConfigured
	}
	return checks.FixStorage(ctx, s.client, s.bucket, s.logger)
}

// CheckDatabase compares the wallet and rule tables with their models.
func (s *Service) CheckDatabase() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, schemaModels...)
}

// CheckSources probes every holdings source with wallet.
func (s *Service) CheckSources(ctx context.Context, wallet string) *checks.SourcesReport {
	return checks.CheckSources(ctx, s.sources, wallet, s.timeout)
}
