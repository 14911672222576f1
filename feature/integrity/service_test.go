package integrity

import (
	"context"
	"testing"
	"time"

	"lunar-assistant/core/database"
	"lunar-assistant/core/guildconfig"
	"lunar-assistant/core/holdings"
	"lunar-assistant/core/storage/mocks"
	"lunar-assistant/feature/wallet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

type probeSource struct {
	name string
	err  error
}

func (p probeSource) Name() string       { return p.name }
func (p probeSource) Coverage() []string { return nil }
func (p probeSource) ListHoldings(context.Context, string) (map[string][]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	return map[string][]string{"terra1a": {"1"}}, nil
}

func TestService_Storage(t *testing.T) {
	client := new(mocks.Client)
	svc := NewService(client, "lunar", "rules", nil, nil, time.Second, zap.NewNop())

	client.On("BucketExists", mock.Anything, "lunar").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "lunar", mock.Anything).Return(nil)

	report, err := svc.CheckStorage(context.Background())
	require.NoError(t, err)
	assert.False(t, report.BucketExists)

	require.NoError(t, svc.FixStorage(context.Background()))
	client.AssertExpectations(t)
}

func TestService_StorageNotConfigured(t *testing.T) {
	svc := NewService(nil, "lunar", "rules", nil, nil, time.Second, zap.NewNop())

	_, err := svc.CheckStorage(context.Background())
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
	assert.ErrorIs(t, svc.FixStorage(context.Background()), ErrStorageNotConfigured)
}

func TestService_Database(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &wallet.Link{}, &guildconfig.Record{}))

	svc := NewService(nil, "", "", db, nil, time.Second, zap.NewNop())
	report, err := svc.CheckDatabase()
	require.NoError(t, err)
	assert.True(t, report.Matched, "%+v", report)
	assert.Contains(t, report.Tables, "wallet_links")
	assert.Contains(t, report.Tables, "guild_configs")
}

func TestService_DatabaseNotMigrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	svc := NewService(nil, "", "", db, nil, time.Second, zap.NewNop())
	report, err := svc.CheckDatabase()
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"user_id", "address", "created_at", "updated_at"}, report.Tables["wallet_links"].MissingColumns)
}

func TestService_Sources(t *testing.T) {
	srcs := []holdings.Source{probeSource{name: "knowhere"}, probeSource{name: "lcd", err: assert.AnError}}
	svc := NewService(nil, "", "", nil, srcs, time.Second, zap.NewNop())

	report := svc.CheckSources(context.Background(), "terra1probe")
	assert.Equal(t, "terra1probe", report.Wallet)
	assert.Equal(t, 1, report.Available)
}
