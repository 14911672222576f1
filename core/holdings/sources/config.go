package sources

// Config holds configuration for the holdings sources.
type Config struct {
	// TimeoutSeconds bounds each source call (all of its requests together).
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
	// RequestsPerSecond is the per-source outbound request rate.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"10"`
	// MaxParallel bounds concurrent per-contract queries inside one source.
	MaxParallel int `mapstructure:"max_parallel" default:"8"`
	// PageSize is the cw721 tokens page size.
	PageSize int `mapstructure:"page_size" default:"30"`
	// Knowhere configures the Knowhere marketplace source.
	Knowhere KnowhereConfig `mapstructure:"knowhere"`
	// LCD configures the fixed-coverage LCD source.
	LCD LCDConfig `mapstructure:"lcd"`
	// Indexer configures the wallet-holdings indexer source.
	Indexer IndexerConfig `mapstructure:"indexer"`
}

// KnowhereConfig holds configuration for the Knowhere source.
type KnowhereConfig struct {
	// Enabled turns the source on.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// URL is the Knowhere backend base URL.
	URL string `mapstructure:"url" default:"https://prod-backend-mainnet.knowhere.art"`
	// FCDURL is the Terra FCD base URL used for contract store queries.
	FCDURL string `mapstructure:"fcd_url" default:"https://fcd.terra.dev"`
	// CollectionsTTLSeconds is how long the collection list is reused.
	CollectionsTTLSeconds int `mapstructure:"collections_ttl_seconds" default:"300"`
}

// LCDConfig holds configuration for the LCD source.
type LCDConfig struct {
	// Enabled turns the source on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// URL is the LCD node base URL.
	URL string `mapstructure:"url" default:"https://lcd.terra.dev"`
	// Contracts is the comma separated list of covered contracts.
	Contracts []string `mapstructure:"contracts" default:""`
}

// IndexerConfig holds configuration for the indexer source.
type IndexerConfig struct {
	// Enabled turns the source on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// URL is the indexer base URL.
	URL string `mapstructure:"url" default:""`
	// APIKey is sent as X-API-Key when set.
	APIKey string `mapstructure:"api_key" default:""`
}
