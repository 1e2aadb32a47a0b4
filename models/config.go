package models

import "time"

type Config struct {
	Debug          bool   `yaml:"debug" envconfig:"VLM_DEBUG" default:"false"`
	ServiceContact string `yaml:"serviceContact" envconfig:"VLM_SERVICE_CONTACT"`
	SemVer         string `yaml:"semVer" envconfig:"VLM_SEMVER" default:"0.1.0"`

	Api struct {
		Url  string `yaml:"url" envconfig:"VLM_API_URL" default:"http://localhost:5000"`
		Port string `yaml:"port" envconfig:"VLM_API_INTERNAL_PORT" default:"5000"`
	} `yaml:"api"`

	Network struct {
		VariantEndpoint string        `yaml:"variantEndpoint" envconfig:"VLM_NETWORK_VARIANT_ENDPOINT" default:"http://localhost:8000/variant"`
		GeneEndpoint    string        `yaml:"geneEndpoint" envconfig:"VLM_NETWORK_GENE_ENDPOINT" default:"http://localhost:8000/gene"`
		RequestTimeout  time.Duration `yaml:"requestTimeout" envconfig:"VLM_NETWORK_REQUEST_TIMEOUT" default:"30s"`
		// 0 disables transport-level retries entirely
		MaxRetries           int           `yaml:"maxRetries" envconfig:"VLM_NETWORK_MAX_RETRIES" default:"0"`
		RetryInitialInterval time.Duration `yaml:"retryInitialInterval" envconfig:"VLM_NETWORK_RETRY_INITIAL_INTERVAL" default:"500ms"`
		UseMock              bool          `yaml:"useMock" envconfig:"VLM_NETWORK_USE_MOCK" default:"false"`
		// outbound requests per second across all queries; 0 is unlimited
		RequestsPerSecond float64 `yaml:"requestsPerSecond" envconfig:"VLM_NETWORK_REQUESTS_PER_SECOND" default:"0"`
		RequestBurst      int     `yaml:"requestBurst" envconfig:"VLM_NETWORK_REQUEST_BURST" default:"1"`
	} `yaml:"network"`

	Registry struct {
		// optional; the built-in node table is used when empty
		Path string `yaml:"path" envconfig:"VLM_REGISTRY_PATH"`
	} `yaml:"registry"`

	Cache struct {
		Capacity int `yaml:"capacity" envconfig:"VLM_CACHE_CAPACITY" default:"256"`
	} `yaml:"cache"`

	Sessions struct {
		IdleTimeout   time.Duration `yaml:"idleTimeout" envconfig:"VLM_SESSIONS_IDLE_TIMEOUT" default:"30m"`
		SweepInterval time.Duration `yaml:"sweepInterval" envconfig:"VLM_SESSIONS_SWEEP_INTERVAL" default:"5m"`
	} `yaml:"sessions"`
}
