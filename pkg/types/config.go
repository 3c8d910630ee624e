package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "biblioscope/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CatalogConfig holds settings for the SRU catalog client.
type CatalogConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the SRU endpoint root (default "https://sru.k10plus.de").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Database is the catalog collection to query (default "opac-de-18").
	Database string `json:"database" yaml:"database"`

	// MaxRecords caps the records returned per query (default 10).
	MaxRecords int `json:"max_records" yaml:"max_records"`

	// RecordSchema selects the bibliographic serialization dialect
	// (default "mods36").
	RecordSchema string `json:"record_schema" yaml:"record_schema"`

	// AccessKey is an optional service key sent as the wskey parameter.
	// Endpoints that need one (e.g. OCLC) reject anonymous queries.
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
}

// StoreConfig holds settings for the document store.
type StoreConfig struct {
	// Path is the SQLite database file (default "biblioscope.db").
	Path string `json:"path" yaml:"path"`
}

// Config groups all component configurations.
type Config struct {
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
