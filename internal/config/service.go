package config

import "time"

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	ClientURL   string `yaml:"client_url"`

	// EncryptionKey is the 64-hex-char AES-256 key protecting wallet secrets at rest.
	EncryptionKey string `yaml:"encryption_key"`

	JWTSecret string `yaml:"jwt_secret"`

	NWC     NWCConfig     `yaml:"nwc"`
	LNURL   LNURLConfig   `yaml:"lnurl"`
	Bitcoin BitcoinConfig `yaml:"bitcoin"`
}

type NWCConfig struct {
	// RequestTimeout bounds one open-request-close session round trip.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// InvoiceExpiry is the hard expiry requested for lightning invoices.
	InvoiceExpiry time.Duration `yaml:"invoice_expiry"`
}

type LNURLConfig struct {
	RequestTimeout time.Duration `yaml:"request_timeout"`
	InvoiceExpiry  time.Duration `yaml:"invoice_expiry"`
}

type BitcoinConfig struct {
	// SoftExpiry is advisory only; on-chain payments have no hard timeout.
	SoftExpiry time.Duration `yaml:"soft_expiry"`
}
