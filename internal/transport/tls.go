package transport

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/grpc/credentials"
)

// Mode controls how the data-plane listener handles TLS.
type Mode string

const (
	// ModeDisabled serves plaintext regardless of configured certificates.
	ModeDisabled Mode = "disabled"
	// ModePrefer upgrades to TLS when a certificate pair is configured and
	// readable, and falls back to plaintext with a warning otherwise.
	ModePrefer Mode = "prefer"
	// ModeRequire refuses to start without a working certificate pair.
	ModeRequire Mode = "require"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDisabled, ModePrefer, ModeRequire:
		return Mode(s), nil
	case "":
		return ModePrefer, nil
	default:
		return "", fmt.Errorf("invalid tls mode: %s (valid: disabled, prefer, require)", s)
	}
}

// Config names the certificate material for the server side of the data
// plane. CAFile is optional; when set, client certificates are required and
// verified against it.
type Config struct {
	Mode     Mode
	CertFile string
	KeyFile  string
	CAFile   string
}

// ServerCredentials resolves the configured mode to transport credentials.
// A nil result with nil error means plaintext.
func ServerCredentials(cfg Config) (credentials.TransportCredentials, error) {
	switch cfg.Mode {
	case ModeDisabled:
		return nil, nil

	case ModeRequire:
		creds, err := loadServerCredentials(cfg)
		if err != nil {
			return nil, fmt.Errorf("tls required but unavailable: %w", err)
		}
		return creds, nil

	case ModePrefer, "":
		if cfg.CertFile == "" || cfg.KeyFile == "" {
			slog.Warn("no certificate configured, data plane runs in plaintext")
			return nil, nil
		}
		creds, err := loadServerCredentials(cfg)
		if err != nil {
			slog.Warn("certificate unusable, data plane runs in plaintext", "error", err)
			return nil, nil
		}
		return creds, nil

	default:
		return nil, fmt.Errorf("invalid tls mode: %s", cfg.Mode)
	}
}

func loadServerCredentials(cfg Config) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load server certificate: %w", err)
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}

	if cfg.CAFile != "" {
		caPool := x509.NewCertPool()
		ca, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		if !caPool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("failed to append CA certificate")
		}
		config.ClientCAs = caPool
		config.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return credentials.NewTLS(config), nil
}
