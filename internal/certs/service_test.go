package certs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()

	s, err := New(
		filepath.Join(dir, "ca.crt"),
		filepath.Join(dir, "ca.key"),
		filepath.Join(dir, "server.crt"),
		filepath.Join(dir, "server.key"),
		nil,
	)
	require.NoError(t, err)
	return s
}

func TestNewGeneratesCertificates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping key generation in short mode")
	}

	s := newTestService(t)

	for _, path := range []string{s.CaCertPath, s.CaKeyPath, s.ServerCertPath, s.ServerKeyPath} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	pem, err := s.ServerCertPEM()
	require.NoError(t, err)
	assert.Contains(t, pem, "BEGIN CERTIFICATE")
}

func TestNewReusesExistingCertificates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping key generation in short mode")
	}

	s := newTestService(t)
	before, err := s.ServerCertPEM()
	require.NoError(t, err)

	// A second service over the same paths must not regenerate.
	s2, err := New(s.CaCertPath, s.CaKeyPath, s.ServerCertPath, s.ServerKeyPath, nil)
	require.NoError(t, err)

	after, err := s2.ServerCertPEM()
	require.NoError(t, err)
	assert.Equal(t, CertHash(before), CertHash(after))
}

func TestRotateReplacesServerCert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping key generation in short mode")
	}

	s := newTestService(t)
	before, err := s.ServerCertPEM()
	require.NoError(t, err)

	after, err := s.Rotate()
	require.NoError(t, err)
	assert.NotEqual(t, CertHash(before), CertHash(after))
}
