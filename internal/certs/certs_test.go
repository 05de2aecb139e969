package certs

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaf(t *testing.T, cert tls.Certificate) *x509.Certificate {
	t.Helper()
	require.Len(t, cert.Certificate, 1, "should have one certificate")
	parsed, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)
	return parsed
}

func TestStore_Certificate(t *testing.T) {
	tests := []struct {
		setup          func(t *testing.T, certDir string)
		validateResult func(t *testing.T, cert tls.Certificate)
		name           string
		errorContains  string
		wantErr        bool
	}{
		{
			name: "issues a certificate when none exists",
			validateResult: func(t *testing.T, cert tls.Certificate) {
				t.Helper()
				x509Cert := leaf(t, cert)

				assert.Equal(t, "show-me-the-data", x509Cert.Subject.Organization[0])
				assert.Contains(t, x509Cert.DNSNames, "localhost")
				assert.Len(t, x509Cert.IPAddresses, 2)
				assert.True(t, x509Cert.NotAfter.After(time.Now().Add(364*24*time.Hour)), "certificate should be valid for about a year")

				for _, host := range DefaultHosts {
					assert.NoError(t, x509Cert.VerifyHostname(host), host)
				}
			},
		},
		{
			name: "replaces unreadable certificate files",
			setup: func(t *testing.T, certDir string) {
				t.Helper()
				require.NoError(t, os.MkdirAll(certDir, 0700))
				require.NoError(t, os.WriteFile(filepath.Join(certDir, "smtd.crt"), []byte("invalid certificate data"), 0600))
				require.NoError(t, os.WriteFile(filepath.Join(certDir, "smtd.key"), []byte("invalid key data"), 0600))
			},
			validateResult: func(t *testing.T, cert tls.Certificate) {
				t.Helper()
				assert.True(t, leaf(t, cert).NotBefore.After(time.Now().Add(-2*time.Minute)))
			},
		},
		{
			name: "fails when the directory is a file",
			setup: func(t *testing.T, certDir string) {
				t.Helper()
				require.NoError(t, os.MkdirAll(filepath.Dir(certDir), 0700))
				require.NoError(t, os.WriteFile(certDir, []byte("not a directory"), 0600))
			},
			wantErr:       true,
			errorContains: "failed to stat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certDir := filepath.Join(t.TempDir(), "certs")
			if tt.setup != nil {
				tt.setup(t, certDir)
			}

			cert, err := NewStore(certDir).Certificate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			tt.validateResult(t, cert)

			certFile, keyFile := NewStore(certDir).Paths()
			for _, path := range []string{certFile, keyFile} {
				info, statErr := os.Stat(path)
				require.NoError(t, statErr)
				assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), path)
			}
		})
	}
}

func TestStore_ReusesValidCertificate(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir).Certificate()
	require.NoError(t, err)
	second, err := NewStore(dir).Certificate()
	require.NoError(t, err)

	assert.Equal(t, leaf(t, first).SerialNumber, leaf(t, second).SerialNumber)
}

func TestStore_RenewsNearExpiry(t *testing.T) {
	dir := t.TempDir()
	issuedAt := time.Now().Add(-DefaultValidity + time.Hour)

	old := NewStore(dir)
	old.now = func() time.Time { return issuedAt }
	first, err := old.Certificate()
	require.NoError(t, err)

	second, err := NewStore(dir).Certificate()
	require.NoError(t, err)

	assert.NotEqual(t, leaf(t, first).SerialNumber, leaf(t, second).SerialNumber)
	assert.True(t, leaf(t, second).NotAfter.After(time.Now().Add(300*24*time.Hour)))
}

func TestStore_ReissuesForNewHost(t *testing.T) {
	dir := t.TempDir()

	_, err := NewStore(dir).Certificate()
	require.NoError(t, err)

	cert, err := NewStore(dir, "smtd.lan", "10.0.0.5").Certificate()
	require.NoError(t, err)

	x509Cert := leaf(t, cert)
	assert.NoError(t, x509Cert.VerifyHostname("smtd.lan"))
	assert.NoError(t, x509Cert.VerifyHostname("10.0.0.5"))
	assert.NoError(t, x509Cert.VerifyHostname("localhost"))
}

func TestStore_LogsOnlyWhenIssuing(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	store := NewStore(t.TempDir())
	_, err := store.Certificate()
	require.NoError(t, err)
	_, err = store.Certificate()
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "issued self-signed certificate"))
	assert.Contains(t, buf.String(), "smtd.crt")
}

func TestStore_Exists(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	exists, err := store.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Certificate()
	require.NoError(t, err)

	exists, err = store.Exists()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNewStore_DeduplicatesHosts(t *testing.T) {
	store := NewStore(t.TempDir(), "localhost", "", "smtd.lan")
	assert.Equal(t, []string{"localhost", "127.0.0.1", "::1", "smtd.lan"}, store.hosts)
}

func TestHostFromListen(t *testing.T) {
	tests := []struct {
		listen string
		want   string
	}{
		{":8000", ""},
		{"0.0.0.0:8443", ""},
		{"[::]:8443", ""},
		{"127.0.0.1:8443", "127.0.0.1"},
		{"smtd.lan:443", "smtd.lan"},
		{"not-an-address", ""},
	}

	for _, tt := range tests {
		t.Run(tt.listen, func(t *testing.T) {
			assert.Equal(t, tt.want, HostFromListen(tt.listen))
		})
	}
}
