package tlsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerCredentialsMissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.pem")

	creds, enabled, err := ServerCredentials(missing, missing)
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Nil(t, creds)

	creds, enabled, err = ServerCredentials("", "")
	require.NoError(t, err)
	assert.False(t, enabled)
	assert.Nil(t, creds)
}

func TestClientCredentialsFallsBackToInsecure(t *testing.T) {
	creds, err := ClientCredentials(false, "")
	require.NoError(t, err)
	assert.Equal(t, "insecure", creds.Info().SecurityProtocol)

	// TLS requested but no CA file on disk still yields a usable channel.
	creds, err = ClientCredentials(true, filepath.Join(t.TempDir(), "ca.pem"))
	require.NoError(t, err)
	assert.Equal(t, "insecure", creds.Info().SecurityProtocol)
}
