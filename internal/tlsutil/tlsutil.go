// Package tlsutil loads transport credentials from env-pointed certificate
// files. TLS is orthogonal to the business logic: the same servers and
// clients run unmodified over encrypted or plaintext channels.
package tlsutil

import (
	"os"

	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// ServerCredentials returns TLS server credentials when both files exist,
// and (nil, false, nil) when they don't so the caller can start insecure.
func ServerCredentials(certFile, keyFile string) (credentials.TransportCredentials, bool, error) {
	if !fileExists(certFile) || !fileExists(keyFile) {
		return nil, false, nil
	}
	creds, err := credentials.NewServerTLSFromFile(certFile, keyFile)
	if err != nil {
		return nil, false, err
	}
	return creds, true, nil
}

// ClientCredentials returns TLS client credentials trusting the given CA
// certificate when TLS is enabled and the file exists; otherwise the
// insecure plaintext credentials.
func ClientCredentials(useTLS bool, certFile string) (credentials.TransportCredentials, error) {
	if !useTLS || !fileExists(certFile) {
		return insecure.NewCredentials(), nil
	}
	return credentials.NewClientTLSFromFile(certFile, "")
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
