package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"realty-crm-backend/internal/services"
)

type fakeSigner struct {
	err     error
	bucket  string
	path    string
	expires int
}

func (f *fakeSigner) CreateSignedURL(bucket, path string, expiresInSeconds int) (string, error) {
	f.bucket = bucket
	f.path = path
	f.expires = expiresInSeconds
	if f.err != nil {
		return "", f.err
	}
	return "https://supabase.test/storage/v1/object/sign/" + bucket + "/" + path + "?token=abc", nil
}

func TestParseObjectURL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantBucket string
		wantPath   string
		wantPublic bool
		wantErr    bool
	}{
		{
			name:       "public url names its bucket",
			url:        "https://supabase.test/storage/v1/object/public/clients/client-documents/abc/1_contract.pdf",
			wantBucket: "clients",
			wantPath:   "client-documents/abc/1_contract.pdf",
			wantPublic: true,
		},
		{
			name:       "non public url falls back to default bucket",
			url:        "https://supabase.test/client-documents/abc/1_contract.pdf",
			wantBucket: "properties",
			wantPath:   "client-documents/abc/1_contract.pdf",
			wantPublic: false,
		},
		{
			name:    "public segment without object path",
			url:     "https://supabase.test/storage/v1/object/public/clients",
			wantErr: true,
		},
		{
			name:    "empty path",
			url:     "https://supabase.test",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, path, isPublic, err := services.ParseObjectURL(tt.url, "properties")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantPublic, isPublic)
		})
	}
}

func TestResolve_SignsWithConfiguredTTL(t *testing.T) {
	signer := &fakeSigner{}
	svc := services.NewDownloadService(signer, "clients", 3600)

	url, signed, err := svc.Resolve("https://supabase.test/storage/v1/object/public/clients/client-documents/abc/1_contract.pdf")
	require.NoError(t, err)

	assert.True(t, signed)
	assert.Contains(t, url, "token=")
	assert.Equal(t, "clients", signer.bucket)
	assert.Equal(t, "client-documents/abc/1_contract.pdf", signer.path)
	assert.Equal(t, 3600, signer.expires)
}

func TestResolve_FallsBackToPublicURLWhenSigningFails(t *testing.T) {
	signer := &fakeSigner{err: errors.New("signing unavailable")}
	svc := services.NewDownloadService(signer, "clients", 3600)

	stored := "https://supabase.test/storage/v1/object/public/clients/client-documents/abc/1_contract.pdf"
	url, signed, err := svc.Resolve(stored)
	require.NoError(t, err)

	// the original public link still works, so the caller gets it unsigned
	assert.False(t, signed)
	assert.Equal(t, stored, url)
}

func TestResolve_PropagatesErrorForNonPublicURL(t *testing.T) {
	signer := &fakeSigner{err: errors.New("signing unavailable")}
	svc := services.NewDownloadService(signer, "clients", 3600)

	_, _, err := svc.Resolve("https://supabase.test/client-documents/abc/1_contract.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to sign download url")
}

func TestResolve_NonPublicURLSignsAgainstOwnBucket(t *testing.T) {
	// Property media and client documents each get a resolver defaulting to
	// their own bucket; a stored URL without a public segment must be signed
	// against that bucket, not the other one.
	propertySigner := &fakeSigner{}
	propertySvc := services.NewDownloadService(propertySigner, "properties", 3600)

	_, signed, err := propertySvc.Resolve("https://supabase.test/property-documents/abc/1_contract.pdf")
	require.NoError(t, err)
	assert.True(t, signed)
	assert.Equal(t, "properties", propertySigner.bucket)

	clientSigner := &fakeSigner{}
	clientSvc := services.NewDownloadService(clientSigner, "clients", 3600)

	_, signed, err = clientSvc.Resolve("https://supabase.test/client-documents/abc/1_contract.pdf")
	require.NoError(t, err)
	assert.True(t, signed)
	assert.Equal(t, "clients", clientSigner.bucket)
	assert.Equal(t, "client-documents/abc/1_contract.pdf", clientSigner.path)
}
