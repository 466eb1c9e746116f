package supabase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"realty-crm-backend/internal/supabase"
)

func TestStorageClient_PublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co", "service-role-key")
	assert.NoError(t, err)

	url := client.PublicURL("properties", "property-images/abc/123_main.jpg")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/properties/property-images/abc/123_main.jpg", url)
}

func TestStorageClient_PublicURL_TrimsTrailingSlash(t *testing.T) {
	client, err := supabase.NewStorageClient("https://example.supabase.co/", "service-role-key")
	assert.NoError(t, err)

	url := client.PublicURL("clients", "client-documents/abc/contract.pdf")
	assert.Equal(t, "https://example.supabase.co/storage/v1/object/public/clients/client-documents/abc/contract.pdf", url)
}
