package auth

import (
	"encoding/base64"
	"strings"
	"testing"

	domainerrors "listingmanager/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBasicCredential_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		secret     string
	}{
		{name: "plain", identifier: "yourUsername", secret: "yourPassword"},
		{name: "secret with colon", identifier: "store", secret: "pa:ss:word"},
		{name: "unicode", identifier: "商店", secret: "密碼"},
		{name: "spaces", identifier: "my store", secret: " padded "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := NewBasicCredential(tt.identifier, tt.secret)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(cred, "Basic "))

			decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(cred, "Basic "))
			require.NoError(t, err)
			assert.Equal(t, tt.identifier+":"+tt.secret, string(decoded))
		})
	}
}

func TestNewBasicCredential_KnownValue(t *testing.T) {
	cred, err := NewBasicCredential("Aladdin", "open sesame")
	require.NoError(t, err)
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", cred)
}

func TestNewBasicCredential_Deterministic(t *testing.T) {
	a, err := NewBasicCredential("store", "secret")
	require.NoError(t, err)
	b, err := NewBasicCredential("store", "secret")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewBasicCredential_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		secret     string
	}{
		{name: "empty identifier", identifier: "", secret: "secret"},
		{name: "empty secret", identifier: "store", secret: ""},
		{name: "colon in identifier", identifier: "st:ore", secret: "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBasicCredential(tt.identifier, tt.secret)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredential))
		})
	}
}
