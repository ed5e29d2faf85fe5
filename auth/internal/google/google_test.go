// SPDX-License-Identifier: ice License 1.0

package googleauth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PierluigiRizzuExagon/social-api/auth/internal"
)

func TestNormalize_CompleteProfile(t *testing.T) {
	t.Parallel()
	prof := &profile{ID: "1234567890", Email: "bogus@bogus.com", Name: "Bogus Bogus", Picture: "https://example.com/bogus.jpg"}

	identity, err := prof.normalize()
	require.NoError(t, err)
	assert.Equal(t, &internal.Identity{
		UserID:   "1234567890",
		Email:    "bogus@bogus.com",
		Name:     "Bogus Bogus",
		Picture:  "https://example.com/bogus.jpg",
		Provider: internal.ProviderGoogle,
	}, identity)
}

func TestNormalize_MissingPictureIsFine(t *testing.T) {
	t.Parallel()
	prof := &profile{ID: "1234567890", Email: "bogus@bogus.com", Name: "Bogus Bogus"}

	identity, err := prof.normalize()
	require.NoError(t, err)
	assert.Empty(t, identity.Picture)
}

func TestNormalize_IncompleteProfiles(t *testing.T) {
	t.Parallel()
	incomplete := []*profile{
		{Email: "bogus@bogus.com", Name: "Bogus Bogus"},
		{ID: "1234567890", Name: "Bogus Bogus"},
		{ID: "1234567890", Email: "bogus@bogus.com"},
	}
	for _, prof := range incomplete {
		identity, err := prof.normalize()
		require.ErrorIs(t, err, ErrIncompleteProfile)
		require.Nil(t, identity)
	}
}

func TestFetchIdentity(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer ya29.bogus", request.Header.Get("Authorization"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"1234567890","email":"bogus@bogus.com","name":"Bogus Bogus","picture":"https://example.com/bogus.jpg"}`))
	}))
	defer backend.Close()
	googleAuth := &auth{cfg: new(config)}
	googleAuth.cfg.Auth.Google.UserInfoURL = backend.URL

	identity, err := googleAuth.fetchIdentity(t.Context(), "ya29.bogus")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", identity.UserID)
	assert.Equal(t, internal.ProviderGoogle, identity.Provider)
}

func TestFetchIdentity_UpstreamError(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"error":{"message":"Invalid Credentials"}}`))
	}))
	defer backend.Close()
	googleAuth := &auth{cfg: new(config)}
	googleAuth.cfg.Auth.Google.UserInfoURL = backend.URL

	identity, err := googleAuth.fetchIdentity(t.Context(), "expired")
	require.Error(t, err)
	require.Nil(t, identity)
}
