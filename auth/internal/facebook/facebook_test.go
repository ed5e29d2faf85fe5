// SPDX-License-Identifier: ice License 1.0

package facebookauth

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
	prof := new(profile)
	prof.ID = "1234567890"
	prof.Name = "Bogus Bogus"
	prof.Email = "bogus@bogus.com"
	prof.Picture.Data.URL = "https://example.com/bogus.jpg"

	identity, err := prof.normalize()
	require.NoError(t, err)
	assert.Equal(t, &internal.Identity{
		UserID:   "1234567890",
		Email:    "bogus@bogus.com",
		Name:     "Bogus Bogus",
		Picture:  "https://example.com/bogus.jpg",
		Provider: internal.ProviderFacebook,
	}, identity)
}

func TestNormalize_MissingEmailFallsBack(t *testing.T) {
	t.Parallel()
	prof := new(profile)
	prof.ID = "1234567890"

	identity, err := prof.normalize()
	require.NoError(t, err)
	assert.Equal(t, "1234567890@facebook.local", identity.Email)
	assert.Empty(t, identity.Name)
	assert.Empty(t, identity.Picture)
}

func TestNormalize_MissingID(t *testing.T) {
	t.Parallel()
	prof := new(profile)
	prof.Email = "bogus@bogus.com"

	identity, err := prof.normalize()
	require.ErrorIs(t, err, ErrIncompleteProfile)
	require.Nil(t, identity)
}

func TestFetchIdentity(t *testing.T) {
	t.Parallel()
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer EAAGbogus", request.Header.Get("Authorization"))
		assert.Equal(t, profileFields, request.URL.Query().Get("fields"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"1234567890","name":"Bogus Bogus","picture":{"data":{"url":"https://example.com/bogus.jpg"}}}`))
	}))
	defer backend.Close()
	facebookAuth := &auth{cfg: new(config)}
	facebookAuth.cfg.Auth.Facebook.ProfileURL = backend.URL

	identity, err := facebookAuth.fetchIdentity(t.Context(), "EAAGbogus")
	require.NoError(t, err)
	assert.Equal(t, "1234567890", identity.UserID)
	assert.Equal(t, "1234567890@facebook.local", identity.Email)
	assert.Equal(t, "https://example.com/bogus.jpg", identity.Picture)
	assert.Equal(t, internal.ProviderFacebook, identity.Provider)
}
