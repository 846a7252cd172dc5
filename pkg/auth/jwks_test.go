package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwkFor(t *testing.T, kid string, pub *rsa.PublicKey) JSONWebKey {
	t.Helper()
	return JSONWebKey{
		Kid: kid,
		Kty: "RSA",
		Alg: "RS256",
		Use: "sig",
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

func TestGetPublicKey(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwk := jwkFor(t, "key-1", &priv.PublicKey)

	pub, err := jwk.GetPublicKey()
	require.NoError(t, err)
	assert.Equal(t, 0, priv.PublicKey.N.Cmp(pub.N))
	assert.Equal(t, priv.PublicKey.E, pub.E)
}

func TestProviderGetKey(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	var fetches int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		json.NewEncoder(w).Encode(JWKS{Keys: []JSONWebKey{jwkFor(t, "key-1", &priv.PublicKey)}})
	}))
	defer server.Close()

	t.Run("Should fetch and cache keys by kid", func(t *testing.T) {
		p := NewProvider(server.URL)

		key, err := p.GetKey("key-1")
		require.NoError(t, err)
		assert.Equal(t, "key-1", key.Kid)

		_, err = p.GetKey("key-1")
		require.NoError(t, err)
		assert.Equal(t, 1, fetches)
	})

	t.Run("Should rate limit refresh for unknown kids", func(t *testing.T) {
		p := NewProvider(server.URL)

		_, err := p.GetKey("key-1")
		require.NoError(t, err)

		// Unknown kid inside the refresh window must not hammer the endpoint.
		before := fetches
		_, err = p.GetKey("rotated-away")
		assert.Error(t, err)
		assert.Equal(t, before, fetches)
	})

	t.Run("Should surface a non-200 JWKS response", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer broken.Close()

		p := NewProvider(broken.URL)
		_, err := p.GetKey("key-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}
