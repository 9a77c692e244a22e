package storage

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()

	return NewLocalStore(t.TempDir(), "http://api.centerthink.test", "test-signing-key")
}

func tokenFromURL(t *testing.T, signed string) string {
	t.Helper()

	parsed, err := url.Parse(signed)
	require.NoError(t, err)

	return parsed.Query().Get("token")
}

func TestLocalStore_SaveAndOpen(t *testing.T) {
	store := newTestStore(t)

	storagePath, err := store.Save("expense-requests/7", "factura.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(storagePath, "expense-requests/7/"))
	assert.True(t, strings.HasSuffix(storagePath, ".pdf"))

	f, err := store.Open(storagePath)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestLocalStore_Delete(t *testing.T) {
	store := newTestStore(t)

	storagePath, err := store.Save("expense-requests/7", "factura.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(storagePath))

	_, err = store.Open(storagePath)
	assert.Error(t, err)
}

func TestLocalStore_SignedURL(t *testing.T) {
	store := newTestStore(t)

	storagePath, err := store.Save("expense-requests/7", "factura.pdf", strings.NewReader("contenido"))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		signed, err := store.SignedURL(storagePath)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(signed, "http://api.centerthink.test/api/v1/files?token="))

		verified, err := store.VerifyURL(tokenFromURL(t, signed))
		require.NoError(t, err)
		assert.Equal(t, storagePath, verified)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		signed, err := store.SignedURL(storagePath)
		require.NoError(t, err)

		_, err = store.VerifyURL(tokenFromURL(t, signed) + "x")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("token signed with another key is rejected", func(t *testing.T) {
		other := NewLocalStore(t.TempDir(), "http://api.centerthink.test", "other-key")

		signed, err := other.SignedURL(storagePath)
		require.NoError(t, err)

		_, err = store.VerifyURL(tokenFromURL(t, signed))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})
}

func TestLocalStore_PathValidation(t *testing.T) {
	store := newTestStore(t)

	for _, storagePath := range []string{"", "/etc/passwd", "a/../../b"} {
		t.Run(storagePath, func(t *testing.T) {
			_, err := store.Open(storagePath)
			assert.ErrorIs(t, err, ErrInvalidPath)

			_, err = store.SignedURL(storagePath)
			assert.ErrorIs(t, err, ErrInvalidPath)
		})
	}
}
