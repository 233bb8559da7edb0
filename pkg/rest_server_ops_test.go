package pkg

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/keyinfo", execRESTKeyInfo())
	router.GET("/api/v1/fingerprint", execRESTFingerprint())
	return router
}

func TestRESTKeyInfo(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/keyinfo?keypath="+testRSAKeyPath, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var keyInfo PuttyKeyInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &keyInfo))
	assert.Equal(t, "ssh-rsa", keyInfo.Algorithm)
	assert.Equal(t, testRSAFingerprint, keyInfo.Fingerprint)
}

func TestRESTKeyInfoMissingParam(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/keyinfo", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRESTKeyInfoBadPath(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/keyinfo?keypath=testdata/no_such_key.ppk", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRESTFingerprint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fingerprint?keypath="+testRSAKeyPath, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, testRSAFingerprint, body["sha256_fingerprint"])
}

func TestRESTFingerprintEncryptedNeedsPassphrase(t *testing.T) {
	router := newTestRouter()

	// without the passphrase there is no fingerprint to serve
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fingerprint?keypath="+testRSAEncKeyPath, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/fingerprint?keypath="+testRSAEncKeyPath+"&passphrase="+testPassphrase, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
