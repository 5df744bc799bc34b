package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func corsRequest(method, origin string) *http.Request {
	r := httptest.NewRequest(method, "/api/v1/scans/text", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}

func TestCORS_Preflight(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"https://scan.eattrue.app"}

	w := httptest.NewRecorder()
	r := corsRequest(http.MethodOptions, "https://scan.eattrue.app")
	r.Header.Set("Access-Control-Request-Method", "POST")
	CORS(config)(okHandler()).ServeHTTP(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://scan.eattrue.app", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), HeaderUserID)
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
	assert.Contains(t, w.Header().Values("Vary"), "Origin")
}

func TestCORS_SimpleRequestExposesHeaders(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"https://scan.eattrue.app"}

	w := httptest.NewRecorder()
	CORS(config)(okHandler()).ServeHTTP(w, corsRequest(http.MethodPost, "https://scan.eattrue.app"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), HeaderRequestID)
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Retry-After")
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"https://scan.eattrue.app"}

	w := httptest.NewRecorder()
	CORS(config)(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, "https://evil.example"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	CORS(DefaultCORSConfig())(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, ""))

	assert.Equal(t, "ok", w.Body.String())
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcards(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"*.eattrue.app"}

	w := httptest.NewRecorder()
	CORS(config)(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, "https://beta.eattrue.app"))
	assert.Equal(t, "https://beta.eattrue.app", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	CORS(config)(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, "https://eattrue.app.evil.example"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	all := DefaultCORSConfig()
	all.AllowedOrigins = []string{"*"}
	w = httptest.NewRecorder()
	CORS(all)(okHandler()).ServeHTTP(w, corsRequest(http.MethodGet, "https://any.example"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_OptionsWithoutPreflightReachesHandler(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"https://scan.eattrue.app/"}

	w := httptest.NewRecorder()
	CORS(config)(okHandler()).ServeHTTP(w, corsRequest(http.MethodOptions, "https://scan.eattrue.app"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://scan.eattrue.app", w.Header().Get("Access-Control-Allow-Origin"))
}

//Personal.AI order the ending
