package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital/hospital/config"
	"hospital/hospital/utils/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	tok, err := IssueToken(secret, time.Hour, types.Principal{UserID: 7, Role: types.RoleDoctor})
	require.NoError(t, err)

	p, err := ParseToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.UserID)
	assert.True(t, p.IsDoctor())

	_, err = ParseToken("other-secret", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := IssueToken(secret, -time.Minute, types.Principal{UserID: 7, Role: types.RolePatient})
	require.NoError(t, err)
	_, err = ParseToken(secret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_UnknownRole(t *testing.T) {
	tok, err := IssueToken(secret, time.Hour, types.Principal{UserID: 7, Role: "admin"})
	require.NoError(t, err)
	_, err = ParseToken(secret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func protected(role string) http.Handler {
	cfg := config.Config{JWTSecret: secret}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := PrincipalFrom(r.Context())
		w.Header().Set("X-User", p.Role)
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(cfg)(RequireRole(role)(inner))
}

func TestAuthMiddleware(t *testing.T) {
	doctorTok, err := IssueToken(secret, time.Hour, types.Principal{UserID: 1, Role: types.RoleDoctor})
	require.NoError(t, err)
	patientTok, err := IssueToken(secret, time.Hour, types.Principal{UserID: 2, Role: types.RolePatient})
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		want   int
	}{
		"missing":    {"", http.StatusUnauthorized},
		"malformed":  {"Token abc", http.StatusUnauthorized},
		"bad token":  {"Bearer abc", http.StatusUnauthorized},
		"wrong role": {"Bearer " + patientTok, http.StatusForbidden},
		"ok":         {"Bearer " + doctorTok, http.StatusOK},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			protected(types.RoleDoctor).ServeHTTP(rr, req)
			assert.Equal(t, tc.want, rr.Code)
			if tc.want != http.StatusOK {
				assert.JSONEq(t, `{"error":"`+map[int]string{401: "unauthorized", 403: "forbidden"}[tc.want]+`"}`, rr.Body.String())
			}
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:3000/"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/doctors", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
