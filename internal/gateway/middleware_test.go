package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	identitydomain "github.com/fellipeca007/GuardaFlix/internal/identity/domain"
	reldomain "github.com/fellipeca007/GuardaFlix/internal/relationship/domain"
)

type fakeValidator struct {
	userID string
	err    error
}

func (f *fakeValidator) ValidateToken(_ context.Context, _ string) (string, error) {
	return f.userID, f.err
}

func runMiddleware(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = ForContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	AuthMiddleware(validator)(next).ServeHTTP(rec, req)
	return rec, seenUserID
}

func TestAuthMiddleware_NoHeaderPassesThroughAnonymously(t *testing.T) {
	rec, userID := runMiddleware(t, &fakeValidator{}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, userID)
}

func TestAuthMiddleware_InvalidFormatRejected(t *testing.T) {
	rec, _ := runMiddleware(t, &fakeValidator{userID: "alice"}, "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidTokenRejected(t *testing.T) {
	rec, _ := runMiddleware(t, &fakeValidator{err: identitydomain.ErrInvalidToken}, "Bearer expired")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidTokenInjectsUser(t *testing.T) {
	rec, userID := runMiddleware(t, &fakeValidator{userID: "alice"}, "Bearer good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", userID)
}

func TestWriteError_DomainMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate request", reldomain.ErrDuplicateRequest, http.StatusConflict},
		{"self follow", reldomain.ErrSelfFollow, http.StatusBadRequest},
		{"unknown target", reldomain.ErrUnknownTarget, http.StatusNotFound},
		{"invalid credentials", identitydomain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"opaque internal", errors.New("pg: connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusInternalServerError {
				// Jamais de détail d'infrastructure dans la réponse.
				assert.NotContains(t, rec.Body.String(), "pg:")
			}
		})
	}
}
