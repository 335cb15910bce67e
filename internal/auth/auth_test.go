package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore() *Store {
	hashKey := make([]byte, 32)
	blockKey := make([]byte, 32)
	for i := range hashKey {
		hashKey[i] = byte(i)
		blockKey[i] = byte(255 - i)
	}
	return NewStore(nil, hashKey, blockKey)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}

func TestSessionRoundTrip(t *testing.T) {
	s := testStore()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, s.SetSession(rec, req, "user-123"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	uid, ok := s.GetSession(next)
	require.True(t, ok)
	assert.Equal(t, "user-123", uid)
}

func TestGetSessionRejectsTamperedCookie(t *testing.T) {
	s := testStore()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})
	_, ok := s.GetSession(req)
	assert.False(t, ok)

	// A cookie minted with different keys fails validation too.
	other := NewStore(nil, make([]byte, 32), make([]byte, 32))
	rec := httptest.NewRecorder()
	require.NoError(t, other.SetSession(rec, req, "user-123"))
	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(rec.Result().Cookies()[0])
	_, ok = s.GetSession(forged)
	assert.False(t, ok)
}

func TestRequireAuth(t *testing.T) {
	s := testStore()
	var gotUID string
	handler := s.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// No session redirects to the login page.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/settings", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// With a valid session the user id flows through the context.
	setRec := httptest.NewRecorder()
	require.NoError(t, s.SetSession(setRec, httptest.NewRequest(http.MethodGet, "/", nil), "user-123"))
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.AddCookie(setRec.Result().Cookies()[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-123", gotUID)
}
