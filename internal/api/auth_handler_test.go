package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasknest/tasknest-api/internal/service/auth"
)

const testJWTSecret = "test-secret-that-is-long-enough-for-testing"

func newAuthHandlerForTest(t *testing.T, users *fakeUserStore) *AuthHandler {
	t.Helper()
	jwtService := auth.NewTestJWTService(testJWTSecret, nil)
	return NewAuthHandler(users, jwtService, auth.NewBcryptVerifier())
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler(recorder, req)
	return recorder
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("successful registration", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		handler := newAuthHandlerForTest(t, users)

		recorder := postJSON(t, handler.Register, "/register", map[string]string{
			"name": "Ann", "email": "ann@x.com", "password": "pw1",
		})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "Registered successfully", recorder.Body.String())

		// The stored hash must never equal the plaintext password.
		user, err := users.GetByEmail(context.Background(), "ann@x.com")
		require.NoError(t, err)
		assert.NotEmpty(t, user.HashedPassword)
		assert.NotEqual(t, "pw1", user.HashedPassword)
	})

	t.Run("duplicate email yields 409 on second attempt", func(t *testing.T) {
		t.Parallel()
		users := newFakeUserStore()
		handler := newAuthHandlerForTest(t, users)

		first := postJSON(t, handler.Register, "/register", map[string]string{
			"name": "Ann", "email": "ann@x.com", "password": "pw1",
		})
		require.Equal(t, http.StatusOK, first.Code)

		second := postJSON(t, handler.Register, "/register", map[string]string{
			"name": "Other Ann", "email": "ann@x.com", "password": "pw2",
		})
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Contains(t, second.Body.String(), "Email already exists")
	})

	missingFieldTests := []struct {
		name string
		body map[string]string
	}{
		{name: "missing name", body: map[string]string{"email": "ann@x.com", "password": "pw1"}},
		{name: "missing email", body: map[string]string{"name": "Ann", "password": "pw1"}},
		{name: "missing password", body: map[string]string{"name": "Ann", "email": "ann@x.com"}},
		{name: "empty body", body: map[string]string{}},
	}

	for _, tt := range missingFieldTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := newAuthHandlerForTest(t, newFakeUserStore())

			recorder := postJSON(t, handler.Register, "/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "All fields required")
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	registerAnn := func(t *testing.T) (*fakeUserStore, *AuthHandler) {
		t.Helper()
		users := newFakeUserStore()
		handler := newAuthHandlerForTest(t, users)
		recorder := postJSON(t, handler.Register, "/register", map[string]string{
			"name": "Ann", "email": "ann@x.com", "password": "pw1",
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		return users, handler
	}

	t.Run("successful login returns verifiable token", func(t *testing.T) {
		t.Parallel()
		users, handler := registerAnn(t)

		recorder := postJSON(t, handler.Login, "/login", map[string]string{
			"email": "ann@x.com", "password": "pw1",
		})
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)

		// The token must verify and carry the registered user's identity.
		jwtService := auth.NewTestJWTService(testJWTSecret, nil)
		claims, err := jwtService.ValidateToken(context.Background(), resp.Token)
		require.NoError(t, err)

		user, err := users.GetByEmail(context.Background(), "ann@x.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		t.Parallel()
		_, handler := registerAnn(t)

		wrongPassword := postJSON(t, handler.Login, "/login", map[string]string{
			"email": "ann@x.com", "password": "nope",
		})
		unknownEmail := postJSON(t, handler.Login, "/login", map[string]string{
			"email": "ghost@x.com", "password": "pw1",
		})

		assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
		assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)

		var wrongBody, unknownBody map[string]any
		require.NoError(t, json.Unmarshal(wrongPassword.Body.Bytes(), &wrongBody))
		require.NoError(t, json.Unmarshal(unknownEmail.Body.Bytes(), &unknownBody))
		assert.Equal(t, wrongBody["error"], unknownBody["error"])
		assert.Equal(t, "Invalid credentials", wrongBody["error"])
	})

	t.Run("missing fields rejected with same message", func(t *testing.T) {
		t.Parallel()
		_, handler := registerAnn(t)

		recorder := postJSON(t, handler.Login, "/login", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid credentials")
	})
}
