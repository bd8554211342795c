package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/user-auth-api/internal/logging"
	"github.com/redmonkez12/user-auth-api/internal/user"
)

type testServer struct {
	router http.Handler
	store  user.Store
	tokens *JWTService
}

func newTestServer(t *testing.T, store user.Store) *testServer {
	t.Helper()
	svc, tokens := newTestService(t, store)
	h := NewHandler(svc, logging.Discard(), CookieOptions{Days: 30})
	mw := NewMiddleware(tokens, logging.Discard())

	r := chi.NewRouter()
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)
	r.With(mw.RequireAuth).Get("/me", h.Me)

	return &testServer{router: r, store: store, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, body string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandler_SignupLoginScenario(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())

	rec := srv.do(t, http.MethodPost, "/signup", `{"username":"al","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	signup := decode[SignupResponse](t, rec)
	assert.NotEmpty(t, signup.Token)
	assert.Empty(t, rec.Result().Cookies(), "signup does not set a cookie")

	rec = srv.do(t, http.MethodPost, "/login", `{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid credentials"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())

	rec = srv.do(t, http.MethodPost, "/login", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode[LoginResponse](t, rec)
	assert.True(t, login.Success)
	assert.NotEmpty(t, login.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, TokenCookieName, cookies[0].Name)
	assert.Equal(t, login.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
}

func TestHandler_LoginEnumerationResistance(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())
	rec := srv.do(t, http.MethodPost, "/signup", `{"username":"al","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	wrongPassword := srv.do(t, http.MethodPost, "/login", `{"email":"a@x.com","password":"nope123"}`)
	unknownEmail := srv.do(t, http.MethodPost, "/login", `{"email":"ghost@x.com","password":"nope123"}`)

	assert.Equal(t, wrongPassword.Code, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestHandler_SignupValidation(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())

	rec := srv.do(t, http.MethodPost, "/signup", `{"username":"al","email":"a@x.com","password":"abc"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ValidationErrorResponse](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "password", body.Errors[0].Param)
	assert.Equal(t, user.MsgInvalidPassword, body.Errors[0].Msg)
	assert.Equal(t, "body", body.Errors[0].Location)
	assert.NotContains(t, rec.Body.String(), "abc")

	exists, err := srv.store.Exists(t.Context(), "a@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHandler_SignupPasswordTooLongForBcrypt(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())
	long := strings.Repeat("p", 80)

	rec := srv.do(t, http.MethodPost, "/signup", `{"username":"al","email":"a@x.com","password":"`+long+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ValidationErrorResponse](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "password", body.Errors[0].Param)
	assert.Equal(t, user.MsgInvalidPassword, body.Errors[0].Msg)

	rec = srv.do(t, http.MethodPost, "/login", `{"email":"a@x.com","password":"`+long+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_SignupMalformedBody(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())

	rec := srv.do(t, http.MethodPost, "/signup", `{"username":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[ValidationErrorResponse](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, MsgInvalidBody, body.Errors[0].Msg)
}

func TestHandler_SignupDuplicate(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())

	rec := srv.do(t, http.MethodPost, "/signup", `{"username":"al","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodPost, "/signup", `{"username":"bo","email":"a@x.com","password":"secret2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"msg":"User Already Exists"}`, rec.Body.String())
}

func TestHandler_SignupPersistenceFailureIsGeneric(t *testing.T) {
	store := &faultyStore{MemoryStore: user.NewMemoryStore(), createErr: errors.New("pq: connection refused on 10.0.0.5")}
	srv := newTestServer(t, store)

	rec := srv.do(t, http.MethodPost, "/signup", `{"username":"al","email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"msg":"Error in Saving"}`, rec.Body.String())
}

func TestHandler_LoginMissingFields(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())

	for _, body := range []string{`{"email":"a@x.com"}`, `{"password":"secret1"}`, `{}`, ``} {
		rec := srv.do(t, http.MethodPost, "/login", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"success":false,"error":"Please provide an email and password"}`, rec.Body.String())
	}
}

func TestHandler_LoginStoreFailure(t *testing.T) {
	store := &faultyStore{MemoryStore: user.NewMemoryStore(), findErr: errors.New("timeout")}
	srv := newTestServer(t, store)

	rec := srv.do(t, http.MethodPost, "/login", `{"email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Server Error"}`, rec.Body.String())
}

func TestHandler_Me(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())

	rec := srv.do(t, http.MethodPost, "/signup", `{"username":"al","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[SignupResponse](t, rec).Token

	t.Run("bearer header", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/me", "", bearer(token))
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success bool           `json:"success"`
			Data    map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "al", body.Data["username"])
		assert.Equal(t, "a@x.com", body.Data["email"])
		assert.NotEmpty(t, body.Data["id"])
		assert.NotEmpty(t, body.Data["createdAt"])
		assert.NotContains(t, body.Data, "password")
	})

	t.Run("cookie", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/me", "", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: token})
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"Not authorized to access this route"}`, rec.Body.String())
	})

	t.Run("tampered token", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/me", "", bearer(token+"x"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_MeVanishedUser(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())

	token, err := srv.tokens.Issue("deleted-user", testLoginTTL)
	require.NoError(t, err)

	rec := srv.do(t, http.MethodGet, "/me", "", bearer(token))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"User not found"}`, rec.Body.String())
}

func TestHandler_Logout(t *testing.T) {
	srv := newTestServer(t, user.NewMemoryStore())

	rec := srv.do(t, http.MethodGet, "/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{}}`, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "none", cookies[0].Value)
}
