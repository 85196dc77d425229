package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/gomart/internal/pkg/authz"
	"github.com/shandysiswandi/gomart/internal/pkg/goerror"
	"github.com/shandysiswandi/gomart/internal/pkg/instrument"
	"github.com/shandysiswandi/gomart/internal/pkg/session"
)

type stubVerifier struct {
	claims session.Claims
	err    error
}

func (s stubVerifier) Verify(string) (session.Claims, error) { return s.claims, s.err }

type messageResp struct{ msg string }

func (m messageResp) Message() string { return m.msg }

func newTestRouter(t *testing.T, verifier SessionVerifier) *Router {
	t.Helper()
	az, err := authz.NewCasbin(authz.Config{
		Policies: []string{
			"anonymous, /open, GET",
			"anonymous, /boom, GET",
			"shopper, /cart, *",
		},
		Roles: []string{"shopper, anonymous"},
	})
	require.NoError(t, err)

	return NewRouter(Config{
		Session:    verifier,
		Authorizer: az,
		Instrument: instrument.NewNoop(),
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRouter(t *testing.T) {
	verifier := stubVerifier{claims: func() session.Claims {
		var c session.Claims
		c.Subject = "sid-1"
		c.Role = session.RoleShopper
		return c
	}()}
	r := newTestRouter(t, verifier)

	r.GET("/open", func(*Request) (any, error) { return messageResp{msg: "hello"}, nil })
	r.GET("/boom", func(*Request) (any, error) { panic("boom") })
	r.GET("/cart", func(req *Request) (any, error) {
		return map[string]string{"session": session.ID(req.Context())}, nil
	})
	r.POST("/cart", func(*Request) (any, error) {
		return nil, goerror.NewFieldErrors(map[string]string{"address": "Address must be at least 2 characters long"})
	})
	r.DELETE("/cart", func(*Request) (any, error) { return nil, errors.New("db down") })

	t.Run("AnonymousAllowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hello", decode(t, rec)["message"])
	})

	t.Run("AnonymousDenied", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Cart session required", decode(t, rec)["message"])
	})

	t.Run("ShopperAllowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set(HeaderCartSession, "token")
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"session": "sid-1"}, decode(t, rec)["data"])
	})

	t.Run("ValidationError", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{}`))
		req.Header.Set("Authorization", "Bearer token")
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Validation error", body["message"])
		assert.Equal(t, map[string]any{"address": "Address must be at least 2 characters long"}, body["error"])
	})

	t.Run("PlainErrorIsInternal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
		req.Header.Set(HeaderCartSession, "token")
		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decode(t, rec)["message"])
	})

	t.Run("Panic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRouter_InvalidSession(t *testing.T) {
	r := newTestRouter(t, stubVerifier{err: session.ErrTokenExpired})
	r.GET("/open", func(*Request) (any, error) { return messageResp{msg: "hello"}, nil })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set(HeaderCartSession, "expired")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired session", decode(t, rec)["message"])
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", realIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.2")
	assert.Equal(t, "203.0.113.9", realIP(req))

	req.Header.Set("X-Real-IP", "not-an-ip")
	assert.Equal(t, "203.0.113.9", realIP(req))
}

func TestChain(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "h") }), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "h"}, order)
}
