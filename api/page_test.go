package api_test

import (
	"bytes"
	"image/png"
	"net/http"
	"testing"

	"github.com/merute/welcome/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	f := newFixture(t, okSubmitter())
	resp, body := f.get(t, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestPageHandler(t *testing.T) {
	f := newFixture(t, okSubmitter())

	t.Run("landing", func(t *testing.T) {
		resp, body := f.get(t, "/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Contains(t, body, "Simplifiez vos paiements avec")
		assert.NotContains(t, body, `id="partner-dialog"`)
		assert.Empty(t, resp.Cookies(), "landing page must not create a session")
	})

	t.Run("menu", func(t *testing.T) {
		_, body := f.get(t, "/?menu=open")
		assert.Contains(t, body, `aria-label="Fermer le menu"`)
		assert.Contains(t, body, `id="menu-overlay"`)
	})

	t.Run("login dialog", func(t *testing.T) {
		_, body := f.get(t, "/?dialog=login")
		assert.Contains(t, body, `id="login-dialog"`)
		assert.Contains(t, body, `src="/login/qr.png"`)
	})

	t.Run("partner dialog binds a session", func(t *testing.T) {
		resp, body := f.get(t, "/?dialog=partner")
		assert.Contains(t, body, `id="partner-dialog"`)
		assert.Contains(t, body, `value="+225 "`)
		assert.Equal(t, 1, f.store.Len())

		var cookie *http.Cookie
		for _, c := range resp.Cookies() {
			if c.Name == api.SessionCookie {
				cookie = c
			}
		}
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	})
}

func TestForgedSessionCookie(t *testing.T) {
	f := newFixture(t, okSubmitter())

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/?dialog=partner", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: api.SessionCookie, Value: "not.a.token"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="partner-dialog"`)
	var fresh *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == api.SessionCookie {
			fresh = c
		}
	}
	require.NotNil(t, fresh, "a forged cookie is replaced by a new session")
	assert.NotEqual(t, "not.a.token", fresh.Value)
}

func TestQRHandler(t *testing.T) {
	f := newFixture(t, okSubmitter())

	resp, body := f.get(t, "/login/qr.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, okSubmitter())
	f.get(t, "/?dialog=partner")

	resp, body := f.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "welcome_dialog_sessions 1")
}
