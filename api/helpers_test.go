package api_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/merute/welcome/api"
	"github.com/merute/welcome/internal/auth"
	"github.com/merute/welcome/internal/manager"
	"github.com/merute/welcome/internal/metrics"
	"github.com/merute/welcome/internal/partner"
	"github.com/merute/welcome/internal/qr"
	"github.com/merute/welcome/internal/view"
	"github.com/merute/welcome/store/ephemeral"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngOfSize(n int) []byte {
	data := make([]byte, n)
	copy(data, pngMagic)
	return data
}

type fixture struct {
	srv     *httptest.Server
	client  *http.Client
	store   *ephemeral.SessionStore
	metrics *metrics.Metrics
}

func okSubmitter() partner.Submitter {
	return partner.SubmitterFunc(func(context.Context, partner.Submission) error { return nil })
}

func newFixture(t *testing.T, sub partner.Submitter, opts ...func(*api.Deps)) *fixture {
	t.Helper()
	require.NoError(t, auth.InitSigningKey(""))

	work := manager.NewWorkManager(manager.WithEncodeWorkers(2), manager.WithSubmitWorkers(2), manager.WithQueueSize(16))
	t.Cleanup(work.Close)
	store := ephemeral.NewSessionStore(time.Minute, 100)
	t.Cleanup(store.Close)

	m := metrics.New()
	svc := partner.NewService(partner.NewValidator(), sub, work, partner.WithMetrics(m))
	deps := api.Deps{
		Sessions: api.NewSessions(store, false, m),
		Partner:  svc,
		QR:       qr.New("https://merute.dev"),
		Metrics:  m,
		Links: []view.NavLink{
			{Title: "Support Technique", Href: "#"},
			{Title: "Site web", Href: "https://merute.dev"},
		},
		MaxBodyBytes:   12 << 20,
		AllowedOrigins: []string{"https://merute.dev"},
		RateLimiter:    api.NewIPRateLimiter(1000, 1000),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	srv := httptest.NewServer(api.NewRouter(deps))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &fixture{srv: srv, client: &http.Client{Jar: jar}, store: store, metrics: m}
}

// noRedirect returns a client sharing f's cookies that stops at the first
// response.
func (f *fixture) noRedirect() *http.Client {
	return &http.Client{
		Jar:           f.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.srv.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (f *fixture) postForm(t *testing.T, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.srv.URL+path, values)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

type filePart struct {
	field, name string
	data        []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, fp := range files {
		w, err := mw.CreateFormFile(fp.field, fp.name)
		require.NoError(t, err)
		_, err = w.Write(fp.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (f *fixture) postMultipart(t *testing.T, client *http.Client, path string, fields map[string]string, files ...filePart) (*http.Response, string) {
	t.Helper()
	body, contentType := multipartBody(t, fields, files...)
	resp, err := client.Post(f.srv.URL+path, contentType, body)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (f *fixture) upload(t *testing.T, side string, data []byte) string {
	t.Helper()
	_, body := f.postMultipart(t, f.client, "/partner/uploads/"+side, nil, filePart{field: "file", name: side + ".png", data: data})
	return body
}

var validContact = map[string]string{"email": "awa@example.ci", "phone": "+225 0707070707"}

func countOf(s, sub string) int { return strings.Count(s, sub) }
