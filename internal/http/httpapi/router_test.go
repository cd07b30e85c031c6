package httpapi

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infographic/internal/domain"
	"infographic/internal/http/handlers"
	"infographic/internal/infra"
	"infographic/internal/orchestrator"
	"infographic/internal/render"
	"infographic/internal/session"
)

type fakeExtractor struct{}

func (fakeExtractor) Extract(_ context.Context, text string, images []domain.SourceImage) (*domain.Infographic, error) {
	if strings.Contains(text, "hỏng") {
		return nil, fmt.Errorf("%w: %w: unexpected end of JSON input", domain.ErrExtraction, domain.ErrParse)
	}
	data := &domain.Infographic{
		Topic:   "Quang hợp",
		Summary: fmt.Sprintf("%d ảnh", len(images)),
		Palette: domain.DefaultPalette,
	}
	for i := 0; i < 4; i++ {
		data.Points = append(data.Points, domain.Point{Title: fmt.Sprintf("Ý %d", i+1), Content: "nội dung", Icon: "leaf"})
	}
	return data, nil
}

type fixedSynth struct{}

func (fixedSynth) Synthesize(context.Context, string, domain.Palette) domain.Background {
	return domain.Background{URI: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("bg"))}
}

func newTestServer(t *testing.T, cfg *infra.Config) (*httptest.Server, *http.Client) {
	t.Helper()
	logger := zerolog.Nop()
	store := session.NewStore(time.Hour, func() *orchestrator.Orchestrator {
		return orchestrator.New(orchestrator.Options{Extractor: fakeExtractor{}, Synthesizer: fixedSynth{}})
	}, &logger)
	app := handlers.NewApp(cfg, &logger, store, render.MustNew())
	srv := httptest.NewServer(NewRouter(app, cfg, logger))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

func testConfig() *infra.Config {
	return &infra.Config{MaxUploadBytes: 1 << 20, MaxImages: 2, RateLimitPerMin: 100}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 20, G: 128, B: 61, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	cfg := testConfig()
	cfg.ExtractProvider = infra.ProviderGemini
	cfg.BackgroundEnabled = true
	srv, client := newTestServer(t, cfg)
	resp, err := client.Get(srv.URL + "/v1/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "gemini", body["provider"])
	assert.Equal(t, true, body["background"])
	assert.EqualValues(t, 0, body["sessions"], "health checks do not open sessions")
	assert.NotEmpty(t, body["uptime"])
}

func TestGenerateJSONFlow(t *testing.T) {
	srv, client := newTestServer(t, testConfig())

	resp := postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "Quang hợp là gì?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[orchestrator.Snapshot](t, resp)
	assert.Equal(t, domain.StateCompleted, snap.State)
	require.NotNil(t, snap.Result)
	assert.True(t, snap.Result.Layout.Valid())
	assert.True(t, snap.Background.Present())

	current, err := client.Get(srv.URL + "/v1/infographics/current")
	require.NoError(t, err)
	defer current.Body.Close()
	again := decode[orchestrator.Snapshot](t, current)
	assert.Equal(t, snap.RunID, again.RunID)

	view, err := client.Get(srv.URL + "/v1/infographics/current/view")
	require.NoError(t, err)
	defer view.Body.Close()
	assert.Equal(t, http.StatusOK, view.StatusCode)
	html, _ := io.ReadAll(view.Body)
	assert.Contains(t, string(html), "QUANG HỢP")
	assert.Equal(t, 4, strings.Count(string(html), "data-ordinal="))
}

func TestGenerateValidation(t *testing.T) {
	srv, client := newTestServer(t, testConfig())

	resp := postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[errorEnvelope](t, resp)
	assert.Equal(t, "validation", body.Error.Code)
	assert.Equal(t, domain.MissingInputMessage, body.Error.Message)

	resp = postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{
		"images": []map[string]string{{"filename": "a.txt", "data": base64.StdEncoding.EncodeToString([]byte("plain text, not an image"))}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	encoded := base64.StdEncoding.EncodeToString(pngBytes(t))
	resp = postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{
		"images": []map[string]string{{"data": encoded}, {"data": encoded}, {"data": encoded}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	current, err := client.Get(srv.URL + "/v1/infographics/current")
	require.NoError(t, err)
	defer current.Body.Close()
	assert.Equal(t, domain.StateIdle, decode[orchestrator.Snapshot](t, current).State)
}

func TestGenerateExtractionFailure(t *testing.T) {
	srv, client := newTestServer(t, testConfig())

	require.Equal(t, http.StatusOK, postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "bài tốt"}).StatusCode)

	resp := postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "bài hỏng"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "extraction_failed", decode[errorEnvelope](t, resp).Error.Code)

	current, err := client.Get(srv.URL + "/v1/infographics/current")
	require.NoError(t, err)
	defer current.Body.Close()
	snap := decode[orchestrator.Snapshot](t, current)
	assert.Equal(t, domain.StateError, snap.State)
	assert.Nil(t, snap.Result)
	assert.NotEmpty(t, snap.Error)

	view, err := client.Get(srv.URL + "/v1/infographics/current/view")
	require.NoError(t, err)
	defer view.Body.Close()
	assert.Equal(t, http.StatusNotFound, view.StatusCode)
}

func TestGenerateMultipart(t *testing.T) {
	srv, client := newTestServer(t, testConfig())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", ""))
	part, err := mw.CreateFormFile("images", "la-cay.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := client.Post(srv.URL+"/v1/infographics", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	snap := decode[orchestrator.Snapshot](t, resp)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "1 ảnh", snap.Result.Summary)
}

func TestHTMLFormRedirects(t *testing.T) {
	srv, client := newTestServer(t, testConfig())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("format", "html"))
	require.NoError(t, mw.WriteField("text", ""))
	require.NoError(t, mw.Close())

	resp, err := client.Post(srv.URL+"/v1/infographics", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "notice=")

	index, err := client.Get(srv.URL + "/?notice=" + "xin+ch%C3%A0o")
	require.NoError(t, err)
	defer index.Body.Close()
	page, _ := io.ReadAll(index.Body)
	assert.Contains(t, string(page), "xin chào")
	assert.Contains(t, string(page), `action="/v1/infographics"`)
}

func TestHTMLFormRedirectsOversizedUpload(t *testing.T) {
	srv, client := newTestServer(t, testConfig())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("text", "quang hợp"))
	part, err := mw.CreateFormFile("images", "lon.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0x89}, 1<<20+32<<10))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := client.Post(srv.URL+"/v1/infographics?format=html", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	location, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/", location.Path)
	assert.NotEmpty(t, location.Query().Get("notice"))
}

func TestRegenerateAndRelayout(t *testing.T) {
	srv, client := newTestServer(t, testConfig())

	resp := postJSON(t, client, srv.URL+"/v1/infographics/regenerate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp = postJSON(t, client, srv.URL+"/v1/infographics/relayout", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	first := decode[orchestrator.Snapshot](t, postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "bài"}))

	resp = postJSON(t, client, srv.URL+"/v1/infographics/regenerate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[orchestrator.Snapshot](t, resp)
	assert.Equal(t, first.RunID+1, second.RunID)

	for i := 0; i < 3; i++ {
		resp = postJSON(t, client, srv.URL+"/v1/infographics/relayout", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out struct {
			Layout   string                `json:"layout"`
			Snapshot orchestrator.Snapshot `json:"snapshot"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.True(t, domain.Layout(out.Layout).Valid())
		assert.Equal(t, second.Result.Topic, out.Snapshot.Result.Topic)
		assert.Equal(t, second.Result.Points, out.Snapshot.Result.Points)
		assert.Equal(t, second.RunID, out.Snapshot.RunID)
	}
}

func TestExport(t *testing.T) {
	srv, client := newTestServer(t, testConfig())

	resp, err := client.Get(srv.URL + "/v1/infographics/current/export")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "bài"})

	resp, err = client.Get(srv.URL + "/v1/infographics/current/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"infographic.html", "infographic.json", "background.png"}, names)
}

func TestSessionsAreIsolated(t *testing.T) {
	srv, client := newTestServer(t, testConfig())
	postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "bài"})

	other, err := http.Get(srv.URL + "/v1/infographics/current")
	require.NoError(t, err)
	defer other.Body.Close()
	assert.Equal(t, domain.StateIdle, decode[orchestrator.Snapshot](t, other).State)
}

func TestGenerateRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMin = 1
	srv, client := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "bài"}).StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, postJSON(t, client, srv.URL+"/v1/infographics", map[string]any{"text": "bài"}).StatusCode)

	current, err := client.Get(srv.URL + "/v1/infographics/current")
	require.NoError(t, err)
	defer current.Body.Close()
	assert.Equal(t, http.StatusOK, current.StatusCode)
}

func TestOpenAPIDocument(t *testing.T) {
	srv, client := newTestServer(t, testConfig())
	resp, err := client.Get(srv.URL + "/v1/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decode[map[string]any](t, resp)
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	for _, p := range []string{"/v1/infographics", "/v1/infographics/regenerate", "/v1/infographics/relayout", "/v1/infographics/current/export"} {
		assert.Contains(t, paths, p)
	}

	docs, err := client.Get(srv.URL + "/v1/docs")
	require.NoError(t, err)
	defer docs.Body.Close()
	require.Equal(t, http.StatusOK, docs.StatusCode)
	page, err := io.ReadAll(docs.Body)
	require.NoError(t, err)
	for _, want := range []string{"Lesson Infographic API", "/v1/infographics/relayout", "Draw a new layout for the current result", "<code>POST</code>"} {
		assert.Contains(t, string(page), want)
	}
}
