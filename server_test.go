package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shodojo/tegaki/geometry"
	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/session"
)

func testGlyph() *glyph.Glyph {
	return &glyph.Glyph{
		Character: "一",
		Meaning:   "one",
		Strokes: []geometry.Stroke{
			{{X: 10, Y: 54}, {X: 99, Y: 54}},
		},
		Paths: []string{"M10,54 L99,54"},
	}
}

type mapProvider map[string]*glyph.Glyph

func (m mapProvider) Glyph(character string) (*glyph.Glyph, error) {
	g, ok := m[character]
	if !ok {
		return nil, glyph.ErrNotFound
	}
	return g, nil
}

func newTestServer(t *testing.T) (*ApiServer, *httptest.Server) {
	t.Helper()
	cfg := &Config{
		JWTSecret:     "test-secret",
		Sensitivity:   3,
		SnapThreshold: 35,
	}
	api := &ApiServer{
		provider: mapProvider{"一": testGlyph()},
		manager:  session.NewManager(),
		cfg:      cfg,
	}
	ts := httptest.NewServer(api.routes())
	t.Cleanup(ts.Close)
	return api, ts
}

func postJSON(t *testing.T, url, token string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestHandleGlyph(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/glyph?char=" + "一")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data glyph.Glyph `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "一", out.Data.Character)
	assert.Len(t, out.Data.Strokes, 1)
}

func TestHandleGlyphNotFound(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/glyph?char=x")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleGradePerfect(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/grade", "", map[string]interface{}{
		"character": "一",
		"strokes":   testGlyph().Strokes,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data struct {
			Score    int    `json:"score"`
			Feedback string `json:"feedback"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 100, out.Data.Score)
	assert.Equal(t, "Great job!", out.Data.Feedback)
}

func TestHandleGradeStrokeCountMismatch(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/grade", "", map[string]interface{}{
		"character": "一",
		"strokes": []geometry.Stroke{
			{{X: 10, Y: 54}, {X: 99, Y: 54}},
			{{X: 50, Y: 10}, {X: 50, Y: 99}},
		},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Data struct {
			Score    int    `json:"score"`
			Feedback string `json:"feedback"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 0, out.Data.Score)
	assert.Contains(t, out.Data.Feedback, "incorrect stroke count")
}

func TestSessionFlow(t *testing.T) {
	api, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/session", "", map[string]string{"character": "一"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created struct {
		Data struct {
			SessionID string        `json:"sessionId"`
			Token     string        `json:"token"`
			State     session.State `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.Data.Token)
	assert.Equal(t, 1, created.Data.State.Total)
	assert.Equal(t, 1, api.manager.Len())

	// A stroke close to the reference snaps and completes the glyph.
	resp = postJSON(t, ts.URL+"/api/session/stroke", created.Data.Token, map[string]interface{}{
		"points": geometry.Stroke{{X: 12, Y: 56}, {X: 97, Y: 55}},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stroked struct {
		Data struct {
			Decision session.Decision `json:"decision"`
			State    session.State    `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stroked))
	assert.True(t, stroked.Data.Decision.Accepted)
	assert.True(t, stroked.Data.State.Complete)
	require.Len(t, stroked.Data.State.Locked, 1)
	assert.Equal(t, session.LockedColor, stroked.Data.State.Locked[0].Color)

	// Reset rewinds to the first stroke.
	resp = postJSON(t, ts.URL+"/api/session/reset", created.Data.Token, struct{}{})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reset struct {
		Data struct {
			State session.State `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reset))
	assert.False(t, reset.Data.State.Complete)
	assert.Empty(t, reset.Data.State.Locked)

	// Delete removes the session.
	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/session", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+created.Data.Token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, api.manager.Len())
}

func TestSessionStrokeRequiresToken(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/session/stroke", "", map[string]interface{}{
		"points": geometry.Stroke{{X: 0, Y: 0}},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionStrokeRejectsForgedToken(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/session/stroke", "not-a-token", map[string]interface{}{
		"points": geometry.Stroke{{X: 0, Y: 0}},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandleVersion(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMethodGuards(t *testing.T) {
	_, ts := newTestServer(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/glyph"},
		{http.MethodGet, "/api/grade"},
		{http.MethodGet, "/api/session/stroke"},
		{http.MethodPut, "/api/session"},
	} {
		req, err := http.NewRequest(tc.method, ts.URL+tc.path, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode,
			fmt.Sprintf("%s %s", tc.method, tc.path))
	}
}
