package driver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"pom_automation/domain/entities"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const w3cElementKey = "element-6066-11e4-a52e-4f735466cecf"

type findRequest struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

// webDriverServer answers the W3C WebDriver endpoints the selenium driver uses.
// Any element whose value contains "missing" does not exist.
type webDriverServer struct {
	*httptest.Server

	mu       sync.Mutex
	finds    []findRequest
	scripts  []string
	requests []string
}

func newWebDriverServer(t *testing.T) *webDriverServer {
	t.Helper()
	s := &webDriverServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *webDriverServer) reply(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"value": value})
}

func (s *webDriverServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.mu.Unlock()

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && path == "/session":
		s.reply(w, http.StatusOK, map[string]any{
			"sessionId":    "s1",
			"capabilities": map[string]any{"browserName": "chrome"},
		})
	case r.Method == http.MethodPost && path == "/session/s1/element":
		var req findRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.finds = append(s.finds, req)
		s.mu.Unlock()
		if strings.Contains(req.Value, "missing") {
			s.reply(w, http.StatusNotFound, map[string]any{
				"error":      "no such element",
				"message":    "Unable to locate element",
				"stacktrace": "",
			})
			return
		}
		s.reply(w, http.StatusOK, map[string]any{w3cElementKey: "e1"})
	case r.Method == http.MethodGet && path == "/session/s1/element/e1/text":
		s.reply(w, http.StatusOK, "Hello")
	case r.Method == http.MethodGet && path == "/session/s1/element/e1/name":
		s.reply(w, http.StatusOK, "span")
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/session/s1/execute"):
		var req struct {
			Script string `json:"script"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.scripts = append(s.scripts, req.Script)
		s.mu.Unlock()
		s.reply(w, http.StatusOK, nil)
	case r.Method == http.MethodDelete && path == "/session/s1":
		s.reply(w, http.StatusOK, nil)
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/session/s1/"):
		s.reply(w, http.StatusOK, nil)
	default:
		s.reply(w, http.StatusNotFound, map[string]any{
			"error":   "unknown command",
			"message": r.Method + " " + path,
		})
	}
}

func (s *webDriverServer) lastFind() findRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.finds) == 0 {
		return findRequest{}
	}
	return s.finds[len(s.finds)-1]
}

func (s *webDriverServer) received(req string) bool {
	return s.count(req) > 0
}

func (s *webDriverServer) count(req string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r == req {
			n++
		}
	}
	return n
}

func (s *webDriverServer) executedScripts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.scripts...)
}

func newTestSelenium(t *testing.T, srv *webDriverServer, platform string) *seleniumDriver {
	t.Helper()
	return newTestSeleniumWith(t, SeleniumOptions{URL: srv.URL, Platform: platform})
}

func newTestSeleniumWith(t *testing.T, opts SeleniumOptions) *seleniumDriver {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	if opts.BaseURL == "" {
		opts.BaseURL = "http://app.test/"
	}
	opts.PollInterval = 5 * time.Millisecond
	d, err := NewSelenium(opts, logger)
	require.NoError(t, err)
	return d.(*seleniumDriver)
}

func TestSelenium_FindClickTypeRead(t *testing.T) {
	ctx := context.Background()
	srv := newWebDriverServer(t)
	d := newTestSelenium(t, srv, "")

	require.NoError(t, d.Open(ctx, ""))
	assert.True(t, srv.received("POST /session/s1/url"))

	el, err := d.Find(ctx, entities.ByAccessibilityID("messageInput"))
	require.NoError(t, err)
	assert.Equal(t, findRequest{Using: "css selector", Value: `[aria-label="messageInput"]`}, srv.lastFind())

	require.NoError(t, el.TypeText(ctx, "Hello"))
	assert.True(t, srv.received("POST /session/s1/element/e1/clear"))
	assert.True(t, srv.received("POST /session/s1/element/e1/value"))

	require.NoError(t, el.Click(ctx))
	assert.True(t, srv.received("POST /session/s1/element/e1/click"))

	text, err := el.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)

	require.NoError(t, d.Back(ctx))
	assert.True(t, srv.received("POST /session/s1/back"))

	require.NoError(t, d.Close())
	assert.True(t, srv.received("DELETE /session/s1"))
}

func TestSelenium_TextStrategyUsesXPath(t *testing.T) {
	srv := newWebDriverServer(t)
	d := newTestSelenium(t, srv, "")

	_, err := d.Find(context.Background(), entities.ByText("Log in"))
	require.NoError(t, err)
	assert.Equal(t, findRequest{Using: "xpath", Value: `//*[text()[normalize-space(.)="Log in"]]`}, srv.lastFind())
}

func TestSelenium_AppiumUsesAccessibilityID(t *testing.T) {
	srv := newWebDriverServer(t)
	d := newTestSelenium(t, srv, "Android")

	_, err := d.Find(context.Background(), entities.ByAccessibilityID("loginBtn"))
	require.NoError(t, err)
	assert.Equal(t, findRequest{Using: "accessibility id", Value: "loginBtn"}, srv.lastFind())

	_, err = d.Find(context.Background(), entities.ByCSS("button"))
	require.ErrorIs(t, err, entities.ErrUnsupportedStrategy)
}

func TestSelenium_AppiumOpenRecreatesSessionForEachScenario(t *testing.T) {
	ctx := context.Background()
	srv := newWebDriverServer(t)
	d := newTestSelenium(t, srv, "Android")
	require.Equal(t, 1, srv.count("POST /session"))

	require.NoError(t, d.Open(ctx, ""), "the first scenario uses the app the session started")
	assert.Equal(t, 1, srv.count("POST /session"))
	assert.False(t, srv.received("DELETE /session/s1"))

	require.NoError(t, d.Open(ctx, ""))
	assert.Equal(t, 1, srv.count("DELETE /session/s1"))
	assert.Equal(t, 2, srv.count("POST /session"))
	assert.False(t, srv.received("POST /session/s1/url"), "no navigation without a deep link")

	require.NoError(t, d.Open(ctx, ""))
	assert.Equal(t, 3, srv.count("POST /session"))
}

func TestSelenium_AppiumOpenRestartsAppByID(t *testing.T) {
	ctx := context.Background()
	srv := newWebDriverServer(t)
	d := newTestSeleniumWith(t, SeleniumOptions{URL: srv.URL, Platform: "iOS", AppID: "com.demo.app"})

	require.NoError(t, d.Open(ctx, ""))
	assert.Empty(t, srv.executedScripts())

	require.NoError(t, d.Open(ctx, "demo://echo"))
	assert.Equal(t, []string{"mobile: terminateApp", "mobile: activateApp"}, srv.executedScripts())
	assert.Equal(t, 1, srv.count("POST /session"), "the session is kept")
	assert.True(t, srv.received("POST /session/s1/url"), "a deep link is opened after the restart")
}

func TestSelenium_MissingElement(t *testing.T) {
	ctx := context.Background()
	srv := newWebDriverServer(t)
	d := newTestSelenium(t, srv, "")

	_, err := d.Find(ctx, entities.ByID("missing"))
	require.ErrorIs(t, err, entities.ErrElementNotFound)

	start := time.Now()
	_, err = d.WaitUntilPresent(ctx, entities.ByID("missing"), 50*time.Millisecond)
	require.ErrorIs(t, err, entities.ErrElementNotFound)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestSelenium_WaitUntilPresentReturnsElement(t *testing.T) {
	srv := newWebDriverServer(t)
	d := newTestSelenium(t, srv, "")

	el, err := d.WaitUntilPresent(context.Background(), entities.ByTestID("balance"), time.Second)
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.Equal(t, findRequest{Using: "css selector", Value: `[data-testid="balance"]`}, srv.lastFind())
}

func TestSelenium_CanceledContext(t *testing.T) {
	srv := newWebDriverServer(t)
	d := newTestSelenium(t, srv, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.WaitUntilPresent(ctx, entities.ByID("missing"), time.Second)
	require.ErrorIs(t, err, context.Canceled)
}
