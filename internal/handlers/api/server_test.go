package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PedroPerillo/dndice/internal/auth"
	"github.com/PedroPerillo/dndice/internal/dice"
	"github.com/PedroPerillo/dndice/internal/models"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
	diceService "github.com/PedroPerillo/dndice/internal/services/dice"
	quickRollService "github.com/PedroPerillo/dndice/internal/services/quick_roll"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite
	mr       *miniredis.Miniredis
	client   *redis.Client
	verifier *auth.Verifier
	server   *Server
	ts       *httptest.Server
	http     *http.Client
}

func (s *ServerTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	remote, err := quickRollRepo.NewRedis(&quickRollRepo.RedisConfig{RedisClient: s.client})
	s.Require().NoError(err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	quickRolls, err := quickRollService.New(&quickRollService.Config{
		Remote:     remote,
		RemoteName: "redis",
		Logger:     logger,
	})
	s.Require().NoError(err)

	roller, err := diceService.New(&diceService.Config{DiceRoller: dice.New(&dice.Config{Seed: 7})})
	s.Require().NoError(err)

	s.verifier, err = auth.New(&auth.Config{Secret: []byte("test-secret"), Issuer: "dndice"})
	s.Require().NoError(err)

	s.server, err = New(&Config{
		QuickRollService: quickRolls,
		DiceService:      roller,
		Verifier:         s.verifier,
		Store:            remote,
		Logger:           logger,
		RateLimitRPS:     1000,
		RateLimitBurst:   1000,
	})
	s.Require().NoError(err)

	s.ts = httptest.NewServer(s.server.Handler())

	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	s.http = &http.Client{Jar: jar}
}

func (s *ServerTestSuite) TearDownTest() {
	s.ts.Close()
	s.client.Close()
	s.mr.Close()
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) do(method, path, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.ts.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.http.Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *ServerTestSuite) decode(resp *http.Response, dst any) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(dst))
}

func (s *ServerTestSuite) token(id string) string {
	token, err := s.verifier.Issue(&models.Identity{ID: id}, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *ServerTestSuite) TestNew_Validation() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{})
	s.ErrorIs(err, ErrNilQuickRollService)
}

func (s *ServerTestSuite) TestHealthAndReady() {
	resp := s.do(http.MethodGet, "/healthz", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodGet, "/readyz", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	s.mr.SetError("LOADING")
	resp = s.do(http.MethodGet, "/readyz", "", nil)
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}

func (s *ServerTestSuite) TestMetricsEndpoint() {
	s.do(http.MethodGet, "/healthz", "", nil)

	resp := s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "dndice_http_requests_total")
}

func (s *ServerTestSuite) TestRoll() {
	resp := s.do(http.MethodPost, "/api/v1/roll", "", RollRequest{Count: 3, DieSize: 20, Modifier: 2})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var out RollResponse
	s.decode(resp, &out)
	s.Equal("3d20+2", out.Label)
	s.Len(out.IndividualRolls, 3)

	sum, highest := 0, 0
	for _, face := range out.IndividualRolls {
		s.GreaterOrEqual(face, 1)
		s.LessOrEqual(face, 20)
		sum += face
		highest = max(highest, face)
	}
	s.Equal(sum, out.DiceSum)
	s.Equal(sum+2, out.Total)
	s.Equal(highest, out.Highest)
	s.NotEmpty(resp.Header.Get(requestIDHeader))
}

func (s *ServerTestSuite) TestRoll_ClampsAndRejects() {
	resp := s.do(http.MethodPost, "/api/v1/roll", "", RollRequest{Count: 500, DieSize: 6, Modifier: -999})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var out RollResponse
	s.decode(resp, &out)
	s.Equal(20, out.Count)
	s.Equal(-50, out.Modifier)

	resp = s.do(http.MethodPost, "/api/v1/roll", "", RollRequest{Count: 1, DieSize: 7})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.do(http.MethodPost, "/api/v1/roll", "", map[string]any{"count": 1, "die_size": 20, "sides": 3})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerTestSuite) TestAnonymousPresetsLiveInCookie() {
	resp := s.do(http.MethodPost, "/api/v1/quick-rolls", "", QuickRollRequest{Name: "Longsword", Count: 1, DieSize: 8, Modifier: 3})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created QuickRollResponse
	s.decode(resp, &created)
	s.Equal("1d8+3", created.Label)
	s.Equal("Longsword", created.DisplayName)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == quickRollRepo.LocalStorageKey {
			cookie = c
		}
	}
	s.Require().NotNil(cookie)
	s.Equal("/", cookie.Path)
	s.True(cookie.HttpOnly)
	s.Equal(http.SameSiteLaxMode, cookie.SameSite)
	s.Greater(cookie.MaxAge, 364*24*60*60)

	// Nothing reached the remote store
	s.Empty(s.mr.Keys())

	resp = s.do(http.MethodGet, "/api/v1/quick-rolls", "", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var list struct {
		Data []QuickRollResponse `json:"data"`
	}
	s.decode(resp, &list)
	s.Require().Len(list.Data, 1)
	s.Equal(created.ID, list.Data[0].ID)

	resp = s.do(http.MethodDelete, "/api/v1/quick-rolls/"+created.ID, "", nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/quick-rolls", "", nil)
	s.decode(resp, &list)
	s.Empty(list.Data)
}

func (s *ServerTestSuite) TestAuthenticatedPresetsGoToRemote() {
	alice := s.token("alice")
	bob := s.token("bob")

	resp := s.do(http.MethodPost, "/api/v1/quick-rolls", alice, QuickRollRequest{Count: 2, DieSize: 6})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created QuickRollResponse
	s.decode(resp, &created)
	s.Equal("2d6", created.DisplayName)
	s.Empty(resp.Cookies())
	s.NotEmpty(s.mr.Keys())

	// Bob sees none of alice's presets
	resp = s.do(http.MethodGet, "/api/v1/quick-rolls", bob, nil)
	var list struct {
		Data []QuickRollResponse `json:"data"`
	}
	s.decode(resp, &list)
	s.Empty(list.Data)

	resp = s.do(http.MethodGet, "/api/v1/quick-rolls/"+created.ID, bob, nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.do(http.MethodGet, "/api/v1/quick-rolls/"+created.ID, alice, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodPut, "/api/v1/quick-rolls/"+created.ID, alice, QuickRollRequest{Name: "Smite", Count: 2, DieSize: 8, Modifier: 4})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var updated QuickRollResponse
	s.decode(resp, &updated)
	s.Equal("2d8+4", updated.Label)
	s.Equal("Smite", updated.DisplayName)

	resp = s.do(http.MethodDelete, "/api/v1/quick-rolls/"+created.ID, alice, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/api/v1/quick-rolls/"+created.ID, alice, nil)
	s.Equal(http.StatusNoContent, resp.StatusCode)
}

func (s *ServerTestSuite) TestInvalidPreset() {
	resp := s.do(http.MethodPost, "/api/v1/quick-rolls", s.token("alice"), QuickRollRequest{Count: 1, DieSize: 3})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var body ErrorResponse
	s.decode(resp, &body)
	s.Contains(body.Error, "d3")
}

func (s *ServerTestSuite) TestBadTokens() {
	resp := s.do(http.MethodGet, "/api/v1/quick-rolls", "garbage", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, s.ts.URL+"/api/v1/quick-rolls", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r, err := s.http.Do(req)
	s.Require().NoError(err)
	defer r.Body.Close()
	s.Equal(http.StatusUnauthorized, r.StatusCode)
}

func (s *ServerTestSuite) TestStoreUnavailable() {
	token := s.token("alice")
	s.mr.SetError("LOADING")

	resp := s.do(http.MethodGet, "/api/v1/quick-rolls", token, nil)
	s.Equal(http.StatusServiceUnavailable, resp.StatusCode)
}

func (s *ServerTestSuite) TestRateLimit() {
	srv, err := New(&Config{
		QuickRollService: s.server.quickRolls,
		DiceService:      s.server.dice,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimitRPS:     0.001,
		RateLimitBurst:   1,
	})
	s.Require().NoError(err)

	body := `{"count":1,"die_size":20,"modifier":0}`

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/roll", strings.NewReader(body)))
	s.Equal(http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/roll", strings.NewReader(body)))
	s.Equal(http.StatusTooManyRequests, rec.Code)
}

func (s *ServerTestSuite) TestRateLimit_ConcurrentFirstRequestsShareBurst() {
	srv, err := New(&Config{
		QuickRollService: s.server.quickRolls,
		DiceService:      s.server.dice,
		Logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimitRPS:     0.001,
		RateLimitBurst:   1,
	})
	s.Require().NoError(err)

	body := `{"count":1,"die_size":20,"modifier":0}`
	handler := srv.Handler()

	var mu sync.Mutex
	codes := map[int]int{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/roll", strings.NewReader(body)))
			mu.Lock()
			codes[rec.Code]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Equal(1, codes[http.StatusOK])
	s.Equal(19, codes[http.StatusTooManyRequests])
}

func TestCookieStorage_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	storage := newCookieStorage(rec, req, false, time.Now)

	err := storage.Set(context.Background(), quickRollRepo.LocalStorageKey, strings.Repeat("a", maxCookieBytes), time.Hour)
	if !errors.Is(err, ErrCookieTooLarge) {
		t.Fatalf("expected ErrCookieTooLarge, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("no cookie should be written")
	}
}

func TestCookieStorage_ReadsOwnWrites(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "k", Value: "old"})
	storage := newCookieStorage(rec, req, true, time.Now)
	ctx := context.Background()

	v, ok, err := storage.Get(ctx, "k")
	if err != nil || !ok || v != "old" {
		t.Fatalf("unexpected read: %q %v %v", v, ok, err)
	}

	value := url.PathEscape(`[{"id":"1"}]`)
	if err := storage.Set(ctx, "k", value, time.Hour); err != nil {
		t.Fatal(err)
	}

	v, _, _ = storage.Get(ctx, "k")
	if v != value {
		t.Fatalf("expected pending value, got %q", v)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || !cookies[0].Secure || cookies[0].Value != value {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
}
