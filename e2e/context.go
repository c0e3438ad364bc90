// Package e2e drives the assembled HTTP surface through godog scenarios.
// Each scenario gets a fresh in-memory deployment behind an httptest server.
package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"civicdesk/internal/directory"
	formshandler "civicdesk/internal/forms/handler"
	formsservice "civicdesk/internal/forms/service"
	formsstore "civicdesk/internal/forms/store"
	intakehandler "civicdesk/internal/intake/handler"
	intakeservice "civicdesk/internal/intake/service"
	intakestore "civicdesk/internal/intake/store"
	jwttoken "civicdesk/internal/jwt_token"
	"civicdesk/internal/platform/config"
	statshandler "civicdesk/internal/stats/handler"
	statsservice "civicdesk/internal/stats/service"
	statsstore "civicdesk/internal/stats/store"
	"civicdesk/internal/throttle"
	httptransport "civicdesk/internal/transport/http"
	"civicdesk/pkg/domain"
)

const (
	signingKey = "e2e-signing-key"
	issuer     = "civicdesk-e2e"
	tokenTTL   = time.Hour
)

// Options tune the deployment a scenario runs against.
type Options struct {
	ThrottleLimit  int
	ThrottleWindow time.Duration
}

// TestContext holds one scenario's server, the signed-in actors and the
// last response seen.
type TestContext struct {
	server *httptest.Server
	client *http.Client
	tokens *jwttoken.JWTService

	actors    map[string]domain.Actor
	current   string
	clientIP  string
	vars      map[string]string
	status    int
	header    http.Header
	body      []byte
	bodyValue any
}

// NewTestContext wires every module over in-memory stores, mirroring the
// server binary without Postgres or Redis.
func NewTestContext(opts Options) *TestContext {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	anon := config.DefaultAnonymousPolicy()

	intakeMem := intakestore.NewInMemoryStore()
	users := directory.NewInMemory()
	tokens := jwttoken.NewJWTService(signingKey, issuer)

	guard := throttle.New(throttle.NewMemoryLimiter(), log, config.ThrottleConfig{
		Limit:  opts.ThrottleLimit,
		Window: opts.ThrottleWindow,
	}).Guard

	forms := formsservice.New(formsstore.NewInMemoryStore(),
		formsservice.WithLogger(log),
		formsservice.WithAnonymousPolicy(anon),
	)
	intake := intakeservice.New(intakeMem, users,
		intakeservice.WithLogger(log),
		intakeservice.WithAnonymousPolicy(anon),
	)
	stats := statsservice.New(statsstore.NewInMemory(statsstore.IntakeSources(intakeMem)), users,
		statsservice.WithLogger(log),
	)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:    log,
		Tokens:    tokens,
		ActorSync: directory.Sync(users, log),
		Modules: []httptransport.Registrar{
			formshandler.New(forms, log, guard),
			intakehandler.New(intake, log, guard),
			statshandler.New(stats, log),
		},
	})

	srv := httptest.NewServer(router)
	return &TestContext{
		server: srv,
		client: srv.Client(),
		tokens: tokens,
		actors: map[string]domain.Actor{},
		vars:   map[string]string{},
	}
}

// Close stops the scenario's server.
func (tc *TestContext) Close() {
	tc.server.Close()
}

// SignIn mints a token for username and makes it the caller of later requests.
func (tc *TestContext) SignIn(username string, staff bool) {
	actor, ok := tc.actors[username]
	if !ok {
		actor = domain.Actor{ID: domain.UserID(uuid.New()), Username: username, Elevated: staff, Active: true}
		tc.actors[username] = actor
	}
	tc.current = username
}

// SignOut makes later requests anonymous.
func (tc *TestContext) SignOut() {
	tc.current = ""
}

// ActorID returns the id of a user who has signed in during the scenario.
func (tc *TestContext) ActorID(username string) (string, error) {
	actor, ok := tc.actors[username]
	if !ok {
		return "", fmt.Errorf("user %q never signed in", username)
	}
	return actor.ID.String(), nil
}

// SetClientIP sets the X-Forwarded-For address of later requests.
func (tc *TestContext) SetClientIP(ip string) {
	tc.clientIP = ip
}

// Save stores a value for {name} substitution in later paths.
func (tc *TestContext) Save(name, value string) {
	tc.vars[name] = value
}

// Expand replaces {name} placeholders with saved values.
func (tc *TestContext) Expand(s string) string {
	for k, v := range tc.vars {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}

func (tc *TestContext) POST(path string, body any) error {
	return tc.do(http.MethodPost, path, body)
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("marshal request body: %w", err)
			}
			raw = string(b)
		}
		reader = strings.NewReader(raw)
	}

	req, err := http.NewRequest(method, tc.server.URL+tc.Expand(path), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.clientIP != "" {
		req.Header.Set("X-Forwarded-For", tc.clientIP)
	}
	if tc.current != "" {
		token, err := tc.tokens.GenerateAccessToken(tc.actors[tc.current], tokenTTL)
		if err != nil {
			return fmt.Errorf("mint token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.header = resp.Header
	tc.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.bodyValue = nil
	if len(bytes.TrimSpace(tc.body)) > 0 {
		if err := json.Unmarshal(tc.body, &tc.bodyValue); err != nil {
			return fmt.Errorf("decode response %q: %w", tc.body, err)
		}
	}
	return nil
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.status
}

func (tc *TestContext) GetLastResponseHeader(name string) string {
	return tc.header.Get(name)
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.body
}

// GetResponseField walks a dotted path such as "feedback.status" or
// "responses.0.response_data.topic" through the last JSON body.
func (tc *TestContext) GetResponseField(path string) (any, error) {
	cur := tc.bodyValue
	for _, part := range strings.Split(path, ".") {
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, tc.body)
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(v) {
				return nil, fmt.Errorf("index %q out of range in %q", part, path)
			}
			cur = v[i]
		default:
			return nil, fmt.Errorf("cannot descend into %q of %q", part, path)
		}
	}
	return cur, nil
}
