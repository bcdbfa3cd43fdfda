package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irsalhamdi/shop-api/api"
	"github.com/irsalhamdi/shop-api/config"
	"github.com/irsalhamdi/shop-api/core/auth"
	"github.com/irsalhamdi/shop-api/core/claims"
	"github.com/irsalhamdi/shop-api/core/user"
	"github.com/irsalhamdi/shop-api/database"
	"github.com/irsalhamdi/shop-api/random"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

// TestEnv is a running api backed by a throwaway Postgres container.
type TestEnv struct {
	*httptest.Server
	DB *sqlx.DB

	AdminToken string
	UserToken  string
	UserID     string
}

// NewTestEnv starts Postgres in docker, migrates it and serves the api. The
// test is skipped when no docker daemon is reachable.
func NewTestEnv(t *testing.T, name string) *TestEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
	pool.MaxWait = time.Minute

	cfg := config.DB{
		User:         "postgres",
		Password:     "postgres",
		Name:         "shop",
		MaxIdleConns: 2,
		MaxOpenConns: 10,
		DisableTLS:   true,
	}

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       fmt.Sprintf("shop-%s-%s", name, random.String(6)),
		Repository: "postgres",
		Tag:        "14-alpine",
		Env: []string{
			"POSTGRES_USER=" + cfg.User,
			"POSTGRES_PASSWORD=" + cfg.Password,
			"POSTGRES_DB=" + cfg.Name,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("starting postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(res); err != nil {
			t.Logf("purging postgres: %v", err)
		}
	})
	_ = res.Expire(300)

	cfg.Host = res.GetHostPort("5432/tcp")

	var db *sqlx.DB
	err = pool.Retry(func() error {
		var err error
		if db, err = database.Open(cfg); err != nil {
			return err
		}
		if err := database.StatusCheck(context.Background(), db); err != nil {
			db.Close()
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("connecting to postgres: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	secret, err := random.StringSecure(48)
	if err != nil {
		t.Fatal(err)
	}
	tokens, err := auth.NewTokens(secret, time.Hour, "shop-api-test")
	if err != nil {
		t.Fatal(err)
	}

	log, _ := logtest.NewNullLogger()

	srv := httptest.NewServer(api.APIMux(api.APIConfig{
		Log:    log,
		DB:     db,
		Tokens: tokens,
	}))
	t.Cleanup(srv.Close)

	env := &TestEnv{Server: srv, DB: db}

	admin, err := user.Create(context.Background(), db, user.UserNew{
		Name:     "Admin",
		Email:    random.Email(),
		Role:     claims.RoleAdmin,
		Password: "admin-password",
	}, time.Now().UTC())
	if err != nil {
		t.Fatalf("creating admin: %v", err)
	}
	env.AdminToken = env.login(t, admin.Email, "admin-password")

	env.UserID, env.UserToken = env.Register(t)

	return env
}

// Register signs up a fresh user and returns its id and bearer token.
func (e *TestEnv) Register(t *testing.T) (string, string) {
	t.Helper()

	nu := user.UserNew{Name: "Shopper", Email: random.Email(), Password: "shopper-password"}

	var usr user.User
	res := e.Do(t, http.MethodPost, "/auth/register", "", nu)
	res.expect(t, http.StatusCreated).into(t, &usr)

	return usr.ID, e.login(t, nu.Email, nu.Password)
}

func (e *TestEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	var tok auth.Token
	cred := user.Credentials{Email: email, Password: password}
	e.Do(t, http.MethodPost, "/auth/login", "", cred).expect(t, http.StatusOK).into(t, &tok)

	if tok.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return tok.Token
}

// Response is a decoded api envelope.
type Response struct {
	Status     int                   `json:"-"`
	Success    bool                  `json:"success"`
	Data       json.RawMessage       `json:"data"`
	Message    string                `json:"message"`
	StatusCode int                   `json:"statusCode"`
	Errors     []validate.FieldError `json:"errors"`
}

func (r Response) expect(t *testing.T, status int) Response {
	t.Helper()
	if r.Status != status {
		t.Fatalf("expected status %d, got %d: %s", status, r.Status, r.Message)
	}
	if r.Status != http.StatusNoContent && r.StatusCode != status {
		t.Fatalf("envelope status %d does not match response status %d", r.StatusCode, status)
	}
	return r
}

func (r Response) into(t *testing.T, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Data, v); err != nil {
		t.Fatalf("decoding response data: %v", err)
	}
}

// Do sends body as JSON with the given bearer token and decodes the envelope.
func (e *TestEnv) Do(t *testing.T, method, path, token string, body any) Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, e.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w, err := e.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	res := Response{Status: w.StatusCode}
	if w.StatusCode == http.StatusNoContent {
		return res
	}

	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decoding %s %s response: %v", method, path, err)
	}
	return res
}
