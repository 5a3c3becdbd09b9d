package main

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkdev-site/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	db, err := sql.Open("mock_driver_main", "")
	require.NoError(t, err)
	defer db.Close()

	cfg := &config.Config{
		AppPort:    "8080",
		AppEnv:     "test",
		JWTSecret:  "secret",
		CORSOrigin: "http://localhost:3000",
	}

	handler, cleanup, err := newServer(cfg, db)
	require.NoError(t, err)
	defer cleanup()

	t.Run("Health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "OK")
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Home page fails closed when the database errors", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestRun(t *testing.T) {
	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	var gotAddr string
	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	startServerFunc = func(addr string, handler http.Handler) error {
		gotAddr = addr
		return nil
	}

	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")
	t.Setenv("JWT_SECRET", "secret")

	assert.NoError(t, run())
	assert.Equal(t, ":8080", gotAddr)
}

func TestRun_ConfigError(t *testing.T) {
	t.Setenv("DB_HOST", "")
	assert.Error(t, run())
}

// --- Mock driver: every query fails, so no Postgres is needed ---

var errNoDatabase = errors.New("no database")

type mockDriver struct{}
type mockConn struct{}

func (mockDriver) Open(string) (driver.Conn, error)  { return mockConn{}, nil }
func (mockConn) Prepare(string) (driver.Stmt, error) { return nil, errNoDatabase }
func (mockConn) Close() error                        { return nil }
func (mockConn) Begin() (driver.Tx, error)           { return nil, errNoDatabase }

func init() {
	sql.Register("mock_driver_main", mockDriver{})
}
