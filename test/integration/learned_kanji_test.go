package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/japanesestudent/kanji-service/internal/auth/middleware"
	"github.com/japanesestudent/kanji-service/internal/auth/service"
	"github.com/japanesestudent/kanji-service/internal/config"
	"github.com/japanesestudent/kanji-service/internal/handlers"
	"github.com/japanesestudent/kanji-service/internal/progress"
	"github.com/japanesestudent/kanji-service/internal/repositories"
	"github.com/japanesestudent/kanji-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testDB     *sql.DB
	testServer *httptest.Server
	testTokens *service.TokenGenerator
	testLogger *zap.Logger
)

// cleanupTestData removes all learned kanji records
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM user_learned_kanji")
	require.NoError(t, err, "Failed to cleanup test data")
}

// setupTestRouter creates a test router with the learned kanji routes
func setupTestRouter(db *sql.DB, tokens *service.TokenGenerator, logger *zap.Logger) chi.Router {
	repo := repositories.NewLearnedKanjiRepository(db)
	svc := services.NewLearnedKanjiService(repo, logger)
	handler := handlers.NewLearnedKanjiHandler(svc, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, middleware.RequireSession(tokens))

	return r
}

// migrateTestSchema applies the service migrations to the test database
func migrateTestSchema(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "kanji_schema_migrations",
	})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "mysql", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}
	if cfg.Database.Host == "" {
		fmt.Println("TEST_DB_HOST is not set, skipping integration tests")
		os.Exit(0)
	}

	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	testDB, err = sql.Open("mysql", cfg.DSN())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to test database: %v", err))
	}
	if err = testDB.Ping(); err != nil {
		panic(fmt.Sprintf("Failed to ping test database: %v", err))
	}
	if err = migrateTestSchema(testDB); err != nil {
		panic(fmt.Sprintf("Failed to migrate test database: %v", err))
	}

	testTokens = service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	testServer = httptest.NewServer(setupTestRouter(testDB, testTokens, testLogger))

	code := m.Run()

	testServer.Close()
	testDB.Close()
	os.Exit(code)
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := testTokens.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

func TestIntegration_MarkUnmarkScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cleanupTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	ctx := context.Background()
	client := progress.NewClient(testServer.URL, nil)
	tokenA := tokenFor(t, "user-a")
	tokenB := tokenFor(t, "user-b")

	msg, err := client.Mark(ctx, tokenA, "水")
	require.NoError(t, err)
	assert.Equal(t, handlers.MsgMarked, msg)

	msg, err = client.Mark(ctx, tokenA, "水")
	require.NoError(t, err)
	assert.Equal(t, handlers.MsgAlreadyMarked, msg)

	_, err = client.Mark(ctx, tokenA, "火")
	require.NoError(t, err)

	list, err := client.FetchLearned(ctx, tokenA)
	require.NoError(t, err)
	sort.Strings(list.Kanji)
	assert.Equal(t, []string{"水", "火"}, list.Kanji)
	assert.Equal(t, 2, list.Count)

	learned, err := client.IsLearned(ctx, tokenB, "水")
	require.NoError(t, err)
	assert.False(t, learned)

	msg, err = client.Unmark(ctx, tokenA, "水")
	require.NoError(t, err)
	assert.Equal(t, handlers.MsgUnmarked, msg)
	_, err = client.Unmark(ctx, tokenA, "水")
	require.NoError(t, err)

	list, err = client.FetchLearned(ctx, tokenA)
	require.NoError(t, err)
	assert.Equal(t, []string{"火"}, list.Kanji)

	var rows int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM user_learned_kanji WHERE user_id = ?", "user-a").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestIntegration_KanjiStoredExactly(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cleanupTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	ctx := context.Background()
	client := progress.NewClient(testServer.URL, nil)
	token := tokenFor(t, "user-a")

	// Hiragana and katakana with the same reading must stay distinct
	for _, k := range []string{"か", "カ", "𠮟"} {
		_, err := client.Mark(ctx, token, k)
		require.NoError(t, err)
	}

	list, err := client.FetchLearned(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 3, list.Count)
	assert.ElementsMatch(t, []string{"か", "カ", "𠮟"}, list.Kanji)

	_, err = client.Mark(ctx, token, strings.Repeat("漢", 33))
	var apiErr *progress.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, handlers.MsgKanjiTooLong, apiErr.Message)
}

func TestIntegration_TrackerFollowsSession(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cleanupTestData(t, testDB)
	defer cleanupTestData(t, testDB)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client := progress.NewClient(testServer.URL, nil)
	tokenA := tokenFor(t, "user-a")
	_, err := client.Mark(ctx, tokenA, "一")
	require.NoError(t, err)

	tracker := progress.NewTracker(client, testLogger)
	tracker.SetSession(&progress.Identity{UserID: "user-a", Token: tokenA})
	require.NoError(t, tracker.Wait(ctx))

	assert.True(t, tracker.IsLearned("一"))
	completion := tracker.Completion([]string{"一", "二", "三"})
	assert.Equal(t, 1, completion.Learned)
	assert.Equal(t, 33, completion.Percentage)

	tracker.SetSession(&progress.Identity{UserID: "user-b", Token: tokenFor(t, "user-b")})
	require.NoError(t, tracker.Wait(ctx))
	assert.False(t, tracker.IsLearned("一"))
	assert.Equal(t, 0, tracker.Snapshot().Count)

	tracker.SetSession(&progress.Identity{UserID: "user-c", Token: "not-a-token"})
	require.NoError(t, tracker.Wait(ctx))
	assert.False(t, tracker.IsAuthenticated())
}
