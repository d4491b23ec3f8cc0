package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appControllers "github.com/yigit/campuslink/internal/app/controllers"
	"github.com/yigit/campuslink/internal/config"
	appMiddleware "github.com/yigit/campuslink/internal/middleware"
	"github.com/yigit/campuslink/internal/pkg/realtime"
	"github.com/yigit/campuslink/internal/pkg/websocket"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.StoragePath = t.TempDir()
	cfg.Server.MaxUploadSize = 1 << 20
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerMinute = 30
	cfg.RateLimit.Burst = 5
	cfg.RateLimit.IdleTTL = time.Minute
	return cfg
}

func TestBuildRateLimiterFallsBackWithoutRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.RedisAddr = "127.0.0.1:1"

	deps := &Dependencies{Logger: zerolog.Nop()}
	limiter := deps.buildRateLimiter(cfg)
	defer deps.Close()

	assert.IsType(t, &appMiddleware.IPRateLimiter{}, limiter)
	assert.Nil(t, deps.redisClient)
	assert.NotNil(t, deps.stopCleanup)
}

func TestSetupRouterServesPingUploadsAndWebSocket(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StoragePath, "image-1.png"), []byte("png"), 0o644))

	log := zerolog.Nop()
	hub := realtime.NewHub(log)
	gateway := realtime.NewGateway(hub, nil, nil, log)
	deps := &Dependencies{
		Logger:            log,
		AuthController:    appControllers.NewAuthController(nil, log),
		UserController:    appControllers.NewUserController(nil, log),
		MessageController: appControllers.NewMessageController(nil, log),
		PostController:    appControllers.NewPostController(nil, log),
		WebSocketHandler:  websocket.NewHandler(gateway, cfg.CORS.AllowedOrigins, log),
	}

	router := SetupRouter(cfg, deps, log)
	defer gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong","status":"success"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/image-1.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())

	// A plain GET without upgrade headers is rejected by the upgrader.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
