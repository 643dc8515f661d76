package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadapter "github.com/luxfi/ai-bridge/internal/adapters/http"
	"github.com/luxfi/ai-bridge/internal/adapters/miner"
	nodeadapter "github.com/luxfi/ai-bridge/internal/adapters/node"
	specsadapter "github.com/luxfi/ai-bridge/internal/adapters/specs"
	"github.com/luxfi/ai-bridge/internal/app"
	"github.com/luxfi/ai-bridge/internal/endpoint"
	"github.com/luxfi/ai-bridge/internal/observability"
)

func main() {
	_ = godotenv.Load()

	addrFlag := flag.String("addr", "127.0.0.1:7780", "bridge listen address")
	nodeURLFlag := flag.String("node-url", "", "initial node base URL, defaults to "+endpoint.DefaultNodeURL)
	nodeTimeoutFlag := flag.Duration("node-timeout", 0, "outbound node request timeout")
	probeIntervalFlag := flag.Duration("probe-interval", 0, "miner status stream interval")
	flag.Parse()

	logger := log.Default()
	flushSentry, sentryEnabled, sentryErr := observability.Init()
	if sentryErr != nil {
		logger.Printf("sentry init: %v", sentryErr)
		os.Exit(1)
	}
	defer flushSentry()

	addr := *addrFlag
	if env := strings.TrimSpace(os.Getenv("BRIDGE_ADDR")); env != "" && !flagWasSet("addr") {
		addr = env
	}

	nodeURL := strings.TrimSpace(*nodeURLFlag)
	if nodeURL == "" {
		nodeURL = strings.TrimSpace(os.Getenv("BRIDGE_NODE_URL"))
	}

	nodeTimeout, err := durationSetting(*nodeTimeoutFlag, "BRIDGE_NODE_TIMEOUT")
	if err != nil {
		logger.Printf("invalid BRIDGE_NODE_TIMEOUT: %v", err)
		os.Exit(1)
	}
	probeInterval, err := durationSetting(*probeIntervalFlag, "BRIDGE_PROBE_INTERVAL")
	if err != nil {
		logger.Printf("invalid BRIDGE_PROBE_INTERVAL: %v", err)
		os.Exit(1)
	}

	registry := endpoint.NewRegistry()
	if nodeURL != "" {
		registry.Set(nodeURL)
	}

	nodeClient := nodeadapter.NewClient(registry, nodeTimeout)
	service := app.NewService(nodeClient, miner.NewController(), specsadapter.NewReader(), registry, logger)
	bridgeServer := httpadapter.NewServer(service, logger, probeInterval)

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		TargetHeader: echo.HeaderXRequestID,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Request().Header.Set(echo.HeaderXRequestID, id)
		},
	}))
	if sentryEnabled {
		echoServer.Use(sentryecho.New(sentryecho.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}
	echoServer.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: `{"time":"${time_rfc3339}","request_id":"${header:X-Request-ID}","remote_ip":"${remote_ip}","method":"${method}","uri":"${uri}","status":${status},"latency":"${latency_human}","error":"${error}"}` + "\n",
	}))
	echoServer.Use(middleware.Recover())
	echoServer.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				observability.CaptureError(err, map[string]string{
					"component": "bridge_http",
					"route":     c.Path(),
				})
			}
			return err
		}
	})
	bridgeServer.Register(echoServer)

	server := &http.Server{
		Addr:              addr,
		Handler:           echoServer,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("ai-bridge listening on %s, node %s", addr, registry.Current())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("listen: %v", err)
		os.Exit(1)
	}
}

// durationSetting merges a flag value with an env fallback; the flag wins when
// set.
func durationSetting(flagValue time.Duration, envKey string) (time.Duration, error) {
	if flagValue != 0 {
		return flagValue, nil
	}
	env := strings.TrimSpace(os.Getenv(envKey))
	if env == "" {
		return 0, nil
	}
	return time.ParseDuration(env)
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
