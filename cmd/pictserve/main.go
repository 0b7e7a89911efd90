package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/archivekit/pictraster/internal/config"
	"github.com/archivekit/pictraster/internal/handler"
	"github.com/archivekit/pictraster/internal/logging"
)

const (
	appName    = "pictraster decode server"
	appVersion = "v1.0.0"
)

func main() {
	hostFlag := flag.String("host", "", "server listen host")
	portFlag := flag.String("port", "", "server listen port")
	logLevelFlag := flag.String("log-level", "", "log level (debug, info, warn, error)")
	helpFlag := flag.Bool("help", false, "show help")
	versionFlag := flag.Bool("version", false, "show version")

	flag.Parse()

	if *helpFlag {
		showHelp()
		return
	}

	if *versionFlag {
		fmt.Printf("%s %s\n", appName, appVersion)
		return
	}

	opts := config.LoadOptions{
		Host:     strings.TrimSpace(*hostFlag),
		Port:     strings.TrimSpace(*portFlag),
		LogLevel: strings.TrimSpace(*logLevelFlag),
	}

	cfg, err := config.LoadWithOverrides(opts)
	if err != nil {
		logging.Error("failed to load config: %v", err)
		return
	}

	logging.SetLevelFromString(cfg.Logging.Level)

	server := createServer(cfg)
	logging.Info("starting %s on %s:%s", appName, cfg.Server.Host, cfg.Server.Port)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error("server: %v", err)
	}
}

func createServer(cfg *config.Config) *http.Server {
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/decode", handler.Decode)

	h := securityHeadersMiddleware(corsMiddleware(mux, cfg.Security.AllowedOrigins))
	h = requestLoggingMiddleware(h)

	return &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}

func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if isOriginAllowed(origin, allowedOrigins, r.Host) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isOriginAllowed(origin string, allowedOrigins []string, host string) bool {
	if origin == "" {
		return false
	}

	for _, allowed := range allowedOrigins {
		if strings.TrimSpace(allowed) == origin {
			return true
		}
	}

	if len(allowedOrigins) == 0 {
		return strings.Contains(origin, host)
	}

	return false
}

func requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debug("%s %s %s %s", r.RemoteAddr, r.Method, r.URL.Path, time.Since(start))
	})
}

func showHelp() {
	fmt.Println(appName)
	fmt.Println("USAGE: pictserve [options]")
	fmt.Println("OPTIONS:")
	fmt.Println("  -host       Set server listen host (default 0.0.0.0)")
	fmt.Println("  -port       Set server listen port (default 8080)")
	fmt.Println("  -log-level  Set log level (debug, info, warn, error)")
	fmt.Println("  -version    Show version information")
	fmt.Println("  -help       Show this help message")
	fmt.Println("ENVIRONMENT VARIABLES: SERVER_HOST, SERVER_PORT, LOG_LEVEL, ALLOWED_ORIGINS,")
	fmt.Println("  DECODE_MAX_WIDTH, DECODE_MAX_HEIGHT, DECODE_MAX_PAYLOAD_BYTES")
}
