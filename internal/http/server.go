package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"vicmoney/internal/cache"
	"vicmoney/internal/log"
	"vicmoney/internal/middleware/ratelimit"
	"vicmoney/internal/middleware/security"
	"vicmoney/internal/middleware/trace"
	"vicmoney/internal/tracker"
	appweb "vicmoney/web"
)

// fragmentCacheSize bounds the rendered views kept per server: the current
// version of each template plus a few recent ones.
const fragmentCacheSize = 16

// Options configures the server beyond its listen address.
type Options struct {
	RateLimitPerMinute int
}

type Server struct {
	http.Server
	templates *template.Template
	tracker   *tracker.Tracker
	logger    *log.Logger

	fragments       *cache.LRU[[]byte]
	limiter         *ratelimit.Limiter
	traceMiddleware *trace.Middleware
	appMetrics      *appMetrics

	shutdownOnce sync.Once
}

// appMetrics tracks tracker activity for the metrics endpoint.
type appMetrics struct {
	actionsApplied  int64
	actionsRejected int64
	uptime          time.Time
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, t *tracker.Tracker, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	mux := http.NewServeMux()

	s := &Server{
		tracker:         t,
		logger:          logger,
		fragments:       cache.NewLRU[[]byte](fragmentCacheSize),
		limiter:         ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		traceMiddleware: trace.NewMiddleware(logger.Logger, security.ExtractClientIP),
		appMetrics:      &appMetrics{uptime: time.Now()},
	}

	// Parse embedded templates at startup.
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err, log.FieldOperation, log.OpStartup)
	} else {
		s.templates = tmpl
	}

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ui/tracker", s.handleTrackerPartial)
	mux.HandleFunc("/actions", s.handleAction)
	mux.HandleFunc("/api/money", s.handleMoneyJSON)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limit := s.limiter.Middleware(security.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		s.logger.WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, security.ExtractClientIP(r),
			log.FieldPath, r.URL.Path)
		TooManyRequestsError("Too many actions. Please slow down.").Write(w)
	})

	// Outermost first.
	s.Server = http.Server{
		Addr: addr,
		Handler: chain(mux,
			s.traceMiddleware.Middleware,
			headers.Middleware,
			limit,
			log.Middleware(logger),
			log.RequestIDMiddleware(trace.RequestID),
		),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}

	return s
}

// chain wraps h so that the first middleware listed runs first.
func chain(h http.Handler, middleware ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// Shutdown gracefully shuts down the server and its background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.logger.Info("Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
