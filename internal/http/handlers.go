package http

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"vicmoney/internal/log"
	"vicmoney/internal/tracker"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().BodyJSON(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).String(),
	}).Write(w)
}

// handleReady reports whether the page can be rendered
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]interface{})

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.tracker == nil {
		checks["tracker"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["tracker"] = "ok"
	}

	checks["rate_limiter"] = map[string]interface{}{
		"active_clients": s.limiter.ActiveClients(),
		"status":         "ok",
	}

	NewHTMXResponse().Status(httpStatus).BodyJSON(map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	}).Write(w)
}

// handleMetrics provides application metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	traceMetrics := s.traceMiddleware.GetMetrics()
	rateLimitMetrics := s.limiter.GetMetrics()
	fragments := s.fragments.Stats()
	applied := atomic.LoadInt64(&s.appMetrics.actionsApplied)
	rejected := atomic.LoadInt64(&s.appMetrics.actionsRejected)
	uptime := time.Since(s.appMetrics.uptime)

	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_request_duration_avg_microseconds Mean HTTP request duration\n")
	fmt.Fprintf(w, "# TYPE http_request_duration_avg_microseconds gauge\n")
	fmt.Fprintf(w, "http_request_duration_avg_microseconds %d\n\n", traceMetrics.AverageResponseTime)

	fmt.Fprintf(w, "# HELP actions_applied_total Tracker actions that changed the purse\n")
	fmt.Fprintf(w, "# TYPE actions_applied_total counter\n")
	fmt.Fprintf(w, "actions_applied_total %d\n\n", applied)

	fmt.Fprintf(w, "# HELP actions_rejected_total Tracker actions that were refused\n")
	fmt.Fprintf(w, "# TYPE actions_rejected_total counter\n")
	fmt.Fprintf(w, "actions_rejected_total %d\n\n", rejected)

	fmt.Fprintf(w, "# HELP rate_limit_hits_total Total rate limit hits\n")
	fmt.Fprintf(w, "# TYPE rate_limit_hits_total counter\n")
	fmt.Fprintf(w, "rate_limit_hits_total %d\n\n", rateLimitMetrics.TotalHits)

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", rateLimitMetrics.ClientCount)

	fmt.Fprintf(w, "# HELP fragment_cache_hits_total Rendered tracker views served from cache\n")
	fmt.Fprintf(w, "# TYPE fragment_cache_hits_total counter\n")
	fmt.Fprintf(w, "fragment_cache_hits_total %d\n\n", fragments.Hits)

	fmt.Fprintf(w, "# HELP fragment_cache_misses_total Rendered tracker views built from templates\n")
	fmt.Fprintf(w, "# TYPE fragment_cache_misses_total counter\n")
	fmt.Fprintf(w, "fragment_cache_misses_total %d\n\n", fragments.Misses)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", uptime.Seconds())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		NotFoundError("Page not found").Write(w)
		return
	}
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.writePage(r.Context(), w, "index.html", s.tracker.Snapshot())
}

// handleTrackerPartial returns the tracker fragment, re-pulled by the page
// whenever money:changed fires.
func (s *Server) handleTrackerPartial(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	s.writePage(r.Context(), w, "tracker.html", s.tracker.Snapshot())
}

func (s *Server) handleMoneyJSON(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}
	NewHTMXResponse().BodyJSON(s.tracker.Snapshot()).Write(w)
}

// handleAction applies one tracker action. htmx callers get the refreshed
// fragment, JSON callers the refreshed snapshot, plain form posts a redirect
// back to the page.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	logger := log.FromContext(r.Context())

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		logger.WarnContext(r.Context(), "Failed to parse action request",
			log.FieldError, err,
			log.FieldOperation, log.OpParse,
			"error_type", log.ErrorTypeValidation)
		if parser.IsJSON() {
			JSONErrorResponse(http.StatusBadRequest, "Invalid request format").Write(w)
		} else {
			BadRequestError("Invalid request format").Write(w)
		}
		return
	}

	action, err := tracker.ParseAction(parser.Get("action"))
	if err != nil {
		atomic.AddInt64(&s.appMetrics.actionsRejected, 1)
		logger.WarnContext(r.Context(), "Unknown action",
			log.FieldAction, parser.Get("action"),
			log.FieldError, err,
			"error_type", log.ErrorTypeValidation)
		errorResponse(err, parser.IsJSON()).Write(w)
		return
	}

	view, err := s.tracker.Apply(r.Context(), action)
	if err != nil {
		atomic.AddInt64(&s.appMetrics.actionsRejected, 1)
		errorResponse(err, parser.IsJSON()).Write(w)
		return
	}
	atomic.AddInt64(&s.appMetrics.actionsApplied, 1)

	switch {
	case parser.IsJSON():
		NewHTMXResponse().BodyJSON(view).Write(w)
	case isHTMX(r):
		body, err := s.renderView("tracker.html", view)
		if err != nil {
			logger.ErrorContext(r.Context(), "Tracker template execution failed",
				log.FieldError, err,
				log.FieldOperation, log.OpRender,
				"error_type", log.ErrorTypeInternal)
			InternalServerError("Failed to render tracker").Write(w)
			return
		}
		NewHTMXResponse().
			TriggerMoneyChanged(view.Total, view.Version).
			BodyHTML(body).
			Write(w)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) writePage(ctx context.Context, w http.ResponseWriter, name string, view tracker.View) {
	body, err := s.renderView(name, view)
	if err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Template execution failed",
			log.FieldError, err,
			log.FieldOperation, log.OpRender,
			"template", name,
			"error_type", log.ErrorTypeConfiguration)
		InternalServerError("Failed to render page").Write(w)
		return
	}
	NewHTMXResponse().BodyHTML(body).Write(w)
}
