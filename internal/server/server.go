package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/willowbyte/gardenbloom/internal/admin"
	"github.com/willowbyte/gardenbloom/internal/catalog"
	"github.com/willowbyte/gardenbloom/internal/handler"
	"github.com/willowbyte/gardenbloom/internal/logger"
	"github.com/willowbyte/gardenbloom/internal/metrics"
	"github.com/willowbyte/gardenbloom/internal/multiplayer"
	"github.com/willowbyte/gardenbloom/internal/slot"
	"github.com/willowbyte/gardenbloom/internal/sse"
	"github.com/willowbyte/gardenbloom/internal/store"
)

// Deps are the services the HTTP layer exposes.
type Deps struct {
	Store    *store.Store
	Catalog  *catalog.Catalog
	Slots    *slot.Manager
	Sync     *multiplayer.Client
	Admin    *admin.Dispatcher
	EventHub *sse.Hub
}

type Server struct {
	httpServer *http.Server
	deps       Deps
}

// NewServer wires the router and middleware stack.
func NewServer(port int, apiKey string, deps Deps) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey))
	r.Use(RateLimitMiddleware(rate.NewLimiter(RequestRateLimit, RequestRateBurst)))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Slot lifecycle
		slotHandler := handler.NewSlotHandler(deps.Slots)
		r.Route("/slots", func(r chi.Router) {
			r.Get("/", slotHandler.HandleList)
			r.Post("/{slotID}/activate", slotHandler.HandleActivate)
			r.Post("/{slotID}/reset", slotHandler.HandleReset)
			r.Post("/deactivate", slotHandler.HandleDeactivate)
			r.Post("/save", slotHandler.HandleSave)
		})

		// Garden actions on the active slot
		gardenHandler := handler.NewGardenHandler(deps.Slots)
		r.Route("/garden", func(r chi.Router) {
			r.Get("/", gardenHandler.HandleView)
			r.Post("/plant", gardenHandler.HandlePlant)
			r.Post("/water", gardenHandler.HandleWater)
			r.Post("/fertilize", gardenHandler.HandleFertilize)
			r.Post("/harvest", gardenHandler.HandleHarvest)
			r.Post("/shovel", gardenHandler.HandleShovel)
			r.Post("/expand", gardenHandler.HandleExpand)

			r.Route("/sprinkler", func(r chi.Router) {
				r.Post("/buy", gardenHandler.HandleBuySprinkler)
				r.Post("/place", gardenHandler.HandlePlaceSprinkler)
				r.Post("/pickup", gardenHandler.HandlePickUpSprinkler)
			})

			r.Route("/decoration", func(r chi.Router) {
				r.Post("/place", gardenHandler.HandlePlaceDecoration)
				r.Post("/remove", gardenHandler.HandleRemoveDecoration)
			})
		})

		// Shop and tools
		shopHandler := handler.NewShopHandler(deps.Slots, deps.Catalog)
		r.Route("/shop", func(r chi.Router) {
			r.Get("/", shopHandler.HandleView)
			r.Get("/catalog", shopHandler.HandleCatalog)
			r.Post("/water", shopHandler.HandleBuyWater)
			r.Post("/fertilizer", shopHandler.HandleBuyFertilizer)
			r.Post("/tool/upgrade", shopHandler.HandleUpgradeTool)
		})

		// Challenges, achievements, stats
		challengeHandler := handler.NewChallengeHandler(deps.Slots)
		r.Get("/challenges", challengeHandler.HandleChallenges)
		r.Get("/achievements", challengeHandler.HandleAchievements)
		r.Get("/stats", challengeHandler.HandleStats)

		// Social and sync
		socialHandler := handler.NewSocialHandler(deps.Sync, deps.Slots)
		r.Route("/social", func(r chi.Router) {
			r.Get("/status", socialHandler.HandleSyncStatus)
			r.Get("/friends", socialHandler.HandleFriends)
			r.Post("/friends/request", socialHandler.HandleSendFriendRequest)
			r.Post("/friends/respond", socialHandler.HandleRespondFriendRequest)
			r.Post("/friends/remove", socialHandler.HandleUnfriend)
			r.Get("/chat", socialHandler.HandleChatHistory)
			r.Post("/chat", socialHandler.HandleSendMessage)
			r.Post("/visit/request", socialHandler.HandleRequestVisit)
			r.Post("/visit/respond", socialHandler.HandleRespondVisit)
			r.Get("/visit/garden", socialHandler.HandlePeerGarden)
		})

		// Server-sent events stream for UI updates
		r.Get("/events", sse.Handler(deps.EventHub))

		// Admin routes
		adminHandler := handler.NewAdminHandler(deps.Admin)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/slots/{slotID}/command", adminHandler.HandleCommand)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		deps: deps,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
