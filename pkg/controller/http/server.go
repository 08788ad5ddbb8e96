package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/portnet-lab/caseflow/pkg/usecase"
	"github.com/portnet-lab/caseflow/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/cases", s.handleSubmitCase)
		r.Post("/cases/bulk-reassign", s.handleBulkReassign)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/my", s.handleMyTasks)
			r.Post("/next", s.handleNextTask)
			r.Post("/dispatch", s.handlePushDispatch)
		})

		r.Route("/assignments/{id}", func(r chi.Router) {
			r.Post("/start", s.handleStartAssignment)
			r.Post("/finish", s.handleFinishAssignment)
			r.Post("/cancel", s.handleCancelAssignment)
		})

		r.Get("/agents/workload", s.handleWorkload)
		r.Get("/dispatch/journal", s.handleJournal)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
