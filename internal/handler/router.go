// internal/handler/router.go
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dangerclosesec/directory/internal/auth"
	"github.com/dangerclosesec/directory/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const maxBodyBytes = 1 << 20

type RouterConfig struct {
	Logger         *slog.Logger
	Guard          auth.Guard
	Directory      *DirectoryHandler
	Token          *TokenHandler // nil unless the guard uses bearer tokens
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires every endpoint and the middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Timeout(timeout))
	r.Use(chimw.RequestSize(maxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.APIKeyHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", rootHandler(cfg.Guard.Scheme()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	if cfg.Token != nil {
		r.With(chimw.AllowContentType("application/json", "application/x-www-form-urlencoded")).
			Post("/token", cfg.Token.IssueToken)
	}

	// Protected routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Guard))

		r.Get("/branches", cfg.Directory.ListBranches)
		r.Get("/skills", cfg.Directory.ListSkills)
		r.Get("/teachers", cfg.Directory.ListTeachers)
		r.Get("/branches/{branchId}/teachers", cfg.Directory.TeachersByBranch)

		r.Group(func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))

			r.Post("/teachers", cfg.Directory.CreateTeacher)
			r.Post("/branches/{branchId}/teachers", cfg.Directory.CreateBranchTeacher)
		})
	})

	return r
}

type rootResponse struct {
	Message   string            `json:"message"`
	Auth      string            `json:"auth"`
	Endpoints map[string]string `json:"endpoints"`
}

// rootHandler describes the available endpoints. It needs no credential.
func rootHandler(scheme auth.Scheme) http.HandlerFunc {
	credential := "requires Bearer token"
	endpoints := map[string]string{}
	if scheme == auth.SchemeAPIKey {
		credential = "requires " + middleware.APIKeyHeader + " header"
	} else {
		endpoints["token"] = "POST /token - Get access token (username and password)"
	}

	endpoints["branches"] = "GET /api/branches - Get all branches (" + credential + ")"
	endpoints["skills"] = "GET /api/skills - Get all skills (" + credential + ")"
	endpoints["teachers"] = "GET /api/teachers - Get all teachers with administrative fields (" + credential + ")"
	endpoints["branch_teachers"] = "GET /api/branches/{branchId}/teachers - Get teachers of a branch (" + credential + ")"
	endpoints["create_teacher"] = "POST /api/teachers - Register a teacher at the listed branches (" + credential + ")"
	endpoints["create_branch_teacher"] = "POST /api/branches/{branchId}/teachers - Register a teacher with a primary branch (" + credential + ")"

	resp := rootResponse{
		Message:   "Branch Directory API",
		Auth:      string(scheme),
		Endpoints: endpoints,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, resp)
	}
}
