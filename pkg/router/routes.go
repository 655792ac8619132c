package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers collects the per-feature HTTP handlers mounted on the flat route
// table
type Handlers struct {
	Signin       http.HandlerFunc
	Register     http.HandlerFunc
	GetProfile   http.HandlerFunc
	UpdateImage  http.HandlerFunc
	DetectFaces  http.HandlerFunc
	Enable2FA    http.HandlerFunc
	VerifySetup  http.HandlerFunc
	VerifySignin http.HandlerFunc
}

// SetupRoutes builds the chi router for the full HTTP surface
func SetupRoutes(h Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", healthCheck)

	r.Post("/signin", h.Signin)
	r.Post("/register", h.Register)
	r.Get("/profile/{id}", h.GetProfile)
	r.Put("/image", h.UpdateImage)
	r.Post("/clarifaiAPI", h.DetectFaces)

	r.Post("/enable-2fa", h.Enable2FA)
	r.Post("/verify-2fa-setup", h.VerifySetup)
	r.Post("/verify-2fa", h.VerifySignin)

	return r
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, r, http.StatusOK, healthResponse{
		Status:  "success",
		Message: "Backend is working!",
	})
}
