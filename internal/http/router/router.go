package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/makeoverbyreet/makeover-contact/internal/http/handlers"
	"github.com/makeoverbyreet/makeover-contact/internal/service"
	"github.com/makeoverbyreet/makeover-contact/pkg/config"
	mw "github.com/makeoverbyreet/makeover-contact/pkg/middleware"
)

// New wires the contact API. The CORS layers sit in front of every route so
// pre-flight requests never reach a handler.
func New(cfg *config.Config, svc service.ContactService) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("contact"))
	r.Use(mw.Logging)
	r.Use(mw.Recover)
	r.Use(mw.OriginGuard(cfg.CORS))
	r.Use(mw.CORS(cfg.CORS))

	r.Get("/", handlers.Health)
	r.Mount("/contact", handlers.NewContactHandler(svc).Routes())

	return r
}
