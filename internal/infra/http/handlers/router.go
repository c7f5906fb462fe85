package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appmw "github.com/xavierca1/capacita-crm/internal/infra/http/middleware"
)

type Router struct {
	Leads     *LeadHandler
	Deals     *DealHandler
	Contacts  *ContactHandler
	Catalog   *CatalogHandler
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Health    *HealthHandler

	Sessions       appmw.SessionParser
	AllowedOrigins []string
	// AdminStaticDir holds the built admin SPA; empty disables /admin.
	AdminStaticDir string
	// TrustProxy rewrites RemoteAddr from X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if rt.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmw.Sentry)
	r.Use(appmw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if rt.Health != nil {
		r.Get("/health", rt.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/courses", rt.Catalog.PublicCourses)
		r.Get("/courses/{slug}", rt.Catalog.PublicCourse)
		r.Get("/categories", rt.Catalog.PublicCategories)
		r.Get("/modalities", rt.Catalog.PublicModalities)
		r.Get("/companies", rt.Catalog.PublicCompanies)
		r.Get("/testimonials", rt.Catalog.PublicTestimonials)
		r.Post("/leads", rt.Leads.CaptureLead)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", rt.Auth.Login)
			r.Post("/logout", rt.Auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(appmw.RequireAdmin(rt.Sessions))
				rt.adminRoutes(r)
			})
		})
	})

	if rt.AdminStaticDir != "" {
		admin := rt.serveAdmin(appmw.RequireAdmin(rt.Sessions)(http.HandlerFunc(rt.serveAdminIndex)))
		r.Get(appmw.LoginPath, rt.serveAdminIndex)
		r.Get("/admin", admin)
		r.Get("/admin/*", admin)
	}

	return r
}

func (rt *Router) adminRoutes(r chi.Router) {
	r.Get("/me", rt.Auth.Me)
	r.Get("/stages", rt.Dashboard.Stages)
	r.Get("/dashboard", rt.Dashboard.Dashboard)

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", rt.Leads.List)
		r.Get("/{id}", rt.Leads.Get)
		r.Put("/{id}", rt.Leads.Update)
		r.Delete("/{id}", rt.Leads.Delete)
		r.Get("/{id}/activities", rt.Leads.ListActivities)
		r.Post("/{id}/activities", rt.Leads.AddActivity)
		r.Post("/{id}/convert", rt.Leads.Convert)
	})

	r.Route("/deals", func(r chi.Router) {
		r.Get("/", rt.Deals.List)
		r.Post("/", rt.Deals.Create)
		r.Get("/{id}", rt.Deals.Get)
		r.Put("/{id}", rt.Deals.Update)
		r.Delete("/{id}", rt.Deals.Delete)
		r.Get("/{id}/activities", rt.Deals.ListActivities)
		r.Post("/{id}/activities", rt.Deals.AddActivity)
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", rt.Contacts.List)
		r.Post("/", rt.Contacts.Create)
		r.Get("/{id}", rt.Contacts.Get)
		r.Put("/{id}", rt.Contacts.Update)
		r.Delete("/{id}", rt.Contacts.Delete)
	})

	r.Route("/courses", func(r chi.Router) {
		r.Get("/", rt.Catalog.ListCourses)
		r.Post("/", rt.Catalog.CreateCourse)
		r.Get("/{id}", rt.Catalog.GetCourse)
		r.Put("/{id}", rt.Catalog.UpdateCourse)
		r.Delete("/{id}", rt.Catalog.DeleteCourse)
	})

	for _, kind := range []string{"categories", "modalities"} {
		r.Route("/"+kind, func(r chi.Router) {
			r.Get("/", rt.Catalog.ListTaxonomies(kind))
			r.Post("/", rt.Catalog.CreateTaxonomy(kind))
			r.Put("/{id}", rt.Catalog.UpdateTaxonomy(kind))
			r.Delete("/{id}", rt.Catalog.DeleteTaxonomy(kind))
		})
	}

	r.Route("/companies", func(r chi.Router) {
		r.Get("/", rt.Catalog.ListCompanies)
		r.Post("/", rt.Catalog.CreateCompany)
		r.Get("/{id}", rt.Catalog.GetCompany)
		r.Put("/{id}", rt.Catalog.UpdateCompany)
		r.Delete("/{id}", rt.Catalog.DeleteCompany)
	})

	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/", rt.Catalog.ListTestimonials)
		r.Post("/", rt.Catalog.CreateTestimonial)
		r.Get("/{id}", rt.Catalog.GetTestimonial)
		r.Put("/{id}", rt.Catalog.UpdateTestimonial)
		r.Delete("/{id}", rt.Catalog.DeleteTestimonial)
	})
}

// serveAdmin serves built assets to anyone so the login screen can load;
// client routes fall through to index, which only admins reach.
func (rt *Router) serveAdmin(index http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(r.URL.Path, "/admin")
		path := filepath.Join(rt.AdminStaticDir, filepath.FromSlash(filepath.Clean("/"+rel)))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		index.ServeHTTP(w, r)
	}
}

func (rt *Router) serveAdminIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(rt.AdminStaticDir, "index.html"))
}
