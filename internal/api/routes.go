package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskdesk-api/internal/api/middleware"
)

// Routes holds the handlers and guards mounted by Mount.
type Routes struct {
	Users      *UserHandler
	Priorities *PriorityHandler
	Categories *CategoryHandler
	Tasks      *TaskHandler
	Auth       *AuthHandler

	Authenticator *middleware.AuthMiddleware
	Access        *middleware.AccessMiddleware
	// AuthLimiter throttles register, login and refresh. Optional.
	AuthLimiter *middleware.RateLimiter

	// AdminPriority is required to delete tasks and categories.
	AdminPriority string
}

// Mount registers every resource route on r.
//
// Users and priorities are public. Category and task reads are public and
// writes require a bearer token; their deletes also require AdminPriority.
func (rt *Routes) Mount(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", rt.Users.List)
		r.Post("/", rt.Users.Create)
		r.Put("/{username}", rt.Users.Update)
		r.Delete("/{username}", rt.Users.Delete)
	})

	r.Route("/priorities", func(r chi.Router) {
		r.Get("/", rt.Priorities.List)
		r.Post("/", rt.Priorities.Create)
		r.Get("/{id}", rt.Priorities.Get)
		r.Put("/{id}", rt.Priorities.Update)
		r.Delete("/{id}", rt.Priorities.Delete)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", rt.Categories.List)
		r.Get("/{id}", rt.Categories.Get)
		r.Group(func(r chi.Router) {
			r.Use(rt.Authenticator.Authenticate)
			r.Post("/", rt.Categories.Create)
			r.Put("/{id}", rt.Categories.Update)
			r.With(rt.Access.Require(rt.AdminPriority)).Delete("/{id}", rt.Categories.Delete)
		})
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", rt.Tasks.List)
		r.Get("/{id}", rt.Tasks.Get)
		r.Group(func(r chi.Router) {
			r.Use(rt.Authenticator.Authenticate)
			r.Post("/", rt.Tasks.Create)
			r.Put("/{id}", rt.Tasks.Update)
			r.With(rt.Access.Require(rt.AdminPriority)).Delete("/{id}", rt.Tasks.Delete)
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if rt.AuthLimiter != nil {
				r.Use(rt.AuthLimiter.Handler)
			}
			r.Post("/register", rt.Auth.Register)
			r.Post("/login", rt.Auth.Login)
			r.Post("/refresh", rt.Auth.Refresh)
		})
		r.Get("/me", rt.Auth.Me)
		r.With(rt.Authenticator.Authenticate).Post("/logout", rt.Auth.Logout)
	})
}
