package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router wires the API route tree. Webhook registrars attach directly
// under /api; store registrars attach under /api/:store_id with the
// store-group middleware applied.
type Router struct {
	engine           *gin.Engine
	storeMiddleware  []gin.HandlerFunc
	storeRegistrars  []storeRegistration
	globalRegistrars []RouteRegistrar
}

type storeRegistration struct {
	registrar  RouteRegistrar
	middleware []gin.HandlerFunc
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine) *Router {
	return &Router{engine: engine}
}

// UseStoreMiddleware adds middleware applied to every store-scoped route
func (r *Router) UseStoreMiddleware(middleware ...gin.HandlerFunc) *Router {
	r.storeMiddleware = append(r.storeMiddleware, middleware...)
	return r
}

// RegisterStore adds a registrar under /api/:store_id. Extra middleware
// applies to that registrar's routes only, after the store middleware.
func (r *Router) RegisterStore(registrar RouteRegistrar, middleware ...gin.HandlerFunc) *Router {
	r.storeRegistrars = append(r.storeRegistrars, storeRegistration{registrar, middleware})
	return r
}

// Register adds a registrar under /api
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.globalRegistrars = append(r.globalRegistrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api")
	for _, registrar := range r.globalRegistrars {
		registrar.RegisterRoutes(api)
	}

	store := api.Group("/:store_id")
	if len(r.storeMiddleware) > 0 {
		store.Use(r.storeMiddleware...)
	}
	for _, reg := range r.storeRegistrars {
		reg.registrar.RegisterRoutes(store.Group("", reg.middleware...))
	}
}
