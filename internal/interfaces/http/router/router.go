package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	rootRegs   []RouteRegistrar
	apiRegs    []RouteRegistrar
	apiMW      []gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAPIMiddleware attaches middleware to the versioned API group only,
// leaving root routes such as /health open.
func WithAPIMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.apiMW = append(r.apiMW, mw...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterRoot adds a registrar for the unversioned root group
func (r *Router) RegisterRoot(registrar RouteRegistrar) *Router {
	r.rootRegs = append(r.rootRegs, registrar)
	return r
}

// Register adds a registrar for the versioned API group
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.apiRegs = append(r.apiRegs, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	root := r.engine.Group("/")
	for _, registrar := range r.rootRegs {
		registrar.RegisterRoutes(root)
	}

	api := r.engine.Group("/api/"+r.apiVersion, r.apiMW...)
	for _, registrar := range r.apiRegs {
		registrar.RegisterRoutes(api)
	}
}
