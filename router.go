package weft

import (
	"fmt"
	"strings"

	gbytes "github.com/savsgio/gotils/bytes"
	gstrconv "github.com/savsgio/gotils/strconv"
	"github.com/valyala/fasthttp"

	"github.com/weft-http/weft/trie"
)

// MethodWild wild HTTP method
const MethodWild = trie.MethodWild

var (
	// MatchedRoutePathParam is the param name under which the path of the matched
	// route is stored, if Router.SaveMatchedRoutePath is set.
	MatchedRoutePathParam = fmt.Sprintf("__matchedRoutePath::%s__", gbytes.Rand(make([]byte, 15)))
)

// Router routes incoming requests through a path trie to the registered
// handlers. The trie is owned by the Router instance, never shared through
// package state, so independent routers can coexist and be swapped.
type Router struct {
	tree *trie.Tree[fasthttp.RequestHandler]

	// journal of registrations, replayed by Mount
	routes []route

	middlewares []Middleware

	registeredPaths map[string][]string
	globalAllowed   string

	// SaveMatchedRoutePath if enabled, adds the matched route path onto the
	// ctx.UserValue context before invoking the handler.
	// The matched route path is only added to handlers of routes that were
	// registered when this option was enabled.
	SaveMatchedRoutePath bool

	// HandleOPTIONS if enabled, automatic replies to OPTIONS requests.
	// Custom OPTIONS handlers take priority over automatic replies.
	HandleOPTIONS bool

	// HandleMethodNotAllowed if enabled, checks if another method is allowed for the
	// current route, if the current request can not be routed.
	// If this is the case, the request is answered with 'Method Not Allowed'
	// and HTTP status code 405.
	// If no other Method is allowed, the request is delegated to the NotFound
	// handler.
	HandleMethodNotAllowed bool

	// GlobalOPTIONS is an optional handler that is called on automatic OPTIONS requests.
	// The handler is only called if HandleOPTIONS is true and no OPTIONS
	// handler for the specific path was set.
	// The "Allow" header is set before calling the handler.
	GlobalOPTIONS fasthttp.RequestHandler

	// NotFound is the handler which is called when no matching route is
	// found. If it is not set, a JSON 404 error response is written.
	NotFound fasthttp.RequestHandler

	// MethodNotAllowed is the handler which is called when a request
	// cannot be routed and HandleMethodNotAllowed is true.
	// If it is not set, a JSON 405 error response is written.
	// The "Allow" header with allowed request methods is set before the handler
	// is called.
	MethodNotAllowed fasthttp.RequestHandler

	// PanicHandler is the function to handle panics recovered from http handlers.
	// It should be used to generate an error page and return the http error code
	// 500 (Internal Server Error).
	// The handler can be used to keep your server from crashing because of
	// unrecovered panics.
	PanicHandler func(*fasthttp.RequestCtx, interface{})
}

type route struct {
	method  string
	path    string
	handler fasthttp.RequestHandler
}

// New returns a new initialized Router.
// A single trailing slash and repeated slashes in request paths are
// normalized during lookup, so '/foo/' is served by the route '/foo'.
func New() *Router {
	return &Router{
		tree:                   trie.New[fasthttp.RequestHandler](),
		registeredPaths:        make(map[string][]string),
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
	}
}

// Group returns a new group with the given path prefix.
// Routes registered on the group land in this router's trie with the prefix
// composed in front of their path.
func (r *Router) Group(path string) *Group {
	validatePath(path)

	return &Group{
		router: r,
		prefix: path,
	}
}

// Mount registers every route of the given sub-router under the prefix,
// composing this router's middlewares on top of the handlers the sub-router
// registered. Overlapping patterns from several mounted sub-routers coexist;
// all of them stay reachable through LookupAll.
//
// Routes registered on the sub-router after the call are not picked up.
func (r *Router) Mount(prefix string, sub *Router) {
	validatePath(prefix)

	for _, rt := range sub.routes {
		path := rt.path
		if prefix != "/" {
			path = prefix + path
		}

		r.Handle(rt.method, path, rt.handler)
	}
}

// AddMiddleware appends middlewares applied to every handler registered
// after the call. The first added middleware is the outermost one.
func (r *Router) AddMiddleware(middlewares ...Middleware) {
	r.middlewares = append(r.middlewares, middlewares...)
}

func (r *Router) saveMatchedRoutePath(path string, handler fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		ctx.SetUserValue(MatchedRoutePathParam, path)
		handler(ctx)
	}
}

// GET is a shortcut for router.Handle(fasthttp.MethodGet, path, handler)
func (r *Router) GET(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodGet, path, handler)
}

// HEAD is a shortcut for router.Handle(fasthttp.MethodHead, path, handler)
func (r *Router) HEAD(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodHead, path, handler)
}

// OPTIONS is a shortcut for router.Handle(fasthttp.MethodOptions, path, handler)
func (r *Router) OPTIONS(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodOptions, path, handler)
}

// POST is a shortcut for router.Handle(fasthttp.MethodPost, path, handler)
func (r *Router) POST(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPost, path, handler)
}

// PUT is a shortcut for router.Handle(fasthttp.MethodPut, path, handler)
func (r *Router) PUT(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPut, path, handler)
}

// PATCH is a shortcut for router.Handle(fasthttp.MethodPatch, path, handler)
func (r *Router) PATCH(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodPatch, path, handler)
}

// DELETE is a shortcut for router.Handle(fasthttp.MethodDelete, path, handler)
func (r *Router) DELETE(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodDelete, path, handler)
}

// CONNECT is a shortcut for router.Handle(fasthttp.MethodConnect, path, handler)
func (r *Router) CONNECT(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodConnect, path, handler)
}

// TRACE is a shortcut for router.Handle(fasthttp.MethodTrace, path, handler)
func (r *Router) TRACE(path string, handler fasthttp.RequestHandler) {
	r.Handle(fasthttp.MethodTrace, path, handler)
}

// ANY is a shortcut for router.Handle(router.MethodWild, path, handler)
//
// WARNING: Use only for routes where the request method is not important
func (r *Router) ANY(path string, handler fasthttp.RequestHandler) {
	r.Handle(MethodWild, path, handler)
}

// Handle registers a new request handler with the given path and method.
//
// For GET, POST, PUT, PATCH and DELETE requests the respective shortcut
// functions can be used.
//
// This function is intended for bulk loading and to allow the usage of less
// frequently used, non-standardized or custom methods (e.g. for internal
// communication with a proxy).
//
// Registering the same method and path again appends another entry; the
// previous one stays reachable through LookupAll. An invalid pattern panics:
// routes are wired during application assembly and a broken pattern must not
// reach serving.
func (r *Router) Handle(method, path string, handler fasthttp.RequestHandler) {
	switch {
	case len(method) == 0:
		panic("method must not be empty")
	case len(path) < 1 || path[0] != '/':
		panic("path must begin with '/' in path '" + path + "'")
	case handler == nil:
		panic("handler must not be nil")
	}

	handler = chain(handler, r.middlewares)

	r.routes = append(r.routes, route{method: method, path: path, handler: handler})

	newMethod := r.registeredPaths[method] == nil
	r.registeredPaths[method] = append(r.registeredPaths[method], path)

	if r.SaveMatchedRoutePath {
		handler = r.saveMatchedRoutePath(path, handler)
	}

	if newMethod {
		r.globalAllowed = r.allowed("*", "")
	}

	if err := r.tree.Insert(method, path, handler); err != nil {
		panic(err)
	}
}

// ServeFiles serves files from the given file system root.
// The path must end with "/{filepath:*}", files are then served from the local
// path /defined/root/dir/{filepath:*}.
// For example if root is "/etc" and {filepath:*} is "passwd", the local file
// "/etc/passwd" would be served.
// Internally a fasthttp.FSHandler is used, therefore http.NotFound is used instead
// Use:
//
//	router.ServeFiles("/src/{filepath:*}", "./")
func (r *Router) ServeFiles(path string, rootPath string) {
	suffix := "/{filepath:*}"

	if !strings.HasSuffix(path, suffix) {
		panic("path must end with " + suffix + " in path '" + path + "'")
	}

	prefix := path[:len(path)-len(suffix)]
	fileHandler := fasthttp.FSHandler(rootPath, strings.Count(prefix, "/"))

	r.GET(path, fileHandler)
}

// ServeFilesCustom serves files from the given file system settings.
// The path must end with "/{filepath:*}", files are then served from the local
// path /defined/root/dir/{filepath:*}.
// For example if root is "/etc" and {filepath:*} is "passwd", the local file
// "/etc/passwd" would be served.
// Internally a fasthttp.FSHandler is used, therefore http.NotFound is used instead
// of the Router's NotFound handler.
// Use:
//
//	router.ServeFilesCustom("/src/{filepath:*}", *customFS)
func (r *Router) ServeFilesCustom(path string, fs *fasthttp.FS) {
	suffix := "/{filepath:*}"

	if !strings.HasSuffix(path, suffix) {
		panic("path must end with " + suffix + " in path '" + path + "'")
	}

	prefix := path[:len(path)-len(suffix)]
	stripSlashes := strings.Count(prefix, "/")

	if fs.PathRewrite == nil && stripSlashes > 0 {
		fs.PathRewrite = fasthttp.NewPathSlashesStripper(stripSlashes)
	}
	fileHandler := fs.NewRequestHandler()

	r.GET(path, fileHandler)
}

func (r *Router) recv(ctx *fasthttp.RequestCtx) {
	if rcv := recover(); rcv != nil {
		r.PanicHandler(ctx, rcv)
	}
}

// Lookup allows the manual lookup of a method + path combo.
// This is e.g. useful to build a framework around this router.
// If the path was found, it returns the first handler in traversal order and
// saves the path parameter values into ctx. Otherwise the second return value
// is false.
func (r *Router) Lookup(method, path string, ctx *fasthttp.RequestCtx) (fasthttp.RequestHandler, bool) {
	match, ok := r.tree.Find(method, path)
	if !ok {
		return nil, false
	}

	if ctx != nil {
		for name, value := range match.Params {
			ctx.SetUserValue(name, value)
		}
	}

	return match.Payload, true
}

// LookupAll returns every handler whose pattern matches the method and path,
// each paired with its own extracted parameters, in the trie traversal order
// (catch-all, then parametric, then literal, then exact terminal). Several
// mounted sub-routers may register overlapping patterns; this is the way to
// reach all of them for handler composition.
func (r *Router) LookupAll(method, path string) []trie.Match[fasthttp.RequestHandler] {
	return r.tree.FindAll(method, path)
}

func (r *Router) allowed(path, reqMethod string) (allow string) {
	allowed := make([]string, 0, 9)

	if path == "*" || path == "/*" { // server-wide
		// empty method is used for internal calls to refresh the cache
		if reqMethod == "" {
			for method := range r.registeredPaths {
				if method == fasthttp.MethodOptions || method == MethodWild {
					continue
				}
				// Add request method to list of allowed methods
				allowed = append(allowed, method)
			}
		} else {
			return r.globalAllowed
		}
	} else { // specific path
		for method := range r.registeredPaths {
			// Skip the requested method - we already tried this one
			if method == reqMethod || method == fasthttp.MethodOptions || method == MethodWild {
				continue
			}

			if _, ok := r.tree.Find(method, path); ok {
				allowed = append(allowed, method)
			}
		}
	}

	if len(allowed) > 0 {
		// Add request method to list of allowed methods
		allowed = append(allowed, fasthttp.MethodOptions)

		// Sort allowed methods.
		// sort.Strings(allowed) unfortunately causes unnecessary allocations
		// due to allowed being moved to the heap and interface conversion
		for i, l := 1, len(allowed); i < l; i++ {
			for j := i; j > 0 && allowed[j] < allowed[j-1]; j-- {
				allowed[j], allowed[j-1] = allowed[j-1], allowed[j]
			}
		}

		// return as comma separated list
		return strings.Join(allowed, ", ")
	}
	return
}

// Handler makes the router implement the fasthttp.RequestHandler interface.
func (r *Router) Handler(ctx *fasthttp.RequestCtx) {
	if r.PanicHandler != nil {
		defer r.recv(ctx)
	}

	path := gstrconv.B2S(ctx.Path())
	method := gstrconv.B2S(ctx.Method())

	if match, ok := r.tree.Find(method, path); ok {
		for name, value := range match.Params {
			ctx.SetUserValue(name, value)
		}

		match.Payload(ctx)
		return
	}

	if r.HandleOPTIONS && method == fasthttp.MethodOptions {
		// Handle OPTIONS requests
		if allow := r.allowed(path, fasthttp.MethodOptions); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			if r.GlobalOPTIONS != nil {
				r.GlobalOPTIONS(ctx)
			}
			return
		}
	} else if r.HandleMethodNotAllowed { // Handle 405
		if allow := r.allowed(path, method); allow != "" {
			ctx.Response.Header.Set("Allow", allow)
			if r.MethodNotAllowed != nil {
				r.MethodNotAllowed(ctx)
			} else {
				JSONError(ctx, fasthttp.StatusMethodNotAllowed,
					fasthttp.StatusMessage(fasthttp.StatusMethodNotAllowed))
			}
			return
		}
	}

	// Handle 404
	if r.NotFound != nil {
		r.NotFound(ctx)
	} else {
		JSONError(ctx, fasthttp.StatusNotFound,
			fasthttp.StatusMessage(fasthttp.StatusNotFound))
	}
}

// List returns all registered routes grouped by method
func (r *Router) List() map[string][]string {
	return r.registeredPaths
}
