package weft

import (
	"log"
	"runtime/debug"

	"github.com/valyala/fasthttp"
)

// Middleware wraps a request handler with additional behavior.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// chain applies the middlewares to the handler in reverse order, so the
// first one in the slice is the outermost and runs first.
func chain(handler fasthttp.RequestHandler, middlewares []Middleware) fasthttp.RequestHandler {
	if len(middlewares) == 0 {
		return handler
	}

	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}

// Recovery returns a middleware that recovers panics raised by the wrapped
// handler, logs the panic with its stack and answers with a JSON 500 error
// response. Unlike Router.PanicHandler it can be scoped to a group.
func Recovery() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if rcv := recover(); rcv != nil {
					log.Printf("panic recovered: %v\n%s", rcv, debug.Stack())
					JSONError(ctx, fasthttp.StatusInternalServerError,
						fasthttp.StatusMessage(fasthttp.StatusInternalServerError))
				}
			}()

			next(ctx)
		}
	}
}
