package weft

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var fastjson = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse represents a structured JSON error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorResponse returns an ErrorResponse with the given message.
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

// JSONError writes a structured JSON error response with the given status code.
func JSONError(ctx *fasthttp.RequestCtx, statusCode int, msg string) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("application/json; charset=utf-8")

	body, err := fastjson.Marshal(NewErrorResponse(msg))
	if err != nil {
		ctx.SetBodyString(`{"success":false,"error":"` + msg + `"}`)
		return
	}

	ctx.SetBody(body)
}

// NotFoundError sends a 404 Not Found JSON error response.
func NotFoundError(ctx *fasthttp.RequestCtx, msg string) {
	JSONError(ctx, fasthttp.StatusNotFound, msg)
}

// BadRequestError sends a 400 Bad Request JSON error response.
func BadRequestError(ctx *fasthttp.RequestCtx, msg string) {
	JSONError(ctx, fasthttp.StatusBadRequest, msg)
}

// UnprocessableEntityError sends a 422 Unprocessable Entity JSON error response.
func UnprocessableEntityError(ctx *fasthttp.RequestCtx, msg string) {
	JSONError(ctx, fasthttp.StatusUnprocessableEntity, msg)
}
