package weft

import (
	"testing"

	"github.com/valyala/fasthttp"
)

func TestJSONError(t *testing.T) {
	tests := []struct {
		name string
		fn   func(ctx *fasthttp.RequestCtx, msg string)
		code int
	}{
		{"NotFound", NotFoundError, fasthttp.StatusNotFound},
		{"BadRequest", BadRequestError, fasthttp.StatusBadRequest},
		{"UnprocessableEntity", UnprocessableEntityError, fasthttp.StatusUnprocessableEntity},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := new(fasthttp.RequestCtx)
			test.fn(ctx, "something went wrong")

			if ctx.Response.StatusCode() != test.code {
				t.Errorf("status code == %d, want %d", ctx.Response.StatusCode(), test.code)
			}

			if ct := string(ctx.Response.Header.ContentType()); ct != "application/json; charset=utf-8" {
				t.Errorf("content type == %q, want JSON", ct)
			}

			var resp ErrorResponse
			if err := fastjson.Unmarshal(ctx.Response.Body(), &resp); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}

			if resp.Success {
				t.Error("success == true in an error response")
			}
			if resp.Error != "something went wrong" {
				t.Errorf("error message == %q, want %q", resp.Error, "something went wrong")
			}
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("nope")

	if resp.Success {
		t.Error("success == true")
	}
	if resp.Error != "nope" {
		t.Errorf("error == %q, want %q", resp.Error, "nope")
	}
}
