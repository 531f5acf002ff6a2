package weft

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
)

// Validator wraps go-playground/validator for struct validation.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Tag     string      `json:"tag"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface
func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v.Errors))
	for _, err := range v.Errors {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()

	// Use JSON field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{
		validate: v,
	}
}

// ValidateStruct validates a struct and returns formatted errors
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors := ValidationErrors{
		Errors: make([]ValidationError, 0),
	}

	if validatorErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validatorErrors {
			validationErrors.Errors = append(validationErrors.Errors, ValidationError{
				Field:   fieldError.Field(),
				Tag:     fieldError.Tag(),
				Value:   fieldError.Value(),
				Message: formatErrorMessage(fieldError),
			})
		}
	}

	return validationErrors
}

// ValidateVar validates a single variable against the tag
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// RegisterValidation registers a custom validation function
func (v *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return v.validate.RegisterValidation(tag, fn)
}

// BindJSON decodes the JSON request body into out and validates it.
// A decode failure or a failed validation is returned as an error; the
// caller decides how to map it onto the response.
func (v *Validator) BindJSON(ctx *fasthttp.RequestCtx, out interface{}) error {
	if err := fastjson.Unmarshal(ctx.PostBody(), out); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	return v.ValidateStruct(out)
}

// formatErrorMessage formats a validation error message
func formatErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", field)
	case "numeric":
		return fmt.Sprintf("%s must be a number", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	default:
		return fmt.Sprintf("%s failed validation on tag %s", field, tag)
	}
}

// Validation returns a middleware that decodes and validates the request
// body into a fresh value produced by newBody before the handler runs.
// The decoded value is stored under BodyParam. Decode failures answer with
// 400, validation failures with 422 and the error details as JSON.
func Validation(v *Validator, newBody func() interface{}) Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			body := newBody()

			if err := v.BindJSON(ctx, body); err != nil {
				if verr, ok := err.(ValidationErrors); ok {
					ctx.SetStatusCode(fasthttp.StatusUnprocessableEntity)
					ctx.SetContentType("application/json; charset=utf-8")

					resp, merr := fastjson.Marshal(map[string]interface{}{
						"success": false,
						"error":   "Validation failed",
						"details": verr.Errors,
					})
					if merr == nil {
						ctx.SetBody(resp)
						return
					}
				}

				BadRequestError(ctx, err.Error())
				return
			}

			ctx.SetUserValue(BodyParam, body)
			next(ctx)
		}
	}
}

// BodyParam is the user value key under which Validation stores the decoded
// request body.
const BodyParam = "__body__"
