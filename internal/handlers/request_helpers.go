package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RequestTimeout bounds every store call made while serving a request.
var RequestTimeout = 5 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// paramError ties a parse failure to the query parameter that caused it.
type paramError struct {
	field string
	err   error
}

func (e *paramError) Error() string { return e.field + ": " + e.err.Error() }

func (e *paramError) Unwrap() error { return e.err }

// Validation errors report fields by their JSON or query name.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		zap.L().Error("panic recovered", zap.String("route", route), zap.Any("panic", r))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), RequestTimeout)
}

func ensureStoreAvailable(ctx context.Context, store pinger) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return store.Ping(checkCtx)
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	zap.L().Warn("returning error",
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("error", message),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondWithFailure logs the underlying cause and returns a 500 carrying only
// the public message.
func respondWithFailure(c *gin.Context, route string, message string, err error) {
	zap.L().Error(message, zap.String("route", route), zap.Error(err))
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": message})
}

func respondWithDetails(c *gin.Context, route string, message string, err error) {
	details := validationDetails(err)
	zap.L().Warn("returning error",
		zap.String("route", route),
		zap.Int("status", http.StatusBadRequest),
		zap.String("error", message),
		zap.Any("details", details),
	)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message, "details": details})
}

// validationDetails flattens binding errors into {field, message} pairs.
func validationDetails(err error) []fieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return out
	}

	var perr *paramError
	if errors.As(err, &perr) {
		return []fieldError{{Field: perr.field, Message: perr.err.Error()}}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []fieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
		}}
	}

	return []fieldError{{Field: "", Message: err.Error()}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}
