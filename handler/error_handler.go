package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/library/pkg/apperror"
	"github.com/dmitrymomot/library/pkg/environment"
	"github.com/dmitrymomot/library/pkg/logger"
	"github.com/dmitrymomot/library/pkg/requestid"
)

// ErrorPageParams contains data for rendering error pages.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
	// Detail is the full error chain, empty in production.
	Detail string
}

// ErrorToastParams contains data for rendering error toasts.
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning", "info"
	RequestID string
}

// ErrorHandlerConfig configures the terminal error reporter.
type ErrorHandlerConfig struct {
	// ErrorPage renders the full error page for regular HTTP requests.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders a toast notification for DataStar requests.
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget is where toasts are rendered (default: "#toast-container").
	ToastTarget string

	// ToastMode is how toasts are merged (default: prepend).
	ToastMode datastar.ElementPatchMode
}

func isClientError(status int) bool {
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}

func toastType(status int) string {
	switch {
	case isClientError(status):
		return "warning"
	case status >= http.StatusInternalServerError:
		return "error"
	default:
		return "info"
	}
}

func logLevel(status int) slog.Level {
	if isClientError(status) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// userMessage is the text shown to the user for a classified failure.
func userMessage(c apperror.Classified) string {
	if c.Kind == apperror.KindValidation && len(c.Messages) > 0 {
		return strings.Join(c.Messages, "; ")
	}
	return c.Message
}

// NewErrorHandler creates the terminal error reporter shared by all modules.
// Regular requests get the error page with the classified status, DataStar
// requests a toast.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = datastar.ElementPatchModePrepend
	}
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		rid := requestid.FromContext(r.Context())
		classified := apperror.Classify(err)
		message := userMessage(classified)

		log.LogAttrs(r.Context(), logLevel(classified.Status), "request error",
			logger.RequestID(rid),
			logger.Error(err),
			logger.Status(classified.Status),
			slog.String("kind", classified.Kind.String()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				log.WarnContext(r.Context(), "no error toast component configured", logger.Component("error_handler"))
				return
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: message, Type: toastType(classified.Status), RequestID: rid})
			if renderErr := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode)).Render(ctx.ResponseWriter(), r); renderErr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(renderErr), logger.Event("render_error_toast"))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(ctx.ResponseWriter(), message, classified.Status)
			return
		}

		params := ErrorPageParams{
			Error:      message,
			StatusCode: classified.Status,
			RequestID:  rid,
			RetryURL:   r.URL.Path,
		}
		if !environment.IsProduction(r.Context()) {
			params.Detail = err.Error()
		}

		page := TemplWithStatus(cfg.ErrorPage(params), classified.Status)
		if renderErr := page.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error page", logger.Error(renderErr), logger.Event("render_error_page"))
			http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
