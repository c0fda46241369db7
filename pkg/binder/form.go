package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory bounds in-memory multipart parsing (10MB).
const DefaultMaxMemory = 10 << 20

// Form binds url-encoded and multipart form values to fields tagged `form:"name"`.
// Requests without a body content type are not applicable.
// Values are read from r.PostForm so that the raw submission stays available
// to later pipeline stages.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return ErrBinderNotApplicable
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
		default:
			return ErrBinderNotApplicable
		}

		return bindToStruct(v, "form", r.PostForm, ErrFailedToParseForm)
	}
}

// Query binds URL query values to fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}

// Path binds route parameters to fields tagged `path:"name"` using the
// given extractor, e.g. chi.URLParam. A nil extractor uses r.PathValue.
func Path(param func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	if param == nil {
		param = func(r *http.Request, name string) string { return r.PathValue(name) }
	}
	return func(r *http.Request, v any) error {
		return bindWith(v, "path", func(name string) []string {
			if value := param(r, name); value != "" {
				return []string{value}
			}
			return nil
		}, ErrFailedToParsePath)
	}
}
