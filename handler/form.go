package handler

import (
	"context"
	"maps"
	"net/url"
	"slices"
)

// FormSupplement re-derives the context a form needs beyond the submitted
// fields, such as the options of a select or the related records of the
// edited entity. It receives only identifiers: the path id of the edited
// entity and a copy of the submission, whose fields may hold foreign keys.
type FormSupplement interface {
	Supplement(ctx context.Context, id string, form url.Values) (Data, error)
}

// FormSupplementFunc adapts a function to FormSupplement.
type FormSupplementFunc func(ctx context.Context, id string, form url.Values) (Data, error)

func (f FormSupplementFunc) Supplement(ctx context.Context, id string, form url.Values) (Data, error) {
	return f(ctx, id, form)
}

// IDKey is the key of the edited entity's id in rebuilt form data.
const IDKey = "id"

// Rebuild reconstructs the state of a submitted form.
//
// Every submitted field is kept verbatim, single values as string and
// repeated ones as []string. The "id" key holds the path id, or nil when
// empty. The supplement result, if any, is merged on top.
func Rebuild(ctx context.Context, form url.Values, id string, supplement FormSupplement) (Data, error) {
	data := make(Data, len(form)+1)
	for key, values := range form {
		switch len(values) {
		case 0:
			data[key] = ""
		case 1:
			data[key] = values[0]
		default:
			data[key] = slices.Clone(values)
		}
	}

	if id != "" {
		data[IDKey] = id
	} else {
		data[IDKey] = nil
	}

	if supplement == nil {
		return data, nil
	}

	extra, err := supplement.Supplement(ctx, id, cloneValues(form))
	if err != nil {
		return nil, err
	}
	maps.Copy(data, extra)
	return data, nil
}

func cloneValues(form url.Values) url.Values {
	clone := make(url.Values, len(form))
	for key, values := range form {
		clone[key] = slices.Clone(values)
	}
	return clone
}
