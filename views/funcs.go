package views

import (
	"fmt"
	"html/template"
	"reflect"
	"strconv"
	"time"

	"github.com/dmitrymomot/library/pkg/pagination"
	"github.com/dmitrymomot/library/pkg/validator"
)

var funcs = template.FuncMap{
	"field": field,
	"has":   has,
	"id":    func(id int64) string { return strconv.FormatInt(id, 10) },
	"date":  date,
	"pages": pages,
	"pageURL": func(root string, page, limit int) string {
		return pagination.PageURL(root, page, limit)
	},
	"add": func(a, b int) int { return a + b },
}

// field returns data[key] as text; missing keys and nil values render empty.
// data is any string keyed map.
func field(data any, key string) string {
	v := lookup(data, key)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// has reports whether data holds a non-nil value under key.
func has(data any, key string) bool {
	return lookup(data, key) != nil
}

func lookup(data any, key string) any {
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}
	v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil
	}
	if (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) && v.IsNil() {
		return nil
	}
	return v.Interface()
}

// date formats a time or *time.Time as a calendar date.
func date(t any) string {
	switch v := t.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(validator.DateLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return date(*v)
	}
	return ""
}

// pages lists page numbers 1..total.
func pages(total int) []int {
	out := make([]int, 0, total)
	for i := 1; i <= total; i++ {
		out = append(out, i)
	}
	return out
}
