package sqlstore

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/library/pkg/search"
)

// timeLayout is the text form of timestamps in SQLite. It is fixed width so
// that lexical comparison orders timestamps chronologically.
const timeLayout = "2006-01-02T15:04:05Z"

// timeArg converts t to the bind value of the dialect.
func timeArg(d search.Dialect, t time.Time) any {
	if d == search.SQLite {
		return t.UTC().Format(timeLayout)
	}
	return t.UTC()
}

func nullTimeArg(d search.Dialect, t *time.Time) any {
	if t == nil {
		return nil
	}
	return timeArg(d, *t)
}

// timestamp scans both native timestamps and their SQLite text form.
type timestamp struct {
	Time  time.Time
	Valid bool
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	}
	return fmt.Errorf("sqlstore: cannot scan %T into timestamp", src)
}

func (t *timestamp) parse(s string) error {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time, t.Valid = v.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("sqlstore: invalid timestamp %q", s)
}

func (t timestamp) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
