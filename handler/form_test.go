package handler_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/library/handler"
)

func TestRebuild(t *testing.T) {
	t.Parallel()

	t.Run("mirrors submission without id", func(t *testing.T) {
		t.Parallel()

		data, err := handler.Rebuild(context.Background(), url.Values{
			"title":  {""},
			"author": {"author"},
		}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, handler.Data{"id": nil, "title": "", "author": "author"}, data)
	})

	t.Run("keeps path id and repeated fields", func(t *testing.T) {
		t.Parallel()

		data, err := handler.Rebuild(context.Background(), url.Values{
			"genre": {"a", "b"},
		}, "12", nil)
		require.NoError(t, err)
		assert.Equal(t, "12", data["id"])
		assert.Equal(t, []string{"a", "b"}, data["genre"])
	})

	t.Run("merges supplement over base", func(t *testing.T) {
		t.Parallel()

		var seenID string
		supplement := handler.FormSupplementFunc(func(_ context.Context, id string, form url.Values) (handler.Data, error) {
			seenID = id
			form.Set("book_id", "mutated")
			return handler.Data{"books": []string{"Dune"}, "book_id": form.Get("book_id")}, nil
		})

		submitted := url.Values{"book_id": {"4"}}
		data, err := handler.Rebuild(context.Background(), submitted, "9", supplement)
		require.NoError(t, err)
		assert.Equal(t, "9", seenID)
		assert.Equal(t, []string{"Dune"}, data["books"])
		assert.Equal(t, "mutated", data["book_id"])
		assert.Equal(t, "4", submitted.Get("book_id"), "supplement works on a copy")
	})

	t.Run("propagates supplement failure", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("db down")
		_, err := handler.Rebuild(context.Background(), url.Values{}, "", handler.FormSupplementFunc(
			func(context.Context, string, url.Values) (handler.Data, error) { return nil, boom },
		))
		assert.ErrorIs(t, err, boom)
	})
}
