package response_test

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/core/params"
	"github.com/dmitrymomot/reqkit/core/response"
)

func TestJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	j, err := response.NewJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", j.Content())

	require.NoError(t, j.SetContent(map[string]any{"a": 1}))
	assert.JSONEq(t, `{"a":1}`, j.Content())

	asMap, err := j.Decode(true)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, asMap)

	ordered, err := j.Decode(false)
	require.NoError(t, err)
	v, ok := ordered.(params.Value)
	require.True(t, ok)
	store, ok := v.AsMap()
	require.True(t, ok)
	assert.Equal(t, "1", store.Get("a", params.Null()).String())
}

func TestJSON_DecodeKeepsOrder(t *testing.T) {
	t.Parallel()

	store := params.FromEntries(
		params.Entry{Key: "zeta", Value: params.Int(1)},
		params.Entry{Key: "alpha", Value: params.String("x")},
	)

	j, err := response.NewJSON(store)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"x"}`, j.Content())

	decoded, err := j.Decode(false)
	require.NoError(t, err)
	m, ok := decoded.(params.Value).AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha"}, m.Names())
}

func TestJSON_SetContentFailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	j, err := response.NewJSON([]int{1, 2})
	require.NoError(t, err)

	err = j.SetContent(math.Inf(1))
	require.ErrorIs(t, err, response.ErrEncode)
	assert.Equal(t, "[1,2]", j.Content())

	_, err = response.NewJSON(make(chan int))
	require.ErrorIs(t, err, response.ErrEncode)
}

func TestJSON_GetSetDelete(t *testing.T) {
	t.Parallel()

	j, err := response.NewJSON(map[string]any{"user": map[string]any{"name": "alice"}})
	require.NoError(t, err)

	assert.Equal(t, "alice", j.Get("user.name").String())
	assert.False(t, j.Get("user.email").Exists())

	require.NoError(t, j.Set("user.email", "alice@example.com"))
	require.NoError(t, j.Set("meta.tags", []string{"a", "b"}))
	assert.Equal(t, "alice@example.com", j.Get("user.email").String())
	assert.Equal(t, int64(2), j.Get("meta.tags.#").Int())

	require.NoError(t, j.Set("meta.flag", params.Bool(true)))
	assert.True(t, j.Get("meta.flag").Bool())

	require.NoError(t, j.Delete("user.email"))
	assert.False(t, j.Get("user.email").Exists())

	require.ErrorIs(t, j.Set("", 1), response.ErrInvalidPath)
}

func TestJSON_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       []response.JSONOption
		wantStatus int
		wantBody   string
	}{
		{
			name:       "default status",
			wantStatus: http.StatusOK,
			wantBody:   `{"ok":true}`,
		},
		{
			name:       "created",
			opts:       []response.JSONOption{response.WithStatus(http.StatusCreated)},
			wantStatus: http.StatusCreated,
			wantBody:   `{"ok":true}`,
		},
		{
			name:       "no content has no body",
			opts:       []response.JSONOption{response.WithStatus(http.StatusNoContent)},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "not modified has no body",
			opts:       []response.JSONOption{response.WithStatus(http.StatusNotModified)},
			wantStatus: http.StatusNotModified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			j, err := response.NewJSON(map[string]bool{"ok": true}, tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, j.Status())
			assert.Equal(t, "application/json", j.ContentType())

			w := httptest.NewRecorder()
			require.NoError(t, j.Response()(w, httptest.NewRequest(http.MethodGet, "/", nil)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestJSONWithStatus(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	err := response.JSONWithStatus([]string{"x"}, http.StatusAccepted)(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, `["x"]`, w.Body.String())

	w = httptest.NewRecorder()
	err = response.JSONWithStatus(make(chan int), http.StatusOK)(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.ErrorIs(t, err, response.ErrEncode)
	assert.Empty(t, w.Body.String())
}
