package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tourvault/pkg/errors"
	"github.com/agentstation/tourvault/pkg/pagination"
	"github.com/agentstation/tourvault/pkg/query"
	"github.com/agentstation/tourvault/pkg/videos"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestPagerFooter(t *testing.T) {
	tests := []struct {
		name    string
		window  pagination.Window
		current int
		want    string
	}{
		{"single page", pagination.Window{Pages: []int{1}}, 1, "[1]"},
		{"with next", pagination.Window{Pages: []int{1, 2, 3}, HasNext: true}, 1, "[1] 2 3 ...... Next"},
		{"beyond window", pagination.Window{Pages: []int{1, 2, 3}, HasNext: true}, 5, "1 2 3 ...... Next"},
		{"empty", pagination.Window{Pages: []int{}}, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PagerFooter(tt.window, tt.current))
		})
	}
}

func TestVideosToTableData(t *testing.T) {
	list := []videos.Video{{
		ID:          "a",
		Title:       "Title",
		Description: "line one\nline two " + strings.Repeat("x", 80),
		URL:         "https://youtu.be/a",
	}}

	narrow := VideosToTableData(list, false)
	assert.Equal(t, []string{"ID", "Title", "Description"}, narrow.Headers)
	require.Len(t, narrow.Rows, 1)
	assert.Len(t, []rune(narrow.Rows[0][2]), maxDescription)
	assert.True(t, strings.HasPrefix(narrow.Rows[0][2], "line one line two"))

	wide := VideosToTableData(list, true)
	assert.Len(t, wide.Headers, 5)
	assert.Equal(t, videos.FallbackThumbnail, wide.Rows[0][4])
}

func TestFormatPage(t *testing.T) {
	page := query.Page{
		Items:  []videos.Video{{ID: "a", Title: "Cats"}},
		Number: 1,
		Count:  4,
		Total:  13,
		Window: pagination.Window{Pages: []int{1, 2, 3}, HasNext: true},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatPage(&buf, page, FormatTable))
		assert.Contains(t, buf.String(), "Cats")
		assert.Contains(t, buf.String(), "[1] 2 3 ...... Next")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatPage(&buf, page, FormatJSON))

		var decoded query.Page
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 13, decoded.Total)
		assert.Equal(t, "a", decoded.Items[0].ID)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatPage(&buf, page, FormatYAML))
		assert.Contains(t, buf.String(), "title: Cats")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, FormatPage(&buf, query.Page{Number: 1}, FormatTable))
		assert.Equal(t, "No videos found.\n", buf.String())
	})
}

type pair struct{ key, value string }

func (p pair) TableData(wide bool) Data {
	data := Data{Headers: []string{"Key", "Value"}, Rows: [][]string{{p.key, p.value}}}
	if wide {
		data.Rows = append(data.Rows, []string{"wide", "yes"})
	}
	return data
}

func TestTableFormatter(t *testing.T) {
	t.Run("tabular value", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatTable).Format(&buf, pair{"color", "blue"}))
		assert.Contains(t, buf.String(), "color")
		assert.Contains(t, buf.String(), "blue")
		assert.NotContains(t, buf.String(), "yes")
	})

	t.Run("wide passes through", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewFormatter(FormatWide).Format(&buf, pair{"color", "blue"}))
		assert.Contains(t, buf.String(), "yes")
	})

	t.Run("unsupported data", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewFormatter(FormatTable).Format(&buf, map[string]int{"a": 1})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
		assert.Empty(t, buf.String())
	})
}
