package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/tourvault/pkg/pagination"
	"github.com/agentstation/tourvault/pkg/query"
	"github.com/agentstation/tourvault/pkg/videos"
)

// maxDescription is the description width in non-wide tables.
const maxDescription = 60

// VideosToTableData converts records to table rows. Wide tables add the
// source and thumbnail URLs and keep descriptions untruncated.
func VideosToTableData(list []videos.Video, wide bool) Data {
	headers := []string{"ID", "Title", "Description"}
	if wide {
		headers = append(headers, "URL", "Thumbnail")
	}

	rows := make([][]string, 0, len(list))
	for _, v := range list {
		description := oneLine(v.Description)
		if !wide {
			description = truncate(description, maxDescription)
		}
		row := []string{v.ID, oneLine(v.Title), orDash(description)}
		if wide {
			row = append(row, orDash(v.URL), orDash(v.ThumbnailURL()))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// FormatPage writes page in the given format. Tables are followed by the
// pager footer; json and yaml encode the whole page.
func FormatPage(w io.Writer, page query.Page, format Format) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, page)
	}

	if page.Total == 0 {
		_, err := fmt.Fprintln(w, "No videos found.")
		return err
	}

	data := VideosToTableData(page.Items, format == FormatWide)
	if err := NewFormatter(format).Format(w, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", PagerFooter(page.Window, page.Number))
	return err
}

// PagerFooter renders the page window, marking current, e.g. "[1] 2 3 ...... Next".
func PagerFooter(window pagination.Window, current int) string {
	parts := make([]string, 0, len(window.Pages)+1)
	for _, p := range window.Pages {
		label := strconv.Itoa(p)
		if p == current {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	if window.HasNext {
		parts = append(parts, "...... Next")
	}
	return strings.Join(parts, " ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
