package ux

import "strings"

// FilterRows keeps rows where any cell contains the query,
// case-insensitively. An empty query keeps everything. Single pass, matching
// the client-side filtering the web front end did.
func FilterRows(rows [][]string, query string) [][]string {
	if query == "" {
		return rows
	}
	q := strings.ToLower(query)

	var out [][]string
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), q) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// Paginate returns the 1-based page of the given size. A zero or negative
// pageSize disables paging; an out-of-range page yields an empty slice.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
