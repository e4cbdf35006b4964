package glyph

import "strings"

// Find returns the index of the first record whose name equals name,
// ignoring case. It returns -1 if there is none.
func Find(records []Record, name string) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return -1
	}
	for i := range records {
		if strings.EqualFold(records[i].Name, name) {
			return i
		}
	}
	return -1
}

// Search returns the indices of records whose name contains query,
// ignoring case, up to limit results. A limit of zero means no limit.
func Search(records []Record, query string, limit int) []int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var out []int
	for i := range records {
		if strings.Contains(strings.ToLower(records[i].Name), query) {
			out = append(out, i)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
