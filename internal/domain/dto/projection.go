package dto

import "encoding/json"

// Project reduces doc to the requested projection fields plus _id, the
// shape a MongoDB projection returns. Projected reads leave the
// unselected struct fields at their zero values; re-encoding through a
// map drops those from the response instead of emitting zeros.
func Project(doc any, fields []string) any {
	if doc == nil || len(fields) == 0 {
		return doc
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return doc
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return doc
	}
	keep := map[string]bool{"_id": true}
	for _, f := range fields {
		keep[f] = true
	}
	for k := range m {
		if !keep[k] {
			delete(m, k)
		}
	}
	return m
}

// ProjectList applies Project to every item of a page, keeping the
// pagination window intact.
func ProjectList[T any](result *ListResult[T], fields []string) any {
	if result == nil || len(fields) == 0 {
		return result
	}
	items := make([]any, len(result.Items))
	for i := range result.Items {
		items[i] = Project(result.Items[i], fields)
	}
	return &ListResult[any]{Items: items, Pagination: result.Pagination}
}
