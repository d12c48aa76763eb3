package models

// Feed is a computed view, not a stored entity: the links matching a
// query in the requested order, plus the total match count. Count is
// computed over the full filtered set, unaffected by pagination.
type Feed struct {
	ID    string `json:"id"`
	Links []Link `json:"links"`
	Count int64  `json:"count"`
}
