package catalog

// ConflictRow is the projection the uniqueness pre-check selects from
// the products or variants table.
type ConflictRow struct {
	Name   string `db:"name"`
	SKU    string `db:"sku"`
	URLKey string `db:"url_key"`
}

// ConflictFrom compares the rows found by the pre-check against the
// requested values and reports which uniqueness fields collided.
// entity is the singular display name ("product" or "variant").
// Returns nil when no row matched.
func ConflictFrom(entity string, rows []ConflictRow, names, skus, urlKeys []string) error {
	if len(rows) == 0 {
		return nil
	}

	var fields []FieldConflict
	if vals := collide(rows, names, func(r ConflictRow) string { return r.Name }); len(vals) > 0 {
		fields = append(fields, FieldConflict{Field: "name", Values: vals})
	}
	if vals := collide(rows, skus, func(r ConflictRow) string { return r.SKU }); len(vals) > 0 {
		fields = append(fields, FieldConflict{Field: "SKU", Values: vals})
	}
	if vals := collide(rows, urlKeys, func(r ConflictRow) string { return r.URLKey }); len(vals) > 0 {
		fields = append(fields, FieldConflict{Field: "URL key", Values: vals})
	}

	return NewFieldConflict(entity, fields)
}

// collide returns the distinct stored values that appear in the
// requested list, preserving row order.
func collide(rows []ConflictRow, requested []string, field func(ConflictRow) string) []string {
	wanted := make(map[string]bool, len(requested))
	for _, v := range requested {
		wanted[v] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		v := field(r)
		if wanted[v] && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
