package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/quickplay-games/sessiond/internal/apperr"
)

// applyQuery evaluates filter, ordering and limit against decoded documents.
// The backing store is a dumb document store, so predicates run here.
func applyQuery(req Request, docs []Document) ([]Document, error) {
	decoded := make([]map[string]any, len(docs))
	if req.Filter != nil || req.OrderBy != nil {
		for i, doc := range docs {
			var m map[string]any
			if err := json.Unmarshal(doc.Raw, &m); err != nil {
				return nil, apperr.NewDecodeError(doc.Path, err)
			}
			decoded[i] = m
		}
	}

	if req.Filter != nil {
		filtered := docs[:0:0]
		filteredDecoded := decoded[:0:0]
		for i, doc := range docs {
			ok, err := matchFilter(decoded[i], *req.Filter)
			if err != nil {
				return nil, err
			}
			if ok {
				filtered = append(filtered, doc)
				filteredDecoded = append(filteredDecoded, decoded[i])
			}
		}
		docs = filtered
		decoded = filteredDecoded
	}

	if req.OrderBy != nil {
		order := *req.OrderBy
		sort.SliceStable(docs, func(i, j int) bool {
			less := compareValues(decoded[i][order.Field], decoded[j][order.Field]) < 0
			if order.Descending {
				return !less
			}
			return less
		})
	}

	if req.Limit > 0 && len(docs) > req.Limit {
		docs = docs[:req.Limit]
	}

	return docs, nil
}

func matchFilter(doc map[string]any, filter FieldFilter) (bool, error) {
	value, ok := doc[filter.Field]
	if !ok {
		return false, nil
	}

	cmp := compareValues(value, filter.Value)

	switch filter.Op {
	case OpEqual:
		return cmp == 0, nil
	case OpNotEqual:
		return cmp != 0, nil
	case OpLess:
		return cmp < 0, nil
	case OpLessEqual:
		return cmp <= 0, nil
	case OpGreater:
		return cmp > 0, nil
	case OpGreaterEqual:
		return cmp >= 0, nil
	default:
		return false, apperr.NewInvalidRequest(fmt.Sprintf("unsupported filter op %q", filter.Op))
	}
}

// compareValues orders JSON scalar values: numbers numerically, everything
// else by string form. Mixed types compare by string form as well.
func compareValues(a, b any) int {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := fmt.Sprintf("%v", a)
	bs := fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
