package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/facturafacil/facturafacil/pkg/utils"
)

// Spanish-keyed output still shows up when the model echoes the source
// document's vocabulary instead of the requested schema.
var keySynonyms = map[string]string{
	"codigo":           "code",
	"código":           "code",
	"sku":              "code",
	"descripcion":      "description",
	"descripción":      "description",
	"cantidad":         "quantity",
	"qty":              "quantity",
	"preciocatalogo":   "catalogPrice",
	"precio_catalogo":  "catalogPrice",
	"preciovendedora":  "vendorPrice",
	"precio_vendedora": "vendorPrice",
	"precio":           "vendorPrice",
}

var numericKeys = []string{"quantity", "catalogPrice", "vendorPrice"}

// SanitizeItemsJSON normalizes a structurally loose model payload so the
// strict schema can accept it: wraps bare arrays, renames key synonyms,
// coerces locale-formatted numeric strings, trims strings, drops empty
// optional codes, removes unknown keys, and discards rows that cannot be
// repaired (no description, quantity < 1, vendor price missing or
// negative). Returns the cleaned document and a note per dropped thing.
func SanitizeItemsJSON(raw []byte) ([]byte, []string, error) {
	var top any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}

	var rows []any
	switch v := top.(type) {
	case []any:
		rows = v
	case map[string]any:
		arr, ok := v["items"].([]any)
		if !ok {
			return nil, nil, fmt.Errorf("payload has no items array")
		}
		rows = arr
	default:
		return nil, nil, fmt.Errorf("unexpected payload type %T", top)
	}

	var dropped []string
	items := make([]any, 0, len(rows))

	for i, r := range rows {
		m, ok := r.(map[string]any)
		if !ok {
			dropped = append(dropped, fmt.Sprintf("items[%d](not an object)", i))
			continue
		}

		row := sanitizeRow(m)

		desc, _ := row["description"].(string)
		if strings.TrimSpace(desc) == "" {
			dropped = append(dropped, fmt.Sprintf("items[%d](no description)", i))
			continue
		}
		qty, ok := row["quantity"].(float64)
		if !ok || qty < 1 {
			dropped = append(dropped, fmt.Sprintf("items[%d](quantity)", i))
			continue
		}
		vendor, ok := row["vendorPrice"].(float64)
		if !ok || vendor < 0 {
			dropped = append(dropped, fmt.Sprintf("items[%d](vendorPrice)", i))
			continue
		}

		items = append(items, row)
	}

	out, err := json.Marshal(map[string]any{"items": items})
	if err != nil {
		return nil, dropped, fmt.Errorf("encode: %w", err)
	}
	return out, dropped, nil
}

func sanitizeRow(m map[string]any) map[string]any {
	row := make(map[string]any, len(m))

	for k, v := range m {
		key := k
		if canonical, ok := keySynonyms[strings.ToLower(strings.TrimSpace(k))]; ok {
			key = canonical
		}
		switch key {
		case "code", "description", "quantity", "catalogPrice", "vendorPrice":
			if _, exists := row[key]; !exists {
				row[key] = v
			}
		}
	}

	for _, k := range numericKeys {
		v, ok := row[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			// already numeric
		case string:
			if f, ok := utils.ParseFlexibleNumber(t); ok {
				row[k] = f
			} else {
				delete(row, k)
			}
		default:
			delete(row, k)
		}
	}

	if s, ok := row["description"].(string); ok {
		row["description"] = strings.TrimSpace(s)
	}
	if s, ok := row["code"].(string); ok {
		code := strings.TrimSpace(s)
		if code == "" {
			delete(row, "code")
		} else {
			row["code"] = code
		}
	} else if _, ok := row["code"]; ok {
		delete(row, "code")
	}

	// Catalog price is optional but must be a non-negative number when kept.
	if f, ok := row["catalogPrice"].(float64); ok && f < 0 {
		delete(row, "catalogPrice")
	}

	return row
}
