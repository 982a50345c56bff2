package extract

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// itemsSchemaJSON constrains the model output: a single-key object whose
// "items" array holds rows with a required description, quantity >= 1,
// optional non-negative catalog price, and required non-negative vendor
// price. Unknown keys are rejected; the lenient pass strips them first.
const itemsSchemaJSON = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["items"],
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["description", "quantity", "vendorPrice"],
        "properties": {
          "code": {"type": "string"},
          "description": {"type": "string", "minLength": 1},
          "quantity": {"type": "number", "minimum": 1},
          "catalogPrice": {"type": "number", "minimum": 0},
          "vendorPrice": {"type": "number", "minimum": 0}
        }
      }
    }
  }
}`

var itemsSchema = jsonschema.MustCompileString("items.json", itemsSchemaJSON)

// ValidateItemsJSON checks a raw model payload against the items schema.
func ValidateItemsJSON(doc []byte) error {
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := itemsSchema.Validate(v); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}

// DecodeItems parses model output into items. It validates strictly
// first; on failure it sanitizes the payload (key synonyms, locale
// numbers, invalid rows) and revalidates before giving up.
func DecodeItems(raw []byte) ([]Item, []string, error) {
	cleaned := raw
	var dropped []string

	if err := ValidateItemsJSON(raw); err != nil {
		var sErr error
		cleaned, dropped, sErr = SanitizeItemsJSON(raw)
		if sErr != nil {
			return nil, nil, fmt.Errorf("sanitize: %w", sErr)
		}
		if vErr := ValidateItemsJSON(cleaned); vErr != nil {
			return nil, dropped, vErr
		}
	}

	var out Result
	if err := json.Unmarshal(cleaned, &out); err != nil {
		return nil, dropped, fmt.Errorf("unmarshal items: %w", err)
	}
	if out.Items == nil {
		out.Items = []Item{}
	}
	return out.Items, dropped, nil
}
