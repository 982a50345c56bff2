package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeItemsJSON(t *testing.T) {
	t.Run("renames Spanish keys and coerces locale numbers", func(t *testing.T) {
		raw := []byte(`{"items":[
			{"codigo":"COD001","descripcion":"Camisa Talla L","cantidad":"2","precioCatalogo":"S/ 25,00","precioVendedora":"20,00"}
		]}`)

		cleaned, dropped, err := SanitizeItemsJSON(raw)
		require.NoError(t, err)
		assert.Empty(t, dropped)
		require.NoError(t, ValidateItemsJSON(cleaned))

		var res Result
		require.NoError(t, json.Unmarshal(cleaned, &res))
		require.Len(t, res.Items, 1)
		assert.Equal(t, "COD001", res.Items[0].Code)
		assert.Equal(t, 2.0, res.Items[0].Quantity)
		require.NotNil(t, res.Items[0].CatalogPrice)
		assert.Equal(t, 25.0, *res.Items[0].CatalogPrice)
		assert.Equal(t, 20.0, res.Items[0].VendorPrice)
	})

	t.Run("drops unrepairable rows", func(t *testing.T) {
		raw := []byte(`{"items":[
			{"description":"Camisa","quantity":1,"vendorPrice":20},
			{"description":"","quantity":1,"vendorPrice":20},
			{"description":"Falda","quantity":0,"vendorPrice":20},
			{"description":"Correa","quantity":1,"vendorPrice":-5},
			"not an object"
		]}`)

		cleaned, dropped, err := SanitizeItemsJSON(raw)
		require.NoError(t, err)
		assert.Len(t, dropped, 4)

		var res Result
		require.NoError(t, json.Unmarshal(cleaned, &res))
		require.Len(t, res.Items, 1)
		assert.Equal(t, "Camisa", res.Items[0].Description)
	})

	t.Run("never invents a code for codeless rows", func(t *testing.T) {
		raw := []byte(`{"items":[{"code":"   ","description":"Camisa","quantity":1,"vendorPrice":20}]}`)

		cleaned, _, err := SanitizeItemsJSON(raw)
		require.NoError(t, err)

		var res Result
		require.NoError(t, json.Unmarshal(cleaned, &res))
		require.Len(t, res.Items, 1)
		assert.Empty(t, res.Items[0].Code)
	})

	t.Run("wraps a bare array", func(t *testing.T) {
		raw := []byte(`[{"description":"Camisa","quantity":1,"vendorPrice":20}]`)

		cleaned, _, err := SanitizeItemsJSON(raw)
		require.NoError(t, err)
		assert.NoError(t, ValidateItemsJSON(cleaned))
	})

	t.Run("strips unknown keys so strict validation passes", func(t *testing.T) {
		raw := []byte(`{"items":[{"description":"Camisa","quantity":1,"vendorPrice":20,"confidence":0.9}]}`)

		cleaned, _, err := SanitizeItemsJSON(raw)
		require.NoError(t, err)
		assert.NoError(t, ValidateItemsJSON(cleaned))
	})
}

func TestDecodeItems(t *testing.T) {
	t.Run("strict payload passes untouched", func(t *testing.T) {
		items, dropped, err := DecodeItems([]byte(`{"items":[{"description":"Camisa","quantity":2,"vendorPrice":20}]}`))
		require.NoError(t, err)
		assert.Empty(t, dropped)
		require.Len(t, items, 1)
	})

	t.Run("empty items is a valid outcome", func(t *testing.T) {
		items, _, err := DecodeItems([]byte(`{"items":[]}`))
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("non-JSON payload errors", func(t *testing.T) {
		_, _, err := DecodeItems([]byte(`Claro, aquí están los ítems...`))
		assert.Error(t, err)
	})

	t.Run("wrong shape that cannot be repaired errors", func(t *testing.T) {
		_, _, err := DecodeItems([]byte(`{"result":"ok"}`))
		assert.Error(t, err)
	})
}
