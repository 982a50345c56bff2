package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeModel stands in for the OpenAI endpoint and answers every chat
// completion with the given message content.
func fakeModel(t *testing.T, handler http.HandlerFunc) *openai.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return openai.NewClientWithConfig(cfg)
}

func completionWith(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":   0,
					"message": map[string]any{"role": "assistant", "content": content},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

const sampleText = "2 Camisa Talla L COD001 precio catalogo S/ 25,00 precio vendedora 20,00\n1 Pantalón Jean Azul 45,50"

func TestTextFlowParse(t *testing.T) {
	logger := zap.NewNop()

	t.Run("happy path", func(t *testing.T) {
		client := fakeModel(t, completionWith(`{"items":[
			{"code":"COD001","description":"Camisa Talla L","quantity":2,"catalogPrice":25,"vendorPrice":20},
			{"description":"Pantalón Jean Azul","quantity":1,"vendorPrice":45.5}
		]}`))
		flow := NewTextFlow(client, "gpt-4o", logger)

		res := flow.Parse(context.Background(), sampleText)

		require.Len(t, res.Items, 2)
		assert.Equal(t, "COD001", res.Items[0].Code)
		assert.Equal(t, 45.5, res.Items[1].VendorPrice)
		assert.Empty(t, res.Items[1].Code)
	})

	t.Run("loose payload is sanitized", func(t *testing.T) {
		client := fakeModel(t, completionWith(`{"items":[
			{"codigo":"COD001","descripcion":"Camisa","cantidad":"2","precioVendedora":"20,00","nota":"extra"}
		]}`))
		flow := NewTextFlow(client, "gpt-4o", logger)

		res := flow.Parse(context.Background(), sampleText)

		require.Len(t, res.Items, 1)
		assert.Equal(t, 20.0, res.Items[0].VendorPrice)
	})

	t.Run("zero items found", func(t *testing.T) {
		client := fakeModel(t, completionWith(`{"items":[]}`))
		flow := NewTextFlow(client, "gpt-4o", logger)

		res := flow.Parse(context.Background(), sampleText)

		require.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("malformed model output returns empty items", func(t *testing.T) {
		client := fakeModel(t, completionWith(`Claro, aquí tienes los ítems en una tabla:`))
		flow := NewTextFlow(client, "gpt-4o", logger)

		res := flow.Parse(context.Background(), sampleText)

		require.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("model error returns empty items", func(t *testing.T) {
		client := fakeModel(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
		})
		flow := NewTextFlow(client, "gpt-4o", logger)

		res := flow.Parse(context.Background(), sampleText)

		require.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("text below minimum length is rejected without a model call", func(t *testing.T) {
		called := false
		client := fakeModel(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
			completionWith(`{"items":[]}`)(w, r)
		})
		flow := NewTextFlow(client, "gpt-4o", logger)

		res := flow.Parse(context.Background(), "corto")

		assert.Empty(t, res.Items)
		assert.False(t, called)
	})
}

func TestImageFlowParse(t *testing.T) {
	logger := zap.NewNop()
	dataURI := "data:image/jpeg;base64," + strings.Repeat("QUJD", 16)

	t.Run("happy path sends the data URI to the vision API", func(t *testing.T) {
		var gotImageURL string
		client := fakeModel(t, func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Messages []struct {
					Content json.RawMessage `json:"content"`
				} `json:"messages"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			for _, m := range req.Messages {
				var parts []struct {
					Type     string `json:"type"`
					ImageURL *struct {
						URL string `json:"url"`
					} `json:"image_url"`
				}
				if err := json.Unmarshal(m.Content, &parts); err == nil {
					for _, p := range parts {
						if p.Type == "image_url" && p.ImageURL != nil {
							gotImageURL = p.ImageURL.URL
						}
					}
				}
			}
			completionWith(`{"items":[{"description":"Camisa","quantity":2,"vendorPrice":20}]}`)(w, r)
		})
		flow := NewImageFlow(client, "gpt-4o", logger)

		res := flow.Parse(context.Background(), dataURI)

		require.Len(t, res.Items, 1)
		assert.Equal(t, dataURI, gotImageURL)
	})

	t.Run("rejects payloads that are not image data URIs", func(t *testing.T) {
		called := false
		client := fakeModel(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})
		flow := NewImageFlow(client, "gpt-4o", logger)

		for _, in := range []string{"", "not-a-uri", "data:text/plain;base64,aGk=", "data:image/png;base64,"} {
			res := flow.Parse(context.Background(), in)
			assert.Empty(t, res.Items)
		}
		assert.False(t, called)
	})

	t.Run("vision failure returns empty items", func(t *testing.T) {
		client := fakeModel(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		})
		flow := NewImageFlow(client, "gpt-4o", logger)

		res := flow.Parse(context.Background(), dataURI)

		require.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})
}
