// Package extract turns unstructured invoice text or photos into
// structured line items by way of an OpenAI model. Both flows are total
// functions from the caller's perspective: any transport, parsing, or
// validation failure collapses into an empty item list, with the detail
// preserved in logs only.
package extract

// Item is one extracted invoice row as it crosses the AI boundary.
// Code stays empty when the source shows none; codes are never invented.
type Item struct {
	Code         string   `json:"code,omitempty"`
	Description  string   `json:"description"`
	Quantity     float64  `json:"quantity"`
	CatalogPrice *float64 `json:"catalogPrice,omitempty"`
	VendorPrice  float64  `json:"vendorPrice"`
}

// Result is the extraction outcome. Items is never nil; failures and
// "nothing found" both present as an empty list.
type Result struct {
	Items []Item `json:"items"`
}

// MinTextLength is the minimum accepted input for the text flow.
const MinTextLength = 10

func emptyResult() Result {
	return Result{Items: []Item{}}
}
