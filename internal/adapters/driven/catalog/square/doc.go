// Package square reads the item catalog from the Square Catalog API.
//
// The client walks /v2/catalog/list one page at a time, flattening the
// variations nested in items and the modifiers nested in modifier lists
// into standalone catalog objects. Requests are throttled with a token
// bucket, authenticated with a bearer token, and retried on 429 and 5xx.
package square
