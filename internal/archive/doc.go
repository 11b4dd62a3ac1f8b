// Package archive provides an HTTP client for the Internet Archive catalog.
//
// # Overview
//
// Three read-only calls back the terminal client:
//
//   - Probe: GET /metadata/opensource with a 4 second timeout. Any HTTP answer
//     means online; transport failures mean offline. The reason is discarded.
//   - Search: GET advancedsearch.php?q=...&output=json&rows=N&fl[]=... and map
//     the returned documents into Result values, keeping the service's
//     relevance order.
//   - Item: GET /metadata/<identifier> and extract title, description, year
//     and mediatype from the nested metadata object.
//
// # Payload Shapes
//
// Archive metadata is loosely typed. The same field can arrive as a string,
// a number, or an array depending on who uploaded the item, so documents are
// decoded through a tolerant string type. Descriptions are HTML fragments;
// Item strips the markup (bluemonday strict policy) before returning them.
//
// Defaults:
//   - Missing title: "Unknown"
//   - Missing description: "No description available."
//   - Missing year on an item: first four digits of its date, if any
//
// # Error Handling
//
// All errors are wrapped with the step that failed:
//   - "execute request: dial tcp: connection refused"
//   - "api /advancedsearch.php returned status 503"
//   - "decode response: unexpected end of JSON input"
//   - "item ghost: missing metadata" (errors.Is ErrMissingMetadata)
//
// The client never retries and never caches. Callers decide how to report
// failures; the session loop treats every one of them as recoverable.
//
// # Timeouts
//
// Timeouts are fixed: 4 seconds for Probe, 10 seconds for Search and Item.
// They are applied per call on top of the caller's context.
package archive
