// Package content serves the admin-managed collections shown on the public
// site: events, classes and ministries with their features.
//
// A Source answers ordered queries and a Writer applies admin edits. The
// Service wraps a Source and reports each listing as a Result, so callers can
// tell an empty collection from a failed fetch.
package content
