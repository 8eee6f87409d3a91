// Package directory holds the data-fetch-and-derive pipeline behind the viewer:
// page retrieval, per-record species enrichment, client-side filtering and the
// selection/detail state. It has no terminal dependencies.
//
// A Controller is owned by exactly one goroutine (the UI event loop). Work that
// touches the network is split into Begin/Fetch/Apply steps: Begin mutates state
// and returns an immutable request, Fetch performs IO and may run on any
// goroutine, Apply folds the result back in unless a newer request superseded it.
package directory
