// Package mas provides the request model, envelope decoding, pagination
// and domain types for the MAS REST API.
//
// # Overview
//
// Every MAS collection response is wrapped in an envelope:
//
//	{"data": {"record_field": "forms", "forms": [...], "page": 1, "page_count": 4}}
//
// A Request names a Resource, a set of identifiers, query parameters and an
// optional action, and renders a deterministic path such as
// "form/0c6f...,9a1e.../display". A Sender performs one exchange for it.
// List fetches page 1, learns the page count and then fetches the remaining
// pages concurrently, returning every record in page order:
//
//	req := mas.Get(mas.Forms, nil)
//	forms, err := mas.List[mas.ListedForm](ctx, sender, req)
//
// First returns the first record of a response and reports an empty
// response as FaultNotFound. Post, Patch and Put are First for requests
// built with that verb. Delete discards the response body.
//
// # Errors
//
// Every error returned by a call is a *Fault whose Kind is one of
// FaultNoServer, FaultNotConnected, FaultNotFound, FaultUnauthorized,
// FaultUnreachable or FaultError:
//
//	if mas.IsUnauthorized(err) {
//	  // ask for new credentials
//	}
//
// A concrete client is built by the masclient package.
package mas
