// Package typesense implements the Typesense node: collections, documents,
// search and multi-search against a self-hosted or cloud Typesense server.
//
// The server address comes from the typesenseApi credential
// ({protocol}://{host}:{port}) and every request carries the API key in the
// X-TYPESENSE-API-KEY header.
package typesense
