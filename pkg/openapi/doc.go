// Package openapi exposes the contract for deriving content-type schemas from
// OpenAPI 3 component schemas. The kin-openapi backed implementation lives
// under internal/openapi.
package openapi
