// Package openapi builds declarative form definitions from the request body
// schema of an OpenAPI 3 operation.
//
// Recognised extensions on properties:
//
//	x-formstate-widget: radio | select   choice rendering for enums
//	x-formstate-password: true           mask a text input
//
// and on the request body object schema:
//
//	x-formstate-order: [a, b, ...]       field order (remaining names sorted)
package openapi
