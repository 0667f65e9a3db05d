// Package formdef loads declarative form definitions from YAML or JSON and
// turns them into field definitions, validators and form options.
package formdef
