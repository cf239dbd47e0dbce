// Package jsonschema2kotlin turns a directory of interlinked JSON Schema
// documents into a reference-resolved property tree for code generation.
//
// A run has two phases. Every document is decoded first and all of their
// "definitions" are indexed; only then is each property merged with the
// definition its "$ref" points to, so a reference may target any file of the
// batch. Serialize reverses the merge and writes the override-only form.
//
// Layout:
//   - jsonschema: the typed model, decoder, encoder and error codes
//   - resolve: the reference map and the merge/unmerge engine
//   - plan: the type plan handed to generators
//   - cmd/jsonschema2kotlin: the CLI
//
// Typical usage:
//
//	schemas, err := jsonschema2kotlin.ParseDirectory(ctx, "schemas")
//	docs, err := jsonschema2kotlin.Serialize(ctx, schemas)
package jsonschema2kotlin
