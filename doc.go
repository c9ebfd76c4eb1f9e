// Package fieldpipe provides:
//
// - Per-field validation/transformation pipelines built with a fluent API (Rule().Required().IsString().Trim())
// - A Validator that runs named Fields over a record and fails fast with a NamedError
// - An errors-suppressed mode (ErrNo) that falls back to default values instead of failing
// - A message dictionary keyed by check code, overridable per field or per Validator
//
// Design policy:
// - Each built-in check is sugar over two primitives, Custom (transform) and Assert.
// - Steps capture their check code and message when they are registered; validating never mutates a Field.
// - Message catalogs live under i18n/, declarative rule files under rules/, HTTP adapters under middleware/, and the CLI under cmd/fieldpipe.
//
// Typical usage:
//
//	v := fieldpipe.Make(fieldpipe.Rules{
//		"name": fieldpipe.Rule().Required().IsString().Trim().Length(1, 255),
//		"id":   fieldpipe.Rule().Required().IsInt().Min(1),
//	}, fieldpipe.WithOrder("name", "id"))
//
//	out, err := v.Validate(map[string]any{"name": "  Reo  ", "id": "7"})
//	if ne, ok := fieldpipe.AsNamedError(err); ok {
//		// ne.Field, ne.Value, ne.Message
//	}
package fieldpipe
