// Package naming provides case conversion and identifier helpers used when
// rendering generated JavaScript projects.
//
// Functions include ToPascalCase, ToCamelCase, ToTitle, OperationName, and
// JSIdentifier. They are used by the generator templates to turn OpenAPI
// operationIds, paths, and security scheme names into JavaScript method names.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
