// Package generator is the published openapi-glue generation strategy.
//
// It turns a validated OpenAPI 3 document into a Node.js project built on
// fastify-openapi-glue. Two project types are supported:
//
//   - javascript: a fastify-cli plugin, started with "fastify start"
//   - standaloneJS: the same plugin plus a server.js entry point
//
// # Generated files
//
// Both types produce README.md, index.js, openApi.json, package.json,
// security.js, service.js, and test/test-plugin.js. The standaloneJS type
// adds server.js.
//
// service.js holds one handler per operation. Operations without an
// operationId get one derived from the method and path (GET /pets/{petId}
// becomes getPetsByPetId), and the derived IDs are written back into
// openApi.json so fastify-openapi-glue can route to them.
//
// # Determinism
//
// Output depends only on the request. Paths, methods, parameters,
// responses, and security schemes are emitted in sorted order, so
// repeated runs produce byte-identical files.
package generator
