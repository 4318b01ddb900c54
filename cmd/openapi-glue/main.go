// Command openapi-glue generates a fastify-openapi-glue project from an
// OpenAPI specification.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/openapi-glue/cmd/openapi-glue/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
