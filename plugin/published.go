package plugin

import (
	"context"

	"github.com/samber/oops"

	"github.com/erraggy/openapi-glue/oaserrors"
)

type publishedLoader struct {
	sel     Selection
	catalog Catalog
	cfg     *loaderConfig
}

func (l *publishedLoader) Selection() Selection { return l.sel }

// Load picks the highest catalog version satisfying the pin and runs it
// in-process.
func (l *publishedLoader) Load(ctx context.Context) (Instance, error) {
	errb := oops.Code("PLUGIN_LOAD").In("plugin").
		With("source", "published").
		With("name", PublishedName).
		With("pin", l.sel.Pin())

	entry, err := l.catalog.Lookup(PublishedName, l.sel.Pin())
	if err != nil {
		return nil, l.fail("no matching published plugin", errb.Wrap(err))
	}
	if entry.New == nil {
		return nil, l.fail("catalog entry "+entry.Version+" has no constructor", nil)
	}

	gen := entry.New()
	desc, err := gen.Describe(ctx)
	if err != nil {
		return nil, l.fail("failed to describe plugin", errb.With("version", entry.Version).Wrap(err))
	}

	l.cfg.logger.Debug("loaded published plugin", "name", desc.Name, "version", desc.Version)
	return &publishedInstance{Generator: gen, desc: desc}, nil
}

func (l *publishedLoader) fail(msg string, cause error) error {
	return &oaserrors.PluginLoadError{
		Source:   Published.String(),
		Location: l.sel.String(),
		Message:  msg,
		Cause:    cause,
	}
}

type publishedInstance struct {
	Generator
	desc *Descriptor
}

func (i *publishedInstance) Descriptor() *Descriptor { return i.desc }

func (i *publishedInstance) Close() error { return nil }
