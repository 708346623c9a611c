package cmd

import (
	"context"
	"io"

	"github.com/jimezsa/tecnoscrape/internal/config"
	"github.com/jimezsa/tecnoscrape/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Ctx        context.Context
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}

// runContext returns the run context, falling back to Background for callers
// that never set one.
func (c *Context) runContext() context.Context {
	if c == nil || c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
