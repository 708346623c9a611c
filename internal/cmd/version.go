package cmd

import (
	"encoding/json"
	"fmt"
)

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return json.NewEncoder(ctx.Out).Encode(map[string]string{"name": appName, "version": ctx.Version})
	}
	_, err := fmt.Fprintf(ctx.Out, "%s %s\n", appName, ctx.Version)
	return err
}
