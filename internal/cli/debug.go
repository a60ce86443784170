package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	DBPath    *DebugDBPathCmd    `cmd:"" help:"Show database path."`
	DumpEntry *DebugDumpEntryCmd `cmd:"" help:"Dump an entry as JSON."`
	Config    *DebugConfigCmd    `cmd:"" help:"Dump the resolved configuration as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpEntryCmd struct {
	ID int64 `arg:"" help:"ID of the entry to dump."`
}

func (cmd *DebugDumpEntryCmd) Run(ctx *Context) error {
	entry, err := ctx.lookupEntry(cmd.ID)
	if err != nil {
		return err
	}
	return ctx.printJSON(entry)
}

type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *Context) error {
	if ctx.Config == nil {
		return fmt.Errorf("no configuration loaded")
	}
	return ctx.printJSON(ctx.Config)
}

func (c *Context) printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.Println(string(jsonBytes))
	return nil
}
