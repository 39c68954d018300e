package main

import (
	"context"

	"tennisleagues/cmd/leagues-cli/commands"
	"tennisleagues/lib/util/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()
	commands.ExecuteContext(ctx)
}
