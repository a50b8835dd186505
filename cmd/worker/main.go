package main

import (
	"github.com/alecthomas/kong"
)

var cli struct {
	Check     CheckCmd     `cmd:"" help:"Report work items whose stored quantity disagrees with the quantity engine."`
	Reconcile ReconcileCmd `cmd:"" help:"Recompute every quantity in a snapshot file and write the result."`
	Push      PushCmd      `cmd:"" help:"Upload a snapshot file to the configured state backend."`
	Pull      PullCmd      `cmd:"" help:"Download an owner's snapshot from the configured state backend."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("worker"),
		kong.Description("Offline maintenance for work-tracking snapshots."),
		kong.ShortUsageOnError())
	ctx.FatalIfErrorf(ctx.Run())
}
