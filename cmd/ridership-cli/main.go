package main

import (
	"ridership-backend/cmd/ridership-cli/commands"
	"ridership-backend/lib/serviceutil"
	"ridership-backend/lib/telemetry"
)

func main() {
	// Ctrl+C cancels the context, aborting in-flight fetches in a
	// long sequential build
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "ridership-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}
