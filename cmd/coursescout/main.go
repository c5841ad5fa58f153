package main

import (
	"context"
	"log/slog"

	"coursescout-backend/cmd/coursescout/commands"
	"coursescout-backend/lib/serviceutil"
	"coursescout-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	telemetry.InitSlog(true)
	tel, err := telemetry.SetupFromEnv(ctx, "coursescout")
	if err == nil {
		defer tel.Shutdown(context.Background())
	} else {
		slog.Debug("telemetry disabled", "err", err)
	}

	commands.ExecuteContext(ctx)
}
