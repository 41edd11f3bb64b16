package main

import (
	"context"
	"time"

	"github.com/niksmo/drago-decor/config"
	"github.com/niksmo/drago-decor/internal/app"
	"github.com/niksmo/drago-decor/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	decorService := app.New(sigCtx, cfg)

	decorService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	decorService.Close(ctx)
}
