package main

import (
	"fmt"
	"os"

	"github.com/yungbote/clinicsite-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Start()

	addr := ":" + a.Cfg.Port
	a.Log.Info("Starting HTTP server", "addr", addr)
	if err := a.Run(addr); err != nil {
		a.Log.Error("HTTP server exited", "error", err)
		a.Close()
		os.Exit(1)
	}
}
