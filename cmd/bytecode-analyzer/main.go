package main

import (
	"log/slog"
	"net/http"
	"os"

	_ "net/http/pprof" // profiling

	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/analyzer/cmd"
	"github.com/Artyflex/ethereum-bytecode-analyzer/internal/analyzer/log"
)

func main() {
	defer log.RecoverPanic("main", func() {
		slog.Error("Application terminated due to unhandled panic")
	})

	log.Setup(os.Getenv("ANALYZER_LOG_LEVEL") == "debug")

	if os.Getenv("ANALYZER_PROFILE") != "" {
		go func() {
			slog.Info("Serving pprof at localhost:6060")
			if httpErr := http.ListenAndServe("localhost:6060", nil); httpErr != nil {
				slog.Error("Failed to pprof listen", "error", httpErr)
			}
		}()
	}

	cmd.Execute()
}
