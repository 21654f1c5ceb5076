package main

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"repodoc/cmd"
	"repodoc/pkg/logging"
	"repodoc/pkg/version"
)

func main() {
	logger, err := logging.Setup(false, "repodoc", version.Version)
	if err != nil {
		log.Printf("Failed to initialize logger: %v", err)
	}

	code := 0
	if err := cmd.Execute(logger); err != nil {
		logging.Logger.Error("repodoc execution failed", zap.Error(err))
		code = 1
	}

	syncLogger(logging.Logger)
	os.Exit(code)
}

// syncLogger flushes the logger when stderr can be synced. Sync on pipes and
// character devices other than terminals fails with "invalid argument".
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			log.Printf("Logger sync failed: %v", err)
		}
	}
}

func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
