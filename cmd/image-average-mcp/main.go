package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-average-mcp/internal/imaging"
	"github.com/ironsheep/image-average-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-average-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-average-mcp - MCP server that averages images in linear light")
			fmt.Println()
			fmt.Println("Usage: image-average-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_AVERAGE_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  IMAGE_AVERAGE_STORE_DIR=<dir>    Where results are saved (default $TMPDIR/image-average)")
			fmt.Println("  IMAGE_AVERAGE_GAMMA=<float>      Default gamma when a call omits it (default 2.2)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.debug {
		log.Printf("Image Average MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Store: %s, default gamma: %g", cfg.storeDir, cfg.gamma)
	}

	store, err := imaging.NewStore(cfg.storeDir)
	if err != nil {
		log.Fatalf("Store error: %v", err)
	}

	srv := server.New(server.Config{
		Store:        store,
		DefaultGamma: cfg.gamma,
		Version:      Version,
		Debug:        cfg.debug,
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
