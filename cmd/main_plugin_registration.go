// cmd/main.go
package main

import (
	"context"
	"log"

	"github.com/redpanda-data/benthos/v4/public/service"

	// Import Benthos core components
	_ "github.com/redpanda-data/benthos/v4/public/components/pure"

	// Import our elapsed time processor
	_ "github.com/twinfer/benthos-elapsed-timer/pkg/processor"
)

// Version information
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	log.Printf("Starting Benthos elapsed time plugin v%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
	service.RunCLI(context.Background())
}
