// Package app wires the server components together and manages their
// lifecycle: configuration loading, logging, the websocket hub, the batch
// extraction service, HTTP routing and graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//  1. Load configuration from environment and the optional YAML file
//  2. Initialize the structured logger
//  3. Resolve and create the data directories
//  4. Wire the extraction processor and batch service
//  5. Set up HTTP handlers and middleware
//  6. Configure the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    slog.Error("init failed", slog.String("error", err.Error()))
//	    os.Exit(1)
//	}
//	if err := application.Run(); err != nil {
//	    os.Exit(1)
//	}
//
// Run blocks until SIGINT or SIGTERM, then shuts the server down
// gracefully within the configured timeout.
package app
