// Package app wires the dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from environment and an optional YAML file
//	2. Initialize logging and OpenTelemetry
//	3. Build the schedule source, loader and cache
//	4. Create the WebSocket hub and the services
//	5. Load the schedule once; a missing source aborts startup
//	6. Set up the chi router, middleware and HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(frontendFS)
//	if err != nil {
//	    if path, ok := app.MissingSource(err); ok {
//	        fmt.Fprintf(os.Stderr, "File %s not found!\n", path)
//	    }
//	    os.Exit(1)
//	}
//	if err := application.Run(); err != nil {
//	    os.Exit(1)
//	}
package app
