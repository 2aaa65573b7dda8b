// Package commands defines the watchdog CLI.
//
// Commands
//
//   - serve     Run the HTTP service (holehe check, scan, report, health)
//   - check     Run holehe once for an email and print the JSON result
//   - version   Print the build version
//
// # Implementation
//
// The root command loads configuration before any subcommand runs. Commands
// that need the component graph build it through the wiring package and
// close it on exit.
package commands
