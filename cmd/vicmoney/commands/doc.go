// Package commands defines the vicmoney CLI.
//
// Commands
//
//   - serve      Run the web tracker
//   - tui        Run the tracker in the terminal
//   - version    Print the build version
//
// The root command loads .env before any subcommand runs. Only serve reads
// and validates the server configuration; its flags override the environment.
package commands
