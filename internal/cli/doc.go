// Package cli defines the Cobra command tree for the cordova-react-vite CLI.
// The root command scaffolds a project; the names, variants, doctor, config,
// and version subcommands each live in their own file. Commands only handle
// flags and output and delegate the work to internal packages.
package cli
