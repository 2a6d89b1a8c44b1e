// Package driving defines the ports the CLI, TUI and MCP adapters call:
// uploading files, turning them into text, building an index handle and
// querying it, and reading settings.
//
// The services package implements every port here.
package driving
