// Package engine is the composition root that assembles the HomeGenie MCP
// server from configuration: the data generators, the tool registry, and the
// MCP transport. Configuration is resolved once at startup (defaults, then an
// optional YAML file, then environment variables) into an explicit serving
// mode; Run serves that mode until cancelled.
package engine
