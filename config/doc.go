// Package config loads toolenv settings from a YAML file and the environment.
//
// A missing file is not an error; defaults apply. Environment variables
// override the file:
//
//	TOOLENV_TOOL         tool name
//	TOOLENV_TIMEOUT      version query timeout (Go duration, e.g. "3s")
//	TOOLENV_CONCURRENCY  parallel probes
//
// Example file:
//
//	tool: claude
//	timeout: 5s
//	concurrency: 4
//	extraDirs:
//	  - dir: /opt/tools/bin
//	    kind: direct
//	cache:
//	  enabled: true
//	  ttl: 24h
package config
