// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package config loads spawnsync settings shared by the command line tool
// and the MCP server.
//
// Settings come from a JSON or YAML file (chosen by extension: .json, .yaml,
// .yml) named explicitly or through the SPAWNSYNC_CONFIG_FILE environment
// variable. The file is checked against an embedded JSON schema before it is
// decoded, and defaults fill anything left out.
//
// Example YAML:
//
//	backend: native
//	drainConcurrently: true
//	log:
//	  format: json
//	output:
//	  encoding: windows-1252
//	server:
//	  allowedPrograms: [go, gcc]
//	  workingDir: /srv/build
package config
