// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report turns a spawn result into something a person or a tool can
// read: an indented JSON document or a markdown summary table.
//
// It also converts captured output from a legacy character set to UTF-8
// before it is reported, since JSON and terminals expect UTF-8 while many
// Windows tools write in the console code page.
package report
