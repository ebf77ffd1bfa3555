// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"github.com/H0llyW00dzZ/spawn-sync/src/internal/helper/gc"
)

// MaxCommandLine is the largest command line CreateProcess accepts, counted
// with its terminating NUL.
const MaxCommandLine = 32767

// CommandLine is the single string a child is launched with.
//
// Args is how many leading argv entries made it into Line. Arguments that
// would push Line past [MaxCommandLine] are dropped together with every
// argument after them, and Truncated is set. This is a known limitation
// rather than an error. A program name that does not fit on its own leaves
// Line empty with Args at 0; spawning such a program fails validation.
type CommandLine struct {
	Line      string
	Args      int
	Truncated bool
}

// BuildCommandLine joins argv into one command line: argv[0] verbatim, then
// each further argument in double quotes with embedded quotes escaped, so
// that CommandLineToArgvW gives back the original arguments.
//
// Lengths are counted in bytes, which is never less than the UTF-16 length
// Windows measures.
func BuildCommandLine(argv []string) CommandLine {
	if len(argv) == 0 {
		return CommandLine{}
	}

	line := gc.Default.Get()
	quoted := gc.Default.Get()
	defer func() {
		line.Reset()
		quoted.Reset()
		gc.Default.Put(line)
		gc.Default.Put(quoted)
	}()

	if len(argv[0]) >= MaxCommandLine {
		return CommandLine{Truncated: true}
	}
	line.WriteString(argv[0])
	cl := CommandLine{Args: 1}

	for _, arg := range argv[1:] {
		quoted.Reset()
		appendQuoted(quoted, arg)
		// One separator, the argument, and room for the terminator.
		if line.Len()+1+quoted.Len() >= MaxCommandLine {
			cl.Truncated = true
			break
		}
		line.WriteByte(' ')
		line.Write(quoted.Bytes())
		cl.Args++
	}

	cl.Line = line.String()
	return cl
}

// QuoteArg returns arg wrapped in double quotes as it appears in a command
// line built by [BuildCommandLine].
func QuoteArg(arg string) string {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()
	appendQuoted(buf, arg)
	return buf.String()
}

// appendQuoted writes "arg" to b. A '"' becomes \" and any backslashes
// directly before a '"' (embedded or the closing one) are doubled, which is
// what the Microsoft C runtime parser expects.
func appendQuoted(b gc.Buffer, arg string) {
	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch c {
		case '\\':
			slashes++
		case '"':
			for ; slashes > 0; slashes-- {
				b.WriteByte('\\')
			}
			b.WriteByte('\\')
			slashes = 0
		default:
			slashes = 0
		}
		b.WriteByte(c)
	}
	for ; slashes > 0; slashes-- {
		b.WriteByte('\\')
	}
	b.WriteByte('"')
}
