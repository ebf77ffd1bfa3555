// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package spawn

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"
)

func TestBuildCommandLineDecomposes(t *testing.T) {
	for _, argv := range roundTripArgs {
		if strings.ContainsAny(argv[0], " \t") {
			continue
		}
		t.Run(strings.Join(argv, "|"), func(t *testing.T) {
			got, err := windows.DecomposeCommandLine(BuildCommandLine(argv).Line)
			require.NoError(t, err)
			assert.Equal(t, argv, got)
		})
	}
}
