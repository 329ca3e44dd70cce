package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"up", "down", "version"}, names)
}

func TestDownCommand_RejectsBadSteps(t *testing.T) {
	for _, arg := range []string{"zero", "0", "-2"} {
		t.Run(arg, func(t *testing.T) {
			root := newRootCommand()
			root.SetOut(&bytes.Buffer{})
			root.SetErr(&bytes.Buffer{})
			root.SetArgs([]string{"down", "--", arg})

			err := root.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "steps must be a positive integer")
		})
	}
}

func TestUpCommand_RejectsArgs(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"up", "extra"})

	assert.Error(t, root.Execute())
}
