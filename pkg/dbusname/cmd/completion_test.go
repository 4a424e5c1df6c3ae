package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletionCommand(t *testing.T) {
	cmd := NewCompletionCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "completion [bash|zsh|fish|powershell]", cmd.Use)
	assert.Contains(t, cmd.Short, "completion")
}

func TestCompletionCommand(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{shell: "bash", want: "bash completion"},
		{shell: "zsh", want: "dbusname"},
		{shell: "fish", want: "dbusname"},
		{shell: "powershell", want: "dbusname"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			out, err := runCommand(t, "", "completion", tt.shell)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCompletionCommand_UnsupportedShell(t *testing.T) {
	_, err := runCommand(t, "", "completion", "unsupported")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")
}

func TestValidateCompletesKinds(t *testing.T) {
	cmd := NewValidateCommand()

	kinds, directive := cmd.ValidArgsFunction(cmd, nil, "")
	assert.Equal(t, []string{"bus", "member", "interface", "error", "path"}, kinds)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	kinds, _ = cmd.ValidArgsFunction(cmd, []string{"bus"}, "")
	assert.Empty(t, kinds)
}
