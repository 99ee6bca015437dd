// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompt_Answers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		q     Question
		want  bool
	}{
		{"y", "y\n", AskContinueWithoutBackup, true},
		{"yes mixed case", "YeS\n", AskContinueWithoutBackup, true},
		{"n", "n\n", AskProceed, false},
		{"no", "no\n", AskProceed, false},
		{"empty takes yes default", "\n", AskProceed, true},
		{"empty takes no default", "\n", AskNewBackupAnyway, false},
		{"last line without newline", "y", AskContinueWithoutBackup, true},
		{"retry after garbage", "maybe\nn\n", AskProceed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := NewPrompt(strings.NewReader(tt.input), &out).Confirm(tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), tt.q.Prompt)
		})
	}
}

func TestPrompt_ShowsDefault(t *testing.T) {
	var out bytes.Buffer
	_, err := NewPrompt(strings.NewReader("\n"), &out).Confirm(AskBackup)
	require.NoError(t, err)
	assert.Equal(t, "Do you want to back up files first? (Y)es/(N)o [Yes]: ", out.String())
}

func TestPrompt_RetryMessage(t *testing.T) {
	var out bytes.Buffer
	_, err := NewPrompt(strings.NewReader("x\ny\n"), &out).Confirm(AskProceed)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out.String(), AskProceed.Prompt))
	assert.Contains(t, out.String(), "Please enter 'y' for Yes or 'n' for No")
}

func TestPrompt_ClosedInput(t *testing.T) {
	var out bytes.Buffer
	_, err := NewPrompt(strings.NewReader(""), &out).Confirm(AskProceed)
	assert.True(t, errors.Is(err, ErrNoAnswer))

	_, err = NewPrompt(strings.NewReader("what"), &out).Confirm(AskProceed)
	assert.True(t, errors.Is(err, ErrNoAnswer))
}

func TestFixedDeciders(t *testing.T) {
	for _, q := range []Question{AskBackup, AskNewBackupAnyway, AskContinueWithoutBackup, AskProceed} {
		yes, err := Always(true).Confirm(q)
		require.NoError(t, err)
		assert.True(t, yes)

		no, err := Always(false).Confirm(q)
		require.NoError(t, err)
		assert.False(t, no)

		def, err := Defaults{}.Confirm(q)
		require.NoError(t, err)
		assert.Equal(t, q.DefaultYes, def, q.Prompt)
	}
}
