package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageSequenceValid(t *testing.T) {
	require.False(t, MessageSequence{}.Valid())
	require.False(t, MessageSequence{{Role: RoleUser, Content: "hi"}}.Valid())
	require.False(t, MessageSequence{{Role: RoleSystem, Content: "  "}}.Valid())
	require.True(t, MessageSequence{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "hi"},
	}.Valid())
}

func TestMessageSequenceRender(t *testing.T) {
	seq := MessageSequence{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "line one\nline two"},
		{Role: RoleAssistant, Content: "ok"},
	}
	require.Equal(t, "system:\nbe brief\nuser:\nline one\nline two\nassistant:\nok\n", seq.Render())
}
