package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"complaint-bot/internal/domain/entity"
)

func TestParse_RoleMarkers(t *testing.T) {
	p := NewParser("")
	text := "system:\nYou classify complaints.\n\nContext:\nbroken screen\n\nuser:\nwhat is it?\nassistant:\nElectronics\nuser:\n  and now?  \n"

	msgs := p.Parse(text, "ctx")

	require.Equal(t, entity.MessageSequence{
		{Role: entity.RoleSystem, Content: "You classify complaints.\n\nContext:\nbroken screen"},
		{Role: entity.RoleUser, Content: "what is it?"},
		{Role: entity.RoleAssistant, Content: "Electronics"},
		{Role: entity.RoleUser, Content: "and now?"},
	}, msgs)
	require.True(t, msgs.Valid())
}

func TestParse_MarkerTrailingWhitespace(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("system:   \r\nhello\r\nuser:\t\nhi", "")

	require.Len(t, msgs, 2)
	require.Equal(t, entity.RoleSystem, msgs[0].Role)
	require.Equal(t, "hello", msgs[0].Content)
	require.Equal(t, entity.RoleUser, msgs[1].Role)
	require.Equal(t, "hi", msgs[1].Content)
}

func TestParse_MarkersAreExact(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("system:\nrules\n  user:\nUser:\nuser: inline\n", "")

	require.Len(t, msgs, 1)
	require.Equal(t, "rules\n  user:\nUser:\nuser: inline", msgs[0].Content)
}

func TestParse_PreservesInnerLines(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("system:\n\n   indented line\n\tsecond\n\n", "")

	require.Len(t, msgs, 1)
	require.Equal(t, "indented line\n\tsecond", msgs[0].Content)
}

func TestParse_DropsEmptyMessages(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("system:\nrules\nuser:\n   \nassistant:\nuser:\nquestion", "")

	require.Equal(t, entity.MessageSequence{
		{Role: entity.RoleSystem, Content: "rules"},
		{Role: entity.RoleUser, Content: "question"},
	}, msgs)
}

func TestParse_MarkerInsideBodyStartsNewMessage(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("system:\nQuote follows\nuser:\nnot really a user turn", "")

	require.Len(t, msgs, 2)
	require.Equal(t, entity.RoleUser, msgs[1].Role)
}

func TestParse_LinesBeforeFirstMarkerAreIgnored(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("preamble\nsystem:\nrules", "")

	require.Equal(t, entity.MessageSequence{{Role: entity.RoleSystem, Content: "rules"}}, msgs)
}

func TestParse_NoMarkersFallsBack(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("just some text\nwithout markers", "cracked phone screen")

	require.Len(t, msgs, 1)
	require.Equal(t, entity.RoleSystem, msgs[0].Role)
	require.Contains(t, msgs[0].Content, "cracked phone screen")
	require.NotContains(t, msgs[0].Content, ContextPlaceholder)
}

func TestParse_FirstRoleNotSystemFallsBack(t *testing.T) {
	p := NewParser("Custom fallback.\nContext: {context}")
	msgs := p.Parse("user:\nhello\nsystem:\nlate rules", "ctx value")

	require.Equal(t, entity.MessageSequence{
		{Role: entity.RoleSystem, Content: "Custom fallback.\nContext: ctx value"},
	}, msgs)
}

func TestParse_EmptySystemFallsBack(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("system:\n\nuser:\nhello", "ctx")

	require.Len(t, msgs, 1)
	require.Equal(t, entity.RoleSystem, msgs[0].Role)
	require.Contains(t, msgs[0].Content, "ctx")
}

func TestParse_EmptyInput(t *testing.T) {
	p := NewParser("")
	msgs := p.Parse("", "")

	require.True(t, msgs.Valid())
	require.Len(t, msgs, 1)
}

func TestParse_RenderRoundTrip(t *testing.T) {
	p := NewParser("")
	seqs := []entity.MessageSequence{
		{{Role: entity.RoleSystem, Content: "only system"}},
		{
			{Role: entity.RoleSystem, Content: "rules\n\nwith blank line"},
			{Role: entity.RoleUser, Content: "q1"},
			{Role: entity.RoleAssistant, Content: "a1"},
			{Role: entity.RoleUser, Content: "q2"},
		},
	}
	for _, seq := range seqs {
		require.Equal(t, seq, p.Parse(seq.Render(), "unused"))
	}
}

func TestParse_AlwaysValid(t *testing.T) {
	p := NewParser("")
	inputs := []string{
		"",
		"\n\n\n",
		"assistant:\n",
		"system:",
		"user:\nx\nassistant:\ny",
		strings.Repeat("system:\n", 5),
		"system:\nok\nuser:\n",
	}
	for _, in := range inputs {
		require.True(t, p.Parse(in, "ctx").Valid(), "input %q", in)
	}
}
