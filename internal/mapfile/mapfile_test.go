package mapfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizerEmitsSBraceCloseForCloseBracket(t *testing.T) {
	tok := NewTokenizer([]byte("[ 1 0 0 0 ]"))

	var kinds []TokenKind
	for {
		got, err := tok.Next()
		require.NoError(t, err)
		if got.Kind == TokenEOF {
			break
		}
		kinds = append(kinds, got.Kind)
	}

	require.NotEmpty(t, kinds)
	last := kinds[len(kinds)-1]
	assert.Equal(t, TokenSBraceClose, last, "']' must tokenize as a close-bracket, not a close-brace")
	assert.NotEqual(t, TokenBraceClose, last)
}

func TestTokenizerPushbackAndPeek(t *testing.T) {
	tok := NewTokenizer([]byte("( 1 2 3 )"))
	peeked, err := tok.Peek()
	require.NoError(t, err)
	assert.Equal(t, TokenParenOpen, peeked.Kind)

	next, err := tok.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked, next)
}

const sampleMap = `{
"classname" "worldspawn"
{
( 0 0 0 ) ( 0 1 0 ) ( 1 0 0 ) __TB_empty 0 0 0 1 1
}
}
`

func TestParseStandardEntity(t *testing.T) {
	p := NewParser([]byte(sampleMap), nil)
	entities, errs := p.Parse()
	require.Empty(t, errs)
	require.Len(t, entities, 1)

	e := entities[0]
	assert.Equal(t, "worldspawn", e.Properties["classname"])
	require.Len(t, e.Brushes, 1)
	require.Len(t, e.Brushes[0].Faces, 1)
	assert.Equal(t, "__TB_empty", e.Brushes[0].Faces[0].Texture)
}

func TestParseValve220Entity(t *testing.T) {
	data := `{
"classname" "worldspawn"
{
( 0 0 0 ) ( 0 1 0 ) ( 1 0 0 ) tex [ 1 0 0 0 ] [ 0 1 0 0 ] 0 1 1
}
}
`
	p := NewParser([]byte(data), nil)
	entities, errs := p.Parse()
	require.Empty(t, errs)
	require.Len(t, entities, 1)
	face := entities[0].Brushes[0].Faces[0]
	assert.InDelta(t, 1.0, face.Tex.ValveXAxis.X(), 1e-9)
}

func TestMixedFormatsRejected(t *testing.T) {
	data := `{
"classname" "worldspawn"
{
( 0 0 0 ) ( 0 1 0 ) ( 1 0 0 ) a 0 0 0 1 1
( 0 0 1 ) ( 0 1 1 ) ( 1 0 1 ) b [ 1 0 0 0 ] [ 0 1 0 0 ] 0 1 1
}
}
`
	p := NewParser([]byte(data), nil)
	_, errs := p.Parse()
	require.NotEmpty(t, errs)
	_, ok := errs[0].(*ErrMixedFormats)
	assert.True(t, ok)
}

func TestRecoversAfterBadEntity(t *testing.T) {
	data := `{
"classname" "bad"
{
not-a-paren
}
}
{
"classname" "good"
}
`
	p := NewParser([]byte(data), nil)
	entities, errs := p.Parse()
	require.NotEmpty(t, errs)
	require.Len(t, entities, 1)
	assert.Equal(t, "good", entities[0].Properties["classname"])
}
