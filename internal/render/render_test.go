package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryDecodeJSON(t *testing.T) {
	raw, err := TryDecodeJSON(" {\"b\":1,\"a\":[true,null]}\n")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":[true,null],"b":1}`, string(raw))

	_, err = TryDecodeJSON("/api/compose/v0")
	require.Error(t, err)
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)

	_, err = TryDecodeJSON("")
	assert.Error(t, err)
}

func TestIndent_KeepsKeyOrder(t *testing.T) {
	got := Indent(json.RawMessage(`{"zeta":1,"alpha":{"x":"<b>"}}`))
	assert.Equal(t, "{\n  \"zeta\": 1,\n  \"alpha\": {\n    \"x\": \"<b>\"\n  }\n}", got)
}

func TestIndent_UndoesHTMLEscapes(t *testing.T) {
	got := Indent(json.RawMessage(`{"command":"a \u0026\u0026 b \u003cx\u003E"}`))
	assert.Equal(t, "{\n  \"command\": \"a && b <x>\"\n}", got)

	// An escaped backslash followed by u003c is literal text.
	got = Indent(json.RawMessage(`{"path":"C:\\u003cdir"}`))
	assert.Equal(t, "{\n  \"path\": \"C:\\\\u003cdir\"\n}", got)
}

func TestPrinter_EnvelopeWithoutHTMLEscapes(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	inner, err := json.Marshal(map[string]string{"command": "a && b <x>"})
	require.NoError(t, err)
	require.Contains(t, string(inner), `\u0026`)
	envelope, err := json.Marshal(map[string]any{"Function": "V0ComposePush", "Number": 0, "Message": string(inner)})
	require.NoError(t, err)

	require.NoError(t, p.Envelope(string(envelope)))
	assert.Equal(t, "{\n  \"command\": \"a && b <x>\"\n}\n", buf.String())
}

func TestEmbeddedMessage(t *testing.T) {
	msg, ok := EmbeddedMessage(json.RawMessage(`{"Function":"V0ComposePush","Number":0,"Message":"{\"services\":{\"web\":{}}}"}`))
	require.True(t, ok)
	assert.JSONEq(t, `{"services":{"web":{}}}`, string(msg))

	_, ok = EmbeddedMessage(json.RawMessage(`{"Function":"V0ComposeKillTask","Number":0,"Message":"ok"}`))
	assert.False(t, ok)

	_, ok = EmbeddedMessage(json.RawMessage(`[1,2]`))
	assert.False(t, ok)
}

func TestPrinter_Body(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	require.NoError(t, p.Body(`{"Message":"ok"}`))
	assert.Equal(t, "{\n  \"Message\": \"ok\"\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Body("/api/compose/v0"))
	assert.Equal(t, "/api/compose/v0\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Body("  \n"))
	assert.Empty(t, buf.String())
}

func TestPrinter_Envelope(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	embedded := `{"services":{"web":{"image":"nginx"}}}`
	envelope, err := json.Marshal(map[string]any{"Function": "V0ComposePush", "Number": 0, "Message": embedded})
	require.NoError(t, err)

	require.NoError(t, p.Envelope(string(envelope)))
	assert.Equal(t, Indent(json.RawMessage(embedded))+"\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Envelope(`{"Function":"V0ComposePush","Number":2,"Message":"yaml: line 1"}`))
	assert.Contains(t, buf.String(), "\"Message\": \"yaml: line 1\"")

	buf.Reset()
	require.NoError(t, p.Envelope("not json"))
	assert.Equal(t, "not json\n", buf.String())
}

func TestPrinter_NoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	require.NoError(t, p.JSON(json.RawMessage(`{"a":1}`)))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	err := p.Table(
		[]string{"ID", "Name", "State", "Agent"},
		[][]string{{"shop_web.1", "mc:shop:web", "TASK_RUNNING", "agent-1.local"}},
	)
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"ID", "Name", "State", "Agent", "shop_web.1", "mc:shop:web", "TASK_RUNNING", "agent-1.local"} {
		assert.Contains(t, out, want)
	}
}
