package langserver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport replies to each Send with a canned response, grounded on
// the fake-collaborator style of mcp/server_test.go.
type fakeTransport struct {
	nextResponse response
	lastRequest  request
	closed       bool
}

func (f *fakeTransport) Send(data []byte) error {
	return json.Unmarshal(data, &f.lastRequest)
}

func (f *fakeTransport) Recv() ([]byte, error) {
	return json.Marshal(f.nextResponse)
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func TestClientWeaveRoundtrip(t *testing.T) {
	ft := &fakeTransport{nextResponse: response{Text: b64("func f(x int) {}")}}
	c := NewClient(ft, "any")

	out, err := c.Weave("func f(x) {}", "func f(x int) {}", 1)
	require.NoError(t, err)
	assert.Equal(t, "func f(x int) {}", out)
	assert.Equal(t, cmdWeave, ft.lastRequest.Cmd)
	assert.Equal(t, uint(1), ft.lastRequest.Level)
}

func TestClientCheckCompleteValidatesProblems(t *testing.T) {
	ft := &fakeTransport{nextResponse: response{Problems: []string{"NotComplete"}, Score: 10}}
	c := NewClient(ft, "any")

	problems, score, err := c.CheckComplete("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []CheckProblem{ProblemNotComplete}, problems)
	assert.Equal(t, uint16(10), score)
}

func TestClientCheckCompleteRejectsUnknownTag(t *testing.T) {
	ft := &fakeTransport{nextResponse: response{Problems: []string{"Bogus"}}}
	c := NewClient(ft, "any")

	_, _, err := c.CheckComplete("a", "b")
	require.Error(t, err)
}

func TestClientSurfacesLCError(t *testing.T) {
	ft := &fakeTransport{nextResponse: response{Error: "parse failed"}}
	c := NewClient(ft, "any")

	_, err := c.Stub("code")
	require.Error(t, err)
	var fe *FacadeError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ErrLC, fe.Kind)
}

func TestClientClose(t *testing.T) {
	ft := &fakeTransport{}
	c := NewClient(ft, "any")
	require.NoError(t, c.Close())
	assert.True(t, ft.closed)
}

func TestCheckProblemValid(t *testing.T) {
	assert.True(t, ProblemNotComplete.Valid())
	assert.True(t, ProblemChangedCode.Valid())
	assert.True(t, ProblemChangedComments.Valid())
	assert.False(t, CheckProblem("Bogus").Valid())
}
