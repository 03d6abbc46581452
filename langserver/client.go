package langserver

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/oxhq/holeweave/tree"
)

// Client is the concrete Facade implementation. It serializes concurrent
// callers behind callMu so the one logical socket to the spawned analyzer
// never interleaves two requests.
type Client struct {
	transport Transport
	anyType   string

	callMu sync.Mutex
}

// NewClient wraps transport as a Facade. anyType is the literal spelling
// this language uses for its top/"any" type, returned by AnyType.
func NewClient(transport Transport, anyType string) *Client {
	return &Client{transport: transport, anyType: anyType}
}

func (c *Client) roundtrip(req request) (response, error) {
	c.callMu.Lock()
	defer c.callMu.Unlock()

	payload, err := json.Marshal(req)
	if err != nil {
		return response{}, lcErr(fmt.Sprintf("marshal request: %v", err))
	}
	if err := c.transport.Send(payload); err != nil {
		return response{}, err
	}
	raw, err := c.transport.Recv()
	if err != nil {
		return response{}, err
	}
	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return response{}, ioErr(err)
	}
	if resp.Error != "" {
		return response{}, lcErr(resp.Error)
	}
	return resp, nil
}

func (c *Client) PrettyPrint(code, holeToken string, categories []string) (string, error) {
	resp, err := c.roundtrip(request{Cmd: cmdPrint, Text: b64(code), TypeName: b64(holeToken), Categories: categories})
	if err != nil {
		return "", err
	}
	return unb64(resp.Text)
}

func (c *Client) ToTree(code string) (tree.CodeBlockTree, error) {
	resp, err := c.roundtrip(request{Cmd: cmdTree, Text: b64(code)})
	if err != nil {
		return tree.CodeBlockTree{}, err
	}
	raw, err := unb64(resp.Text)
	if err != nil {
		return tree.CodeBlockTree{}, ioErr(err)
	}
	var out tree.CodeBlockTree
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return tree.CodeBlockTree{}, ioErr(err)
	}
	return out, nil
}

func (c *Client) Stub(code string) (string, error) {
	resp, err := c.roundtrip(request{Cmd: cmdStub, Text: b64(code)})
	if err != nil {
		return "", err
	}
	return unb64(resp.Text)
}

func (c *Client) CheckComplete(original, completed string) ([]CheckProblem, uint16, error) {
	resp, err := c.roundtrip(request{Cmd: cmdCheck, Text: b64(completed), Original: b64(original)})
	if err != nil {
		return nil, 0, err
	}
	problems := make([]CheckProblem, 0, len(resp.Problems))
	for _, p := range resp.Problems {
		cp := CheckProblem(p)
		if !cp.Valid() {
			return nil, 0, ioErr(fmt.Errorf("unknown check problem tag %q", p))
		}
		problems = append(problems, cp)
	}
	return problems, resp.Score, nil
}

func (c *Client) Weave(original, nettle string, level uint) (string, error) {
	resp, err := c.roundtrip(request{Cmd: cmdWeave, Text: b64(original), Nettle: b64(nettle), Level: level})
	if err != nil {
		return "", err
	}
	return unb64(resp.Text)
}

func (c *Client) Usages(outerBlock, innerBlock string) (string, uint, error) {
	resp, err := c.roundtrip(request{Cmd: cmdUsages, Text: b64(outerBlock), InnerBlock: b64(innerBlock)})
	if err != nil {
		return "", 0, err
	}
	snippet, err := unb64(resp.Text)
	if err != nil {
		return "", 0, ioErr(err)
	}
	return snippet, resp.Count, nil
}

func (c *Client) ObjectInfo(code string) (ObjectInfoMap, error) {
	resp, err := c.roundtrip(request{Cmd: cmdObjectInfo, Text: b64(code)})
	if err != nil {
		return nil, err
	}
	raw, err := unb64(resp.Text)
	if err != nil {
		return nil, ioErr(err)
	}
	out := ObjectInfoMap{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, ioErr(err)
	}
	return out, nil
}

func (c *Client) TypeCheck(code string) (bool, error) {
	resp, err := c.roundtrip(request{Cmd: cmdTypeCheck, Text: b64(code)})
	if err != nil {
		return false, err
	}
	return resp.Errors == 0, nil
}

func (c *Client) AnyType() string { return c.anyType }

func (c *Client) Close() error { return c.transport.Close() }
