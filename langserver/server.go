package langserver

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Server dispatches wire-protocol requests to a concrete Facade
// implementation. It is the counterpart of Client/ProcessTransport: where
// a Client sits in the holeweave process and talks out to an analyzer
// subprocess, a Server sits inside that subprocess and talks back.
type Server struct {
	facade Facade
}

// NewServer wraps facade so its methods can be reached over the wire.
func NewServer(facade Facade) *Server {
	return &Server{facade: facade}
}

// Serve reads newline-delimited JSON requests from r and writes
// newline-delimited JSON responses to w until r returns EOF.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			resp := s.handle(line)
			encoded, err := json.Marshal(resp)
			if err != nil {
				return fmt.Errorf("langserver: marshal response: %w", err)
			}
			if _, err := w.Write(append(encoded, '\n')); err != nil {
				return fmt.Errorf("langserver: write response: %w", err)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("langserver: read request: %w", err)
		}
	}
}

func (s *Server) handle(line []byte) response {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		return response{Error: fmt.Sprintf("decode request: %v", err)}
	}

	switch req.Cmd {
	case cmdPrint:
		return s.handlePrint(req)
	case cmdTree:
		return s.handleTree(req)
	case cmdStub:
		return s.handleStub(req)
	case cmdCheck:
		return s.handleCheck(req)
	case cmdWeave:
		return s.handleWeave(req)
	case cmdUsages:
		return s.handleUsages(req)
	case cmdObjectInfo:
		return s.handleObjectInfo(req)
	case cmdTypeCheck:
		return s.handleTypeCheck(req)
	default:
		return response{Error: fmt.Sprintf("unknown cmd %q", req.Cmd)}
	}
}

func (s *Server) handlePrint(req request) response {
	code, err := unb64(req.Text)
	if err != nil {
		return response{Error: err.Error()}
	}
	holeToken, err := unb64(req.TypeName)
	if err != nil {
		return response{Error: err.Error()}
	}
	out, err := s.facade.PrettyPrint(code, holeToken, req.Categories)
	if err != nil {
		return response{Error: err.Error()}
	}
	return response{Text: b64(out)}
}

func (s *Server) handleTree(req request) response {
	code, err := unb64(req.Text)
	if err != nil {
		return response{Error: err.Error()}
	}
	out, err := s.facade.ToTree(code)
	if err != nil {
		return response{Error: err.Error()}
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return response{Error: err.Error()}
	}
	return response{Text: b64(string(raw))}
}

func (s *Server) handleStub(req request) response {
	code, err := unb64(req.Text)
	if err != nil {
		return response{Error: err.Error()}
	}
	out, err := s.facade.Stub(code)
	if err != nil {
		return response{Error: err.Error()}
	}
	return response{Text: b64(out)}
}

func (s *Server) handleCheck(req request) response {
	completed, err := unb64(req.Text)
	if err != nil {
		return response{Error: err.Error()}
	}
	original, err := unb64(req.Original)
	if err != nil {
		return response{Error: err.Error()}
	}
	problems, score, err := s.facade.CheckComplete(original, completed)
	if err != nil {
		return response{Error: err.Error()}
	}
	tags := make([]string, len(problems))
	for i, p := range problems {
		tags[i] = string(p)
	}
	return response{Problems: tags, Score: score}
}

func (s *Server) handleWeave(req request) response {
	original, err := unb64(req.Text)
	if err != nil {
		return response{Error: err.Error()}
	}
	nettle, err := unb64(req.Nettle)
	if err != nil {
		return response{Error: err.Error()}
	}
	out, err := s.facade.Weave(original, nettle, req.Level)
	if err != nil {
		return response{Error: err.Error()}
	}
	return response{Text: b64(out)}
}

func (s *Server) handleUsages(req request) response {
	outer, err := unb64(req.Text)
	if err != nil {
		return response{Error: err.Error()}
	}
	inner, err := unb64(req.InnerBlock)
	if err != nil {
		return response{Error: err.Error()}
	}
	snippet, count, err := s.facade.Usages(outer, inner)
	if err != nil {
		return response{Error: err.Error()}
	}
	return response{Text: b64(snippet), Count: count}
}

func (s *Server) handleObjectInfo(req request) response {
	code, err := unb64(req.Text)
	if err != nil {
		return response{Error: err.Error()}
	}
	info, err := s.facade.ObjectInfo(code)
	if err != nil {
		return response{Error: err.Error()}
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return response{Error: err.Error()}
	}
	return response{Text: b64(string(raw))}
}

func (s *Server) handleTypeCheck(req request) response {
	code, err := unb64(req.Text)
	if err != nil {
		return response{Error: err.Error()}
	}
	ok, err := s.facade.TypeCheck(code)
	if err != nil {
		return response{Error: err.Error()}
	}
	if ok {
		return response{Errors: 0}
	}
	return response{Errors: 1}
}
