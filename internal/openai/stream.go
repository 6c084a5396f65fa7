package openai

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// Stream is a finite, forward-only sequence of completion fragments. Once
// drained it cannot be replayed; issue a new request to retry. Close
// releases the provider connection and must be called even on early exit
// so an abandoned stream stops consuming provider-side compute.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

func newStream(body io.ReadCloser) *Stream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{body: body, scanner: scanner}
}

// Recv returns the next non-empty text fragment in provider order. It
// returns io.EOF when the provider signals completion, and a classified
// *Error when the stream fails mid-flight.
func (s *Stream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for s.scanner.Scan() {
		line := s.scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			s.done = true
			return "", io.EOF
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		fragment := chunk.Choices[0].Delta.Content
		if fragment == "" {
			continue
		}
		return fragment, nil
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		return "", classify(0, "", err.Error(), err)
	}
	return "", io.EOF
}

func (s *Stream) Close() error {
	s.done = true
	return s.body.Close()
}

type streamChunk struct {
	Choices []struct {
		Index int `json:"index"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}
