package news

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBodySize bounds how much of a response is read; a 100-article page is
// well under this.
const maxBodySize = 8 << 20

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse validates the transport status first and the payload status second,
// then extracts the articles.
func (p *Parser) Parse(resp *http.Response) ([]Article, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Status: resp.StatusCode}
		var payload response
		if json.Unmarshal(body, &payload) == nil {
			httpErr.Message = payload.Message
		}
		return nil, httpErr
	}

	return p.ParseBody(body)
}

// ParseBody decodes a 2xx payload.
func (p *Parser) ParseBody(body []byte) ([]Article, error) {
	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &UnknownError{Message: fmt.Sprintf("decoding response: %v", err)}
	}

	if payload.Status == statusError {
		msg := payload.Message
		if msg == "" {
			msg = msgFetchFailed
		}
		return nil, &APIError{Code: payload.Code, Message: msg}
	}

	if payload.Articles == nil {
		return []Article{}, nil
	}
	return payload.Articles, nil
}
