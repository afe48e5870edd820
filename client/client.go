package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"

	"letlang/engine/errs"

	"github.com/buger/jsonparser"
)

type Client struct {
	httpclient *http.Client
	url        *url.URL
}

func NewClient(hostport string, httpclient *http.Client) (*Client, error) {
	url, err := url.Parse(hostport)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hostport [%s]: %v", hostport, err)
	}
	return &Client{
		url:        url,
		httpclient: httpclient,
	}, nil
}

func (c Client) evalURL() string {
	c.url.Path = "/eval"
	return c.url.String()
}

// ServerError is a non-2xx response of the evaluation service. Parse and
// evaluation failures match errs.ErrParse and errs.ErrEval under errors.Is.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", http.StatusText(e.Status), e.Message)
}

func (e *ServerError) Is(target error) bool {
	switch e.Status {
	case http.StatusBadRequest:
		return target == errs.ErrParse
	case http.StatusUnprocessableEntity:
		return target == errs.ErrEval
	}
	return false
}

func (c Client) postJSON(data []byte, url string) ([]byte, error) {
	reqBody := bytes.NewBuffer(data)
	response, err := c.httpclient.Post(url, "application/json", reqBody)
	if err != nil {
		return nil, fmt.Errorf("server error: %v", err)
	}
	defer response.Body.Close()
	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read server response: %v", err)
	}
	// handle http error given by the server
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		msg, err := jsonparser.GetString(body, "error")
		if err != nil {
			msg = string(body)
		}
		return nil, &ServerError{Status: response.StatusCode, Message: msg}
	}
	return body, nil
}

// Eval runs program on the server and returns the rendered result, e.g. "(val 7)".
func (c *Client) Eval(program string) (string, error) {
	req, err := json.Marshal(map[string]string{"program": program})
	if err != nil {
		return "", err
	}
	response, err := c.postJSON(req, c.evalURL())
	if err != nil {
		return "", err
	}
	result, err := jsonparser.GetString(response, "result")
	if err != nil {
		return "", fmt.Errorf("invalid server response [%s]: %v", string(response), err)
	}
	return result, nil
}
