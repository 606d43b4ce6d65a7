// Package api - Client fuer den dominomaker-Server.
// Dieses Modul enthaelt die Client-Struktur und Basis-Methoden,
// die API-Methoden liegen in client_api.go.
//
// Package api implements the client-side API for code wishing to interact
// with the dominomaker service. The dominomaker command-line client uses
// this package for remote conversions.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"

	"github.com/dominomaker/dominomaker/envconfig"
	"github.com/dominomaker/dominomaker/version"
)

// Client encapsulates client state for interacting with the dominomaker
// service. Use [ClientFromEnvironment] to create new Clients.
type Client struct {
	base *url.URL
	http *http.Client
}

func checkError(resp *http.Response, body []byte) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	apiError := StatusError{StatusCode: resp.StatusCode, Status: resp.Status}

	err := json.Unmarshal(body, &apiError)
	if err != nil {
		// Use the full body as the message if we fail to decode a response.
		apiError.ErrorMessage = string(body)
	}

	return apiError
}

// ClientFromEnvironment creates a new [Client] using configuration from the
// environment variable DOMINO_HOST, which points to the network host and
// port on which the dominomaker service is listening. The format of this
// variable is:
//
//	<scheme>://<host>:<port>
//
// If the variable is not specified, a default host and port will be used.
func ClientFromEnvironment() (*Client, error) {
	return &Client{
		base: envconfig.Host(),
		http: http.DefaultClient,
	}, nil
}

func NewClient(base *url.URL, http *http.Client) *Client {
	return &Client{
		base: base,
		http: http,
	}
}

// send fuehrt eine Anfrage aus und gibt Antwort und gelesenen Body zurueck
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, []byte, error) {
	requestURL := c.base.JoinPath(path)
	if query != nil {
		requestURL.RawQuery = query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL.String(), body)
	if err != nil {
		return nil, nil, err
	}

	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	request.Header.Set("User-Agent", fmt.Sprintf("dominomaker/%s (%s %s) Go/%s", version.Version, runtime.GOARCH, runtime.GOOS, runtime.Version()))

	respObj, err := c.http.Do(request)
	if err != nil {
		return nil, nil, err
	}
	defer respObj.Body.Close()

	respBody, err := io.ReadAll(respObj.Body)
	if err != nil {
		return nil, nil, err
	}

	if err := checkError(respObj, respBody); err != nil {
		return nil, nil, err
	}

	return respObj, respBody, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, reqData, respData any) error {
	var reqBody io.Reader
	contentType := "application/json"

	switch reqData := reqData.(type) {
	case []byte:
		reqBody = bytes.NewReader(reqData)
		contentType = "application/octet-stream"
	case io.Reader:
		reqBody = reqData
		contentType = "application/octet-stream"
	case nil:
		// noop
	default:
		data, err := json.Marshal(reqData)
		if err != nil {
			return err
		}

		reqBody = bytes.NewReader(data)
	}

	_, respBody, err := c.send(ctx, method, path, query, reqBody, contentType)
	if err != nil {
		return err
	}

	if len(respBody) > 0 && respData != nil {
		if err := json.Unmarshal(respBody, respData); err != nil {
			return err
		}
	}
	return nil
}
