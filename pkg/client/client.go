package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Shengboj0324/CollegeAdvisor-data-sub001/engine/types"
)

// Client is a client for the answer API
type Client struct {
	BaseURL string
}

// NewClient creates a new answer API client
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
	}
}

// Answer submits a question and returns the engine's answer
func (c *Client) Answer(query string) (types.Answer, error) {
	url := fmt.Sprintf("%s/api/answer", c.BaseURL)

	type request struct {
		Query string `json:"query"`
	}

	payload, err := json.Marshal(request{Query: query})
	if err != nil {
		return types.Answer{}, err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return types.Answer{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		return types.Answer{}, errors.New("invalid query")
	}
	if resp.StatusCode != http.StatusOK {
		return types.Answer{}, errors.New("failed to answer query")
	}

	var answer types.Answer
	err = json.NewDecoder(resp.Body).Decode(&answer)
	if err != nil {
		return types.Answer{}, err
	}

	return answer, nil
}

// IndexDocuments loads documents into every configured index side
func (c *Client) IndexDocuments(docs []types.Document) error {
	url := fmt.Sprintf("%s/api/documents", c.BaseURL)

	type request struct {
		Documents []types.Document `json:"documents"`
	}

	payload, err := json.Marshal(request{Documents: docs})
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return errors.New("failed to index documents")
	}

	return nil
}

// DeleteDocuments removes documents by id
func (c *Client) DeleteDocuments(ids []string) error {
	url := fmt.Sprintf("%s/api/documents", c.BaseURL)

	type request struct {
		IDs []string `json:"ids"`
	}

	payload, err := json.Marshal(request{IDs: ids})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodDelete, url, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("failed to delete documents")
	}

	return nil
}

// Health checks the API and returns the indexed document count
func (c *Client) Health() (int, error) {
	url := fmt.Sprintf("%s/api/health", c.BaseURL)

	resp, err := http.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.New("health check failed")
	}

	var body struct {
		Status    string `json:"status"`
		Documents int    `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	return body.Documents, nil
}
