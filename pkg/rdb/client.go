package rdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/carlmjohnson/requests"
	v1 "github.com/djcass44/branchdiff/pkg/api/v1"
	"github.com/djcass44/branchdiff/pkg/requestutil"
	"github.com/go-logr/logr"
)

const DefaultBaseURL = "https://rdb.altlinux.org/api"

var (
	ErrInvalidResponse = errors.New("invalid response")
	ErrInvalidBranch   = errors.New("invalid branch name")
)

type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the rdb API rooted at baseURL.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: baseURL,
		client:  httpClient,
	}
}

// BranchBinaryPackages calls /export/branch_binary_packages/{branch}
// with the optional arch filter.
func (c *Client) BranchBinaryPackages(ctx context.Context, branch, arch string) (*v1.BranchPackages, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("branch", branch, "arch", arch)

	target, err := c.branchURL(branch)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("downloading branch packages", "url", target)

	req := requests.URL(target).Client(c.client)
	if arch != "" {
		req = req.Param("arch", arch)
	}

	// the buffer belongs to this call only
	var buf bytes.Buffer
	if err := req.Handle(requestutil.WithDecompress(&buf)).Fetch(ctx); err != nil {
		log.Error(err, "failed to download branch packages", "url", target)
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}

	out, err := decode(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", target, err)
	}
	log.V(1).Info("successfully downloaded branch packages", "count", len(out.Packages))
	return out, nil
}

func (c *Client) branchURL(branch string) (string, error) {
	switch branch {
	case "":
		return "", fmt.Errorf("%w: branch name must not be empty", ErrInvalidBranch)
	case ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidBranch, branch)
	}
	// JoinPath expects escaped segments
	target, err := url.JoinPath(c.baseURL, "export", "branch_binary_packages", url.PathEscape(branch))
	if err != nil {
		return "", fmt.Errorf("building url: %w", err)
	}
	return target, nil
}

func decode(data []byte) (*v1.BranchPackages, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := branchPackages.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	var out v1.BranchPackages
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
