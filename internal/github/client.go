// Package github is the gateway to the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alan/release-train/internal/git"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const (
	// AccessTokenEnv holds the credential in "username:token" form, sent as
	// a Basic authorization header.
	AccessTokenEnv = "RELEASE_TRAIN_ACCESS_TOKEN"
	// TokenEnv is the fallback credential, a bare personal access token.
	TokenEnv = "GITHUB_TOKEN"

	perPage = 100
)

var (
	// ErrMissingAccessToken means no credential was found in the environment.
	ErrMissingAccessToken = fmt.Errorf("GitHub access token is missing, set %s='username:access_token' or %s", AccessTokenEnv, TokenEnv)
	// ErrInvalidAccessToken means the credential was found but is not in
	// "username:token" form.
	ErrInvalidAccessToken = errors.New("access token is found but invalid, correct format: <username>:<access_token>")
)

// Credential authenticates API requests. Username is empty for bare tokens.
type Credential struct {
	Username string
	Token    string
}

// CredentialFromEnv reads the credential from the environment. A missing or
// malformed credential is a startup error; no network call is made before
// this succeeds.
func CredentialFromEnv() (Credential, error) {
	if raw, ok := os.LookupEnv(AccessTokenEnv); ok {
		username, token, found := strings.Cut(raw, ":")
		if !found || username == "" || token == "" {
			return Credential{}, ErrInvalidAccessToken
		}
		return Credential{Username: username, Token: token}, nil
	}
	if token, ok := os.LookupEnv(TokenEnv); ok && token != "" {
		return Credential{Token: token}, nil
	}
	return Credential{}, ErrMissingAccessToken
}

// Client wraps the GitHub API client for a single project.
type Client struct {
	client  *github.Client
	project git.Project
}

// NewClient creates a client authenticated with the given credential.
// Username-qualified credentials use Basic auth; bare tokens use an oauth2
// bearer transport.
func NewClient(credential Credential, project git.Project) *Client {
	var httpClient *http.Client
	if credential.Username != "" {
		transport := &github.BasicAuthTransport{
			Username: credential.Username,
			Password: credential.Token,
		}
		httpClient = transport.Client()
	} else {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential.Token})
		httpClient = oauth2.NewClient(context.Background(), source)
	}

	return &Client{
		client:  github.NewClient(httpClient),
		project: project,
	}
}

// Project returns the project this client operates on.
func (c *Client) Project() git.Project {
	return c.project
}

// paginatedList drains every page of a list endpoint.
func paginatedList[T any](list func(page int) ([]T, *github.Response, error)) ([]T, error) {
	var all []T
	page := 0
	for {
		items, resp, err := list(page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if resp.NextPage == 0 {
			return all, nil
		}
		page = resp.NextPage
	}
}
