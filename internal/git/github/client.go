package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// clients bundles the REST and GraphQL clients authenticated with one token
type clients struct {
	rest    *github.Client
	graphql *githubv4.Client
}

// newClients creates REST and GraphQL clients sharing an authenticated transport.
// An empty apiURL targets api.github.com.
func newClients(base *http.Client, token, apiURL string) (*clients, error) {
	httpClient := authHTTPClient(base, token)

	rest := github.NewClient(httpClient)
	if apiURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
		rest.BaseURL = baseURL
	}

	var gql *githubv4.Client
	if apiURL == "" {
		gql = githubv4.NewClient(httpClient)
	} else {
		gql = githubv4.NewEnterpriseClient(graphqlEndpoint(apiURL), httpClient)
	}

	return &clients{rest: rest, graphql: gql}, nil
}

// authHTTPClient wraps base with a static bearer token; an empty token leaves requests anonymous
func authHTTPClient(base *http.Client, token string) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	if token == "" {
		return base
	}

	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = base.Timeout
	return httpClient
}

// graphqlEndpoint maps a REST API root to its GraphQL endpoint
func graphqlEndpoint(apiURL string) string {
	apiURL = strings.TrimSuffix(apiURL, "/")
	if root, ok := strings.CutSuffix(apiURL, "/api/v3"); ok {
		return root + "/api/graphql"
	}
	return apiURL + "/graphql"
}
