package gmail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrAuth indicates missing or expired mail credentials.
var ErrAuth = errors.New("gmail authentication failed")

// Full mail scope, matching what the token was issued for.
const mailScope = "https://mail.google.com/"

// authClient builds an authenticated HTTP client from the OAuth client
// secret file and the stored token file. A refreshed token is written
// back so the next run does not have to refresh again.
func (c *Client) authClient(ctx context.Context) (*http.Client, error) {
	creds, err := os.ReadFile(c.credsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read client secret file %s: %v", ErrAuth, c.credsFile, err)
	}

	conf, err := google.ConfigFromJSON(creds, mailScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse client secret file: %v", ErrAuth, err)
	}

	tok, err := tokenFromFile(c.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read token file %s: %v", ErrAuth, c.tokenFile, err)
	}

	source := conf.TokenSource(ctx, tok)
	fresh, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token: %v", ErrAuth, err)
	}
	if fresh.AccessToken != tok.AccessToken {
		// Best-effort write-back of the refreshed token.
		_ = saveToken(c.tokenFile, fresh)
	}

	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(fresh)), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
