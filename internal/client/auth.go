package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sbxcloud/sbx-go/internal/auth"
	"github.com/sbxcloud/sbx-go/internal/constants"
	internalhttp "github.com/sbxcloud/sbx-go/internal/http"
	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// AuthClient implements sbx.AuthClient.
type AuthClient struct {
	http        *internalhttp.Client
	credentials *auth.Credentials
}

// Login authenticates a user against the client's domain. On success the
// returned token also replaces the client's bearer token, so subsequent
// requests run as the logged-in user.
func (c *AuthClient) Login(ctx context.Context, login, password string) (*sbx.UserResponse, error) {
	resp, err := c.http.Do(ctx, &internalhttp.Request{
		Method: "POST",
		Path:   constants.PathLogin,
		Query:  c.domainQuery(),
		Body:   &sbx.LoginRequest{Login: login, Password: password},
	})
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var out sbx.UserResponse
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	if out.Success && out.Token != "" {
		c.credentials.SetToken(out.Token)
	}

	return &out, nil
}

// ValidateSession checks the current bearer token and returns its user.
func (c *AuthClient) ValidateSession(ctx context.Context) (*sbx.UserResponse, error) {
	resp, err := c.http.Get(ctx, constants.PathValidate, c.domainQuery())
	if err != nil {
		return nil, fmt.Errorf("validating session: %w", err)
	}

	var out sbx.UserResponse
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ChangePassword updates a user's password.
func (c *AuthClient) ChangePassword(ctx context.Context, currentPassword, newPassword string, userID int) (*sbx.Response, error) {
	query := c.domainQuery()
	query.Set("current", currentPassword)
	query.Set("password", newPassword)
	query.Set("user_id", strconv.Itoa(userID))

	resp, err := c.http.PostQuery(ctx, constants.PathChangePassword, query)
	if err != nil {
		return nil, fmt.Errorf("changing password: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SendPasswordResetRequest emails a recovery code to the user.
func (c *AuthClient) SendPasswordResetRequest(ctx context.Context, userEmail, subject, emailTemplate string) (*sbx.Response, error) {
	query := c.domainQuery()
	query.Set("user_email", userEmail)
	query.Set("subject", subject)
	query.Set("email_template", emailTemplate)

	resp, err := c.http.Get(ctx, constants.PathPasswordResetRequest, query)
	if err != nil {
		return nil, fmt.Errorf("requesting password reset: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ResetPassword completes a recovery flow with the emailed code.
func (c *AuthClient) ResetPassword(ctx context.Context, userID int, code, newPassword string) (*sbx.Response, error) {
	query := c.domainQuery()
	query.Set("user_id", strconv.Itoa(userID))
	query.Set("code", code)
	query.Set("password", newPassword)

	resp, err := c.http.PostQuery(ctx, constants.PathPasswordReset, query)
	if err != nil {
		return nil, fmt.Errorf("resetting password: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// CheckEmailAvailable reports whether no account uses the address yet.
func (c *AuthClient) CheckEmailAvailable(ctx context.Context, email string) (bool, error) {
	query := c.domainQuery()
	query.Set("email", email)

	resp, err := c.http.Get(ctx, constants.PathUserExists, query)
	if err != nil {
		return false, fmt.Errorf("checking email availability: %w", err)
	}

	var out sbx.Response
	if err := unmarshalResponse(resp.Body, &out); err != nil {
		return false, err
	}

	// The endpoint answers success=true when the address is unused.
	return out.Success, nil
}

// domainQuery starts a query string carrying the client's current domain,
// which every user endpoint expects.
func (c *AuthClient) domainQuery() url.Values {
	query := url.Values{}
	query.Set("domain", strconv.Itoa(c.credentials.Domain()))

	return query
}
