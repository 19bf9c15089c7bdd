package service

import (
	"fmt"
	"net/url"
)

// PageError is an authorization-endpoint failure that occurs before the
// redirect URI is trusted. It renders as a generic error page; the browser
// is never redirected to a URI we have not validated.
type PageError struct {
	Status  int
	Message string
}

func (e *PageError) Error() string { return e.Message }

// RedirectError is an authorization-endpoint failure discovered after the
// redirect URI passed exact-match validation. It is delivered to the client
// application as an RFC 6749 error redirect.
type RedirectError struct {
	RedirectURI string
	Code        string
	Description string
	State       string
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// URL builds the error redirect, echoing state only when the client sent one.
func (e *RedirectError) URL() string {
	params := url.Values{}
	params.Set("error", e.Code)
	if e.Description != "" {
		params.Set("error_description", e.Description)
	}
	if e.State != "" {
		params.Set("state", e.State)
	}
	return appendQuery(e.RedirectURI, params)
}

// ValidationError reports a rejected admin request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// appendQuery attaches params to a URI, preserving any query string the
// client registered as part of the redirect URI.
func appendQuery(uri string, params url.Values) string {
	sep := "?"
	if u, err := url.Parse(uri); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	return uri + sep + params.Encode()
}
