// Package server provides HTTP routing, middleware, and OAuth callback handling for CLI flows.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow for login.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Social Connect Handler
//
// [CodeHandler] captures an authorization code without exchanging it. The social connect
// flow forwards the code to the backend, which owns the provider credentials and performs
// the exchange itself.
//
// # Current Usage
//
// When the user runs `auth login` or `social connect`, a temporary HTTP server starts on
// localhost, handles the callback, and shuts down after receiving the result.
package server
