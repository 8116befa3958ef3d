package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/repositories"
	"github.com/blossomlabs/blossom-cli/internal/server"
	"github.com/blossomlabs/blossom-cli/internal/session"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin authenticates against the Blossom backend and stores the credential.
//
// With --token the bearer token is stored directly. Otherwise a local callback
// server is started and the browser is opened on the backend's authorize page.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if token := cmd.String("token"); token != "" {
		return r.storeToken(token)
	}

	token, err := r.doLogin(ctx)
	if err != nil {
		return err
	}

	if err := r.storeToken(token.AccessToken); err != nil {
		return err
	}

	r.writePlainln("✓ Login successful")
	r.writePlain("You can now use: blossom tui\n")
	return nil
}

// AuthLogout clears the stored credential.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	creds, err := r.credentials()
	if err != nil {
		return err
	}

	if err := creds.Clear(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	r.client.SetToken("")
	r.logger.Info("credential cleared")
	return r.writePlain("✓ Logged out\n")
}

// AuthWhoami prints the current identity and which dashboard areas it can reach.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.currentSession()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"email":          sess.Email,
			"email_verified": sess.EmailVerified,
			"role":           sess.Role,
			"plan":           sess.PlanSlug,
			"provider":       sess.Provider,
			"expires_at":     sess.ExpiresAt,
			"expired":        sess.Expired(),
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Blossom Identity")
	r.writePlain("Email: %s\n", sess.Email)
	if sess.EmailVerified {
		r.writePlain("Verified: ✓\n")
	} else {
		r.writePlain("Verified: ✗\n")
	}
	r.writePlain("Role: %s\n", sess.Role)
	if sess.PlanSlug != "" {
		r.writePlain("Plan: %s\n", sess.PlanSlug)
	} else {
		r.writePlain("Plan: none\n")
	}
	if sess.Expired() {
		r.writePlain("Token: expired\n")
	} else if !sess.ExpiresAt.IsZero() {
		r.writePlain("Token: valid until %s\n", sess.ExpiresAt.Format(time.RFC3339))
	}

	r.writePlainln("Dashboard access:")
	for _, route := range session.Routes {
		decision := session.Check(sess, route)
		if decision.Allowed {
			r.writePlain("  ✓ %s\n", route.Path)
		} else {
			r.writePlain("  ✗ %s → %s\n", route.Path, decision.RedirectTo)
		}
	}

	return nil
}

// currentSession resolves the identity without rejecting expired tokens, so
// whoami can report expiry instead of erroring.
func (r *Runner) currentSession() (*session.Session, error) {
	token := r.client.Token()
	if token == "" {
		creds, err := r.credentials()
		if err != nil {
			return nil, err
		}
		stored, err := creds.Get()
		if err != nil {
			return nil, fmt.Errorf("%w: run 'blossom auth login' first", shared.ErrNotAuthenticated)
		}
		token = stored.Token
	}
	return session.Parse(token)
}

// storeToken persists the credential and its claims snapshot.
func (r *Runner) storeToken(token string) error {
	sess, err := session.Parse(token)
	if err != nil {
		return err
	}

	creds, err := r.credentials()
	if err != nil {
		return err
	}

	if err := creds.Save(&repositories.StoredCredential{
		Token:     token,
		Email:     sess.Email,
		Role:      sess.Role,
		Plan:      sess.PlanSlug,
		ExpiresAt: sess.ExpiresAt,
	}); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	r.client.SetToken(token)
	r.logger.Info("credential stored", "email", sess.Email)
	return nil
}

// doLogin executes the authorization flow against the backend with a local HTTP server.
func (r *Runner) doLogin(ctx context.Context) (*oauth2.Token, error) {
	redirectURI := r.config.Credentials.OAuth.RedirectURI
	if redirectURI == "" {
		return nil, fmt.Errorf("%w: credentials.oauth.redirect_uri must be set in config.toml", shared.ErrInvalidConfig)
	}

	callback, err := url.Parse(redirectURI)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid redirect_uri: %v", shared.ErrInvalidConfig, err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:    "blossom-cli",
		RedirectURL: redirectURI,
		Scopes:      []string{"dashboard"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  r.client.BaseURL() + "/oauth/authorize",
			TokenURL: r.client.BaseURL() + "/oauth/token",
		},
	}

	state := shared.GenerateID()
	authURL := oauthConfig.AuthCodeURL(state)
	oauthHandler := server.NewOAuthHandler(oauthConfig, state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	httpServer := &http.Server{
		Addr:    callback.Host,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting login callback server at %v", callback.Host)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Blossom login...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
