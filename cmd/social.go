package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/server"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

var connectPlatforms = map[string]bool{
	"tiktok":    true,
	"instagram": true,
	"youtube":   true,
}

// SocialList lists connected social accounts.
func (r *Runner) SocialList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	accounts, err := r.client.SocialAccounts(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(accounts, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d connected accounts:\n\n", len(accounts))
	for i, acct := range accounts {
		r.writePlain("%d. @%s (%s)\n", i+1, acct.Handle, acct.Platform)
		r.writePlain("   Followers: %s, Posts: %s\n",
			shared.FormatCount(acct.FollowerCount), shared.FormatCount(acct.PostCount))
		if !acct.TokenValid {
			r.writePlain("   ⚠ Token expired, reconnect required\n")
		}
		r.writePlain("   ID: %s\n", acct.ID)
		r.writePlain("\n")
	}

	return nil
}

// SocialConnect links a social account through the provider's OAuth popup.
//
// The backend owns the provider credentials: the CLI captures only the callback
// code on a local server and forwards it for the backend to exchange.
func (r *Runner) SocialConnect(ctx context.Context, cmd *cli.Command) error {
	platform := cmd.StringArg("platform")
	if !connectPlatforms[platform] {
		return fmt.Errorf("%w: platform must be one of tiktok, instagram, youtube", shared.ErrInvalidArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	redirectURI := r.config.Credentials.OAuth.RedirectURI
	if redirectURI == "" {
		return fmt.Errorf("%w: credentials.oauth.redirect_uri must be set in config.toml", shared.ErrInvalidConfig)
	}

	callback, err := url.Parse(redirectURI)
	if err != nil {
		return fmt.Errorf("%w: invalid redirect_uri: %v", shared.ErrInvalidConfig, err)
	}

	state := shared.GenerateID()
	authURL, err := r.client.ConnectStart(ctx, platform, redirectURI, state)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	codeHandler := server.NewCodeHandler(state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(codeHandler)

	httpServer := &http.Server{
		Addr:    callback.Host,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting connect callback server at %v", callback.Host)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser to connect %s...\n", platform)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.CodeResult

	select {
	case result = <-codeHandler.Result():
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return fmt.Errorf("authorization failed: %w", result.Error())
	}

	account, err := r.client.ConnectComplete(ctx, platform, result.Code, result.State)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Info("account connected", "platform", account.Platform, "handle", account.Handle)
	r.writePlainln("✓ Connected @%s on %s", account.Handle, account.Platform)
	return nil
}

// SocialDisconnect unlinks a social account.
func (r *Runner) SocialDisconnect(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: account id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	if err := r.client.Disconnect(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Account %s disconnected\n", id)
}
