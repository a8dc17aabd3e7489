package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"jarvis/internal/backend/googleauth"
	"jarvis/internal/config"
	"jarvis/internal/exitcode"
)

const (
	// OAuth callback timeout
	oauthCallbackTimeout = 5 * time.Minute

	// Token exchange timeout
	tokenExchangeTimeout = 30 * time.Second

	// Starting port for OAuth callback server
	oauthStartPort = 8085

	// Max port attempts
	oauthMaxPortAttempts = 5
)

func (c *CLI) newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with Google for the Tasks and Calendar backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return login(cmd.Context(), c.cfg, c.Out, c.Err)
		},
	}
}

func (c *CLI) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return logout(c.cfg, c.Out)
		},
	}
}

func printOAuthSetup(errOut io.Writer, dir string) {
	fmt.Fprintln(errOut, "To use the Google backends, you need OAuth credentials:")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "1. Go to https://console.cloud.google.com/apis/credentials")
	fmt.Fprintln(errOut, "2. Create a project (or select an existing one)")
	fmt.Fprintln(errOut, "3. Enable the Google Tasks and Google Calendar APIs:")
	fmt.Fprintln(errOut, "   https://console.cloud.google.com/apis/library/tasks.googleapis.com")
	fmt.Fprintln(errOut, "   https://console.cloud.google.com/apis/library/calendar-json.googleapis.com")
	fmt.Fprintln(errOut, "4. Create OAuth 2.0 credentials:")
	fmt.Fprintln(errOut, "   - Click 'Create Credentials' > 'OAuth client ID'")
	fmt.Fprintln(errOut, "   - Choose 'Desktop app' as application type")
	fmt.Fprintln(errOut, "   - Download the JSON file")
	fmt.Fprintln(errOut, "5. Save it as:")
	fmt.Fprintf(errOut, "   %s/%s\n", dir, config.OAuthClientFile)
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "Then run 'jarvis login' again.")
}

// login runs the installed-app OAuth flow with PKCE and a loopback callback.
func login(ctx context.Context, cfg *config.Config, out, errOut io.Writer) error {
	if !cfg.HasOAuthClient() {
		err := fmt.Errorf("%s not found in %s", config.OAuthClientFile, cfg.Dir)
		fmt.Fprintf(errOut, "error: %s\n\n", err)
		printOAuthSetup(errOut, cfg.Dir)
		return &exitError{code: exitcode.AuthError}
	}

	if cfg.HasToken() && googleauth.TokenValid(cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return nil
	}

	oauthConfig, err := googleauth.OAuthConfig(cfg)
	if err != nil {
		return authError(err)
	}

	port, listener, err := findAvailablePort()
	if err != nil {
		return authError(errors.New("could not bind to local port for OAuth callback"))
	}
	defer listener.Close()

	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)
	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			select {
			case errCh <- errors.New("no code in callback"):
			default:
			}
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return authError(err)
	case <-time.After(oauthCallbackTimeout):
		return authError(errors.New("oauth callback timed out"))
	case <-ctx.Done():
		return authError(errors.New("cancelled"))
	}

	exchangeCtx, cancelExchange := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancelExchange()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return authError(fmt.Errorf("failed to exchange code for token: %w", err))
	}

	if err := cfg.EnsureDir(); err != nil {
		return authError(fmt.Errorf("failed to create config directory: %w", err))
	}
	if err := googleauth.SaveToken(cfg.TokenPath(), token); err != nil {
		return authError(fmt.Errorf("failed to save token: %w", err))
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return nil
}

// findAvailablePort tries to find an available port starting from oauthStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < oauthMaxPortAttempts; i++ {
		port := oauthStartPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, fmt.Errorf("no available port found")
}

// logout removes token.json and leaves oauth_client.json in place.
func logout(cfg *config.Config, out io.Writer) error {
	if !cfg.HasToken() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return nil
	}
	if err := cfg.RemoveToken(); err != nil {
		return authError(fmt.Errorf("failed to remove token: %w", err))
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return nil
}
