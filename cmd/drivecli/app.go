package main

import (
	"fmt"
	"os"

	"github.com/clouddrive/clouddrive-client/internal/config"
	"github.com/clouddrive/clouddrive-client/pkg/actions"
	"github.com/clouddrive/clouddrive-client/pkg/api"
	"github.com/clouddrive/clouddrive-client/pkg/listing"
	"github.com/clouddrive/clouddrive-client/pkg/notify"
	"github.com/clouddrive/clouddrive-client/pkg/session"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

// app wires the client stack for one command invocation.
type app struct {
	cfg     *config.Config
	sess    *session.Store
	api     *api.Client
	store   *listing.Store
	actions *actions.Actions
	unread  *notify.Store
	toast   *toast
}

// newApp builds the stack. With requireAuth it loads the saved session
// and refuses to proceed without one.
func newApp(requireAuth bool) (*app, error) {
	cfg := config.Load()
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}

	sess := session.NewStore()
	sess.OnTeardown(func() {
		// Global transition: the credential is dead, whatever command
		// was in flight. Drop the saved session so the next invocation
		// starts at login.
		session.DeleteToken()
		fmt.Fprintln(os.Stderr, "Session expired. Please log in again.")
	})

	if tf, err := session.LoadToken(); err == nil {
		sess.SetToken(tf.Token)
		if tf.Server != "" && serverFlag == "" && os.Getenv("DRIVE_SERVER_URL") == "" {
			cfg.ServerURL = tf.Server
		}
	}

	if requireAuth {
		if !sess.Active() {
			return nil, fmt.Errorf("not logged in; run 'drivecli login'")
		}
		if sess.Expired(0) {
			sess.Clear()
			return nil, fmt.Errorf("saved session has expired; run 'drivecli login'")
		}
	}

	t := transport.New(transport.Config{
		BaseURL: cfg.ServerURL,
		Timeout: cfg.Timeout,
		Session: sess,
	})
	client := api.New(t)
	store := listing.NewStore(client, cfg.PageSize)
	tst := newToast()

	return &app{
		cfg:     cfg,
		sess:    sess,
		api:     client,
		store:   store,
		actions: actions.New(client, store, tst),
		unread:  notify.NewStore(client),
		toast:   tst,
	}, nil
}
