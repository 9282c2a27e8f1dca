package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/clouddrive/clouddrive-client/pkg/session"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

// promptPassword reads a password without echo, falling back to a plain
// line read when stdin is not a terminal (piped input in scripts).
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func registerCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(false)
			if err != nil {
				return err
			}

			email := args[0]
			if username == "" {
				if at := strings.IndexByte(email, '@'); at > 0 {
					username = email[:at]
				} else {
					username = email
				}
			}

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Confirm password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return fmt.Errorf("passwords do not match")
			}

			if err := app.api.Register(cmd.Context(), email, username, password); err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}
			app.toast.Success("Account created. You can now log in.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "display name (defaults to the email's local part)")
	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and save the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(false)
			if err != nil {
				return err
			}

			email := args[0]
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			resp, err := app.api.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}

			tf := &session.TokenFile{
				Token:   resp.AccessToken,
				Server:  app.cfg.ServerURL,
				Email:   email,
				SavedAt: time.Now(),
			}
			if err := session.SaveToken(tf); err != nil {
				return fmt.Errorf("logged in, but could not save the session: %w", err)
			}

			app.toast.Success("Logged in as " + email + ".")
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.DeleteToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			// Best effort: the profile route may be missing on older
			// servers, in which case the saved email still identifies us.
			if me, err := app.api.Me(cmd.Context()); err == nil {
				fmt.Printf("%s (id %d)\n", me.Email, me.ID)
				return nil
			}

			if tf, err := session.LoadToken(); err == nil && tf.Email != "" {
				fmt.Println(tf.Email)
				return nil
			}
			if exp, ok := app.sess.ExpiresAt(); ok {
				fmt.Printf("logged in (session expires %s)\n", exp.Local().Format("2006-01-02 15:04"))
				return nil
			}
			fmt.Println("logged in")
			return nil
		},
	}
}
