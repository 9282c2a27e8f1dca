package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clouddrive/clouddrive-client/pkg/format"
	"github.com/clouddrive/clouddrive-client/pkg/notify"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show unread notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			if err := app.unread.RefreshUnread(cmd.Context()); err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}

			items := app.unread.Unread()
			if len(items) == 0 {
				fmt.Println("No unread notifications.")
				return nil
			}
			for _, n := range items {
				fmt.Printf("%4d  %s  %s\n", n.ID, format.Date(n.CreatedAt), n.Message)
			}
			return nil
		},
	}

	cmd.AddCommand(notificationsWatchCmd(), notificationsReadCmd())
	return cmd
}

func notificationsWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream notifications as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			seen := make(map[int64]bool)
			app.unread.OnChange(func() {
				for _, n := range app.unread.Unread() {
					if seen[n.ID] {
						continue
					}
					seen[n.ID] = true
					fmt.Printf("%s  %s\n", format.Date(n.CreatedAt), n.Message)
				}
			})

			if err := app.unread.RefreshUnread(cmd.Context()); err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Println(infoStyle.Render("Watching for notifications (Ctrl-C to stop)..."))
			stream := notify.NewStream(app.cfg.ServerURL, app.sess, app.unread)
			stream.Run(ctx)
			return nil
		},
	}
}

func notificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid notification id %q", args[0])
			}

			if err := app.unread.RefreshUnread(cmd.Context()); err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}
			if err := app.unread.MarkRead(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}
			fmt.Println("Marked as read.")
			return nil
		},
	}
}
