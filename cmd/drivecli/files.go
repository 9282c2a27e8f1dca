package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

func uploadCmd() *cobra.Command {
	var folderID int64

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			var folder *int64
			if cmd.Flags().Changed("folder") {
				folder = &folderID
			}
			if err := loadView(app, cmd, folder); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			app.actions.Upload(cmd.Context(), filepath.Base(args[0]), f)
			return app.toast.err()
		},
	}

	cmd.Flags().Int64VarP(&folderID, "folder", "f", 0, "destination folder id (default: root)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new-version <file-id> <path>",
		Short: "Upload a new version of an existing file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			app.actions.UploadNewVersion(cmd.Context(), id, filepath.Base(args[1]), f)
			return app.toast.err()
		},
	}
}

func downloadCmd() *cobra.Command {
	var (
		output string
		inline bool
	)

	cmd := &cobra.Command{
		Use:   "download <file-id>",
		Short: "Download a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			if inline {
				body, err := app.api.View(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("%s", transport.Message(err))
				}
				defer body.Close()
				_, err = io.Copy(os.Stdout, body)
				return err
			}

			body, name, err := app.api.Download(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}
			defer body.Close()

			dest := output
			if dest == "" {
				dest = name
			}
			if dest == "" {
				dest = fmt.Sprintf("file-%d", id)
			}

			out, err := os.Create(dest)
			if err != nil {
				return err
			}
			defer out.Close()

			n, err := io.Copy(out, body)
			if err != nil {
				return err
			}
			app.toast.Success(fmt.Sprintf("Downloaded %s (%d bytes).", dest, n))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (default: server-provided name)")
	cmd.Flags().BoolVar(&inline, "stdout", false, "stream the file to stdout instead of saving it")
	return cmd
}

func shareCmd() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "share <file-id> <email-or-username>...",
		Short: "Share a file with other users",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}
			if role != "read" && role != "write" {
				return fmt.Errorf("role must be read or write")
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			// Resolve each recipient to a user id via the people search.
			var userIDs []int64
			for _, query := range args[1:] {
				users, err := app.api.SearchUsers(cmd.Context(), query, 5)
				if err != nil {
					return fmt.Errorf("%s", transport.Message(err))
				}
				switch len(users) {
				case 0:
					return fmt.Errorf("no user matches %q", query)
				case 1:
					userIDs = append(userIDs, users[0].ID)
				default:
					for _, u := range users {
						fmt.Printf("  %d  %s  %s\n", u.ID, u.Email, u.Username)
					}
					return fmt.Errorf("%q is ambiguous; share by exact email", query)
				}
			}

			app.actions.Share(cmd.Context(), id, userIDs, role)
			return app.toast.err()
		},
	}

	cmd.Flags().StringVarP(&role, "role", "r", "read", "access role: read or write")
	return cmd
}

func unshareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unshare <file-id>",
		Short: "Remove a file someone shared with you",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			app.actions.RemoveFromShared(cmd.Context(), id)
			return app.toast.err()
		},
	}
}

func peopleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "people <file-id>",
		Short: "List who a file is shared with",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid file id %q", args[0])
			}

			entries, err := app.api.SharesByMe(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}
			if len(entries) == 0 {
				fmt.Println("Not shared with anyone.")
				return nil
			}

			t := listingTable("USER", "EMAIL", "ROLE")
			for _, e := range entries {
				name := e.Username
				if name == "" {
					name = strconv.FormatInt(e.UserID, 10)
				}
				t.Row(name, e.Email, e.Role)
			}
			fmt.Println(t)
			return nil
		},
	}
}
