package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clouddrive/clouddrive-client/pkg/actions"
	"github.com/clouddrive/clouddrive-client/pkg/listing"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

// loadView points the listing store at the requested folder context so the
// orchestrators act in it. Nil means the drive root.
func loadView(app *app, cmd *cobra.Command, folderID *int64) error {
	view := listing.DriveRoot()
	if folderID != nil {
		view = listing.DriveFolder(*folderID)
	}
	if err := app.store.Load(cmd.Context(), view); err != nil {
		return fmt.Errorf("%s", transport.Message(err))
	}
	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func mkdirCmd() *cobra.Command {
	var parentID int64

	cmd := &cobra.Command{
		Use:   "mkdir [name]",
		Short: "Create a folder",
		Long: "Create a folder in the given parent (default: root). Without a name\n" +
			"the folder is created as \"New folder\" and a name is prompted for,\n" +
			"mirroring the create-then-rename flow of the web client.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			var parent *int64
			if cmd.Flags().Changed("parent") {
				parent = &parentID
			}
			if err := loadView(app, cmd, parent); err != nil {
				return err
			}

			rename, err := app.actions.CreateFolder(cmd.Context())
			if err != nil {
				return app.toast.err()
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			} else {
				fmt.Printf("Folder name [%s]: ", actions.DefaultFolderName)
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				name = strings.TrimSpace(line)
			}

			if name == "" {
				rename.Cancel()
				app.toast.Success("Folder created.")
				return nil
			}
			rename.Commit(cmd.Context(), name)
			return app.toast.err()
		},
	}

	cmd.Flags().Int64VarP(&parentID, "parent", "p", 0, "parent folder id (default: root)")
	return cmd
}

func renameCmd() *cobra.Command {
	var isFile bool

	cmd := &cobra.Command{
		Use:   "rename <id> <new-name>",
		Short: "Rename a folder or file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			if isFile {
				app.actions.RenameFile(cmd.Context(), id, args[1])
			} else {
				app.actions.RenameFolder(cmd.Context(), id, args[1])
			}
			return app.toast.err()
		},
	}

	cmd.Flags().BoolVar(&isFile, "file", false, "rename a file instead of a folder")
	return cmd
}

func rmCmd() *cobra.Command {
	var (
		isFile bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a folder or file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			if isFile {
				if !force && !confirm("Delete this file? This cannot be undone.") {
					fmt.Println("Aborted.")
					return nil
				}
				app.actions.DeleteFile(cmd.Context(), id)
				return app.toast.err()
			}

			// The emptiness check is informational: it shapes the prompt,
			// but the server enforces its own policy either way.
			prompt := "Delete this folder? This cannot be undone."
			if cd, err := app.api.CanDeleteFolder(cmd.Context(), id); err == nil && !cd.CanDelete {
				prompt = "This folder is not empty; use 'rm-tree' to delete it and its contents. Try anyway?"
			}
			if !force && !confirm(prompt) {
				fmt.Println("Aborted.")
				return nil
			}
			app.actions.DeleteFolder(cmd.Context(), id)
			return app.toast.err()
		},
	}

	cmd.Flags().BoolVar(&isFile, "file", false, "delete a file instead of a folder")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func rmTreeCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm-tree <folder-id>",
		Short: "Delete a folder and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			if !force && !confirm("Delete this folder and ALL of its contents? This cannot be undone.") {
				fmt.Println("Aborted.")
				return nil
			}
			app.actions.DeleteFolderTree(cmd.Context(), id)
			return app.toast.err()
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func clearCmd() *cobra.Command {
	var (
		folderID int64
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all items in a folder (or the root)",
		Args:  cobra.NoArgs,
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

			where := "the root"
			if folder != nil {
				where = fmt.Sprintf("folder %d", *folder)
			}
			if !force && !confirm(fmt.Sprintf("Delete all items in %s? This cannot be undone.", where)) {
				fmt.Println("Aborted.")
				return nil
			}
			app.actions.DeleteAllItems(cmd.Context())
			return app.toast.err()
		},
	}

	cmd.Flags().Int64VarP(&folderID, "folder", "f", 0, "folder id (default: root)")
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}
