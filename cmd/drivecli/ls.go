package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/clouddrive/clouddrive-client/pkg/format"
	"github.com/clouddrive/clouddrive-client/pkg/listing"
	"github.com/clouddrive/clouddrive-client/pkg/search"
	"github.com/clouddrive/clouddrive-client/pkg/transport"
)

func listingTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func lsCmd() *cobra.Command {
	var (
		folderID   int64
		shared     bool
		sharedByMe bool
	)

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List folders and files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			view := listing.DriveRoot()
			switch {
			case shared:
				view = listing.View{Kind: listing.KindShared}
			case sharedByMe:
				view = listing.View{Kind: listing.KindSharedByMe}
			case cmd.Flags().Changed("folder"):
				view = listing.DriveFolder(folderID)
			}

			if err := app.store.Load(cmd.Context(), view); err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}

			if view.Kind == listing.KindDrive && view.FolderID != nil {
				if path, err := app.actions.Breadcrumbs().Path(cmd.Context(), *view.FolderID); err == nil {
					parts := make([]string, 0, len(path)+1)
					parts = append(parts, "My Drive")
					for _, node := range path {
						parts = append(parts, node.Name)
					}
					fmt.Println(infoStyle.Render(strings.Join(parts, " / ")))
				}
			}

			folders := app.store.Folders()
			files := app.store.Files()

			if len(folders) == 0 && len(files) == 0 {
				fmt.Println("(empty)")
				return nil
			}

			switch view.Kind {
			case listing.KindShared:
				t := listingTable("ID", "NAME", "SIZE", "ROLE", "MODIFIED")
				for _, f := range files {
					t.Row(strconv.FormatInt(f.ID, 10), f.Name,
						format.SizePtr(f.LatestVersionSizeBytes), f.MyRole,
						format.Date(f.ModifiedAt()))
				}
				fmt.Println(t)
			case listing.KindSharedByMe:
				t := listingTable("ID", "NAME", "SIZE", "PEOPLE", "MODIFIED")
				for _, f := range files {
					people := format.Empty
					if f.CollaboratorCount != nil {
						people = strconv.Itoa(*f.CollaboratorCount)
					}
					t.Row(strconv.FormatInt(f.ID, 10), f.Name,
						format.SizePtr(f.LatestVersionSizeBytes), people,
						format.Date(f.ModifiedAt()))
				}
				fmt.Println(t)
			default:
				t := listingTable("ID", "NAME", "TYPE", "SIZE", "MODIFIED")
				for _, f := range folders {
					t.Row(strconv.FormatInt(f.ID, 10), f.Name, "folder",
						format.Empty, format.Date(f.UpdatedAt))
				}
				for _, f := range files {
					t.Row(strconv.FormatInt(f.ID, 10), f.Name, "file",
						format.SizePtr(f.LatestVersionSizeBytes),
						format.Date(f.ModifiedAt()))
				}
				fmt.Println(t)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&folderID, "folder", "f", 0, "list inside this folder (default: root)")
	cmd.Flags().BoolVar(&shared, "shared", false, "list files shared with me")
	cmd.Flags().BoolVar(&sharedByMe, "shared-by-me", false, "list files I shared")
	cmd.MarkFlagsMutuallyExclusive("folder", "shared", "shared-by-me")
	return cmd
}

func searchCmd() *cobra.Command {
	var (
		limit       int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search files and folders by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(true)
			if err != nil {
				return err
			}

			if interactive || len(args) == 0 {
				return searchInteractive(app, limit)
			}

			results, err := app.api.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return fmt.Errorf("%s", transport.Message(err))
			}
			if len(results) == 0 {
				fmt.Println("No matches.")
				return nil
			}

			t := listingTable("TYPE", "ID", "NAME")
			for _, r := range results {
				t.Row(r.Type, strconv.FormatInt(r.ID, 10), r.Name)
			}
			fmt.Println(t)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum results")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "read queries from stdin, one per line")
	return cmd
}

// searchInteractive reads queries line by line and prints results when
// they arrive. Typing a new line before the previous lookup lands
// supersedes it; only results for the latest query are shown.
func searchInteractive(app *app, limit int) error {
	results := make(chan search.Result, 1)
	deb := search.New(app.api, 250*time.Millisecond, limit, func(r search.Result) {
		results <- r
	})
	defer deb.Close()

	go func() {
		for r := range results {
			if r.Query == "" {
				continue
			}
			if r.Err != nil {
				fmt.Fprintln(os.Stderr, errorStyle.Render(transport.Message(r.Err)))
				continue
			}
			if len(r.Items) == 0 {
				fmt.Printf("%s: no matches\n", r.Query)
				continue
			}
			for _, item := range r.Items {
				fmt.Printf("%s: %-6s %6d  %s\n", r.Query, item.Type, item.ID, item.Name)
			}
		}
	}()

	fmt.Println(infoStyle.Render("Type a query per line (Ctrl-D to quit)."))
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		deb.Schedule(scanner.Text())
	}
	return scanner.Err()
}
