package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewFoldersCommand creates the content folder command group.
func NewFoldersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage content folders",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(newFoldersListCommand())
	cmd.AddCommand(newFoldersCreateCommand())
	cmd.AddCommand(newFoldersRenameCommand())
	cmd.AddCommand(newFoldersDeleteCommand())

	return cmd
}

func newFoldersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [KEY]",
		Short: "List a folder's contents (root when no key is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var folderKey string
			if len(args) > 0 {
				folderKey = args[0]
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Folders().List(context.Background(), folderKey)
			if err != nil {
				return fmt.Errorf("listing folder: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("list rejected: %w", err)
			}

			output := viper.GetString("output")
			if done, err := renderStructured(resp.Contents, output); done {
				return err
			}

			if resp.Folder != nil && resp.Folder.Path != "" {
				fmt.Printf("Folder: %s\n\n", resp.Folder.Path)
			}

			if len(resp.Contents) == 0 {
				fmt.Println("Folder is empty")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Key", "Name", "Type", "Size")

			for _, item := range resp.Contents {
				size := ""
				if item.Size > 0 {
					size = strconv.FormatInt(item.Size, 10)
				}

				table.Append(item.Key, item.Name, item.Type, size)
			}

			table.Render()

			return nil
		},
	}
}

func newFoldersCreateCommand() *cobra.Command {
	var parentKey string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Folders().Create(context.Background(), parentKey, args[0])
			if err != nil {
				return fmt.Errorf("creating folder: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("create rejected: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created folder '%s'\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&parentKey, "parent", "", "parent folder key (root when omitted)")

	return cmd
}

func newFoldersRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename KEY NAME",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Folders().Rename(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("renaming folder: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("rename rejected: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Renamed folder to '%s'\n", args[1])

			return nil
		},
	}
}

func newFoldersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Folders().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("deleting folder: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("delete rejected: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted folder %s\n", args[0])

			return nil
		},
	}
}
