package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sbxcloud/sbx-go/pkg/sbx"
)

// NewFilesCommand creates the content file command group.
func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Upload, download, and delete content files",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(newFilesUploadCommand())
	cmd.AddCommand(newFilesDownloadCommand())
	cmd.AddCommand(newFilesDeleteCommand())

	return cmd
}

func newFilesUploadCommand() *cobra.Command {
	var (
		folderKey string
		name      string
	)

	cmd := &cobra.Command{
		Use:     "upload FILE",
		Short:   "Upload a file to the content library",
		Example: `  sbx files upload ./report.pdf --folder a1b2c3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}

			if name == "" {
				name = filepath.Base(args[0])
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Files().Upload(context.Background(), &sbx.UploadRequest{
				FolderKey: folderKey,
				FileName:  name,
				Content:   base64.StdEncoding.EncodeToString(content),
			})
			if err != nil {
				return fmt.Errorf("uploading file: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("upload rejected: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Uploaded %s\n", name)
			_, _ = fmt.Fprintf(os.Stdout, "  Key: %s\n", resp.Key)

			if resp.URL != "" {
				_, _ = fmt.Fprintf(os.Stdout, "  URL: %s\n", resp.URL)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&folderKey, "folder", "", "destination folder key (root when omitted)")
	cmd.Flags().StringVar(&name, "name", "", "stored file name (defaults to the local name)")

	return cmd
}

func newFilesDownloadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "download KEY",
		Short: "Download a content file by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			content, err := client.Files().Download(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("downloading file: %w", err)
			}

			if output == "" || output == "-" {
				_, _ = os.Stdout.Write(content)

				return nil
			}

			if err := os.WriteFile(output, content, 0o644); err != nil {
				return fmt.Errorf("writing file: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Wrote %d bytes to %s\n", len(content), output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (stdout when omitted)")

	return cmd
}

func newFilesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a content file by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			resp, err := client.Files().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("deleting file: %w", err)
			}

			if err := resp.Err(); err != nil {
				return fmt.Errorf("delete rejected: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted %s\n", args[0])

			return nil
		},
	}
}
