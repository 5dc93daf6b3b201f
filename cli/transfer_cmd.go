package cli

import (
	"path/filepath"

	drivepath "github.com/drivepath/go-drivepath"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func getCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "get <path>",
		Short:   "Download a file to a local directory",
		Aliases: []string{"download"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDrive(cmd)
			if err != nil {
				return err
			}
			local, err := d.Download(drivepath.Path(args[0]), dir)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Downloaded %s to %s", args[0], local)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "destination directory (default: configured tmp_dir)")
	return cmd
}

type putCommandOpts struct {
	Name         string
	MimeType     string
	Overwrite    bool
	MkdirParents bool
}

func putCommand() *cobra.Command {
	opts := &putCommandOpts{}
	cmd := &cobra.Command{
		Use:     "put <local-file> <folder-path>",
		Short:   "Upload a local file into a remote folder",
		Aliases: []string{"upload"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDrive(cmd)
			if err != nil {
				return err
			}

			name := opts.Name
			if name == "" {
				name = filepath.Base(args[0])
			}

			bar, err := pterm.DefaultProgressbar.WithTotal(100).WithTitle("Uploading " + name).Start()
			if err != nil {
				return err
			}
			last := 0
			info, err := d.WriteFile(args[0], name, drivepath.Path(args[1]), drivepath.WriteOptions{
				MimeType:     opts.MimeType,
				Overwrite:    opts.Overwrite,
				MkdirParents: opts.MkdirParents,
				Progress: func(percent int) {
					bar.Add(percent - last)
					last = percent
				},
			})
			if _, stopErr := bar.Stop(); stopErr != nil {
				return stopErr
			}
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s (id %s)", name, info.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "remote name (default: local file name)")
	cmd.Flags().StringVar(&opts.MimeType, "mime", "", "explicit mime type, bypassing inference")
	cmd.Flags().BoolVarP(&opts.Overwrite, "overwrite", "f", false, "replace an existing object of the same name")
	cmd.Flags().BoolVarP(&opts.MkdirParents, "parents", "p", false, "create missing folder segments")

	return cmd
}
