package cli

import (
	"time"

	drivepath "github.com/drivepath/go-drivepath"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type listCommandOpts struct {
	Recursive bool
	Since     string
	Links     bool
	Trashed   bool
}

func listCommand() *cobra.Command {
	opts := &listCommandOpts{}
	cmd := &cobra.Command{
		Use:     "ls <folder-path>",
		Short:   "List file descendants of a folder",
		Aliases: []string{"list", "walk"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDrive(cmd)
			if err != nil {
				return err
			}

			walkOpts := drivepath.WalkOptions{
				Recursive:      opts.Recursive,
				IncludeTrashed: opts.Trashed,
				WebLinks:       opts.Links,
				ModifiedTime:   true,
			}
			if opts.Since != "" {
				since, err := time.Parse(time.RFC3339, opts.Since)
				if err != nil {
					return err
				}
				walkOpts.ModifiedSince = since
			}

			rows := pterm.TableData{{"Path", "Size", "Modified"}}
			err = d.WalkFunc(drivepath.Path(args[0]), walkOpts, func(entry drivepath.WalkEntry) error {
				modified := ""
				if !entry.Info.ModTime.IsZero() {
					modified = entry.Info.ModTime.Format(time.RFC3339)
				}
				rows = append(rows, []string{string(entry.Path), pterm.Sprintf("%d", entry.Info.Size), modified})
				return nil
			})
			if err != nil {
				return err
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		},
	}

	cmd.Flags().BoolVarP(&opts.Recursive, "recursive", "r", false, "recurse into sub-folders")
	cmd.Flags().StringVar(&opts.Since, "since", "", "only objects modified at or after this RFC3339 time")
	cmd.Flags().BoolVar(&opts.Links, "links", false, "request web content links")
	cmd.Flags().BoolVar(&opts.Trashed, "trashed", false, "include trashed objects")

	return cmd
}

func statCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Resolve a path and print the object's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDrive(cmd)
			if err != nil {
				return err
			}
			info, err := d.Stat(drivepath.Path(args[0]))
			if err != nil {
				return err
			}
			kind := "file"
			if info.IsFolder() {
				kind = "folder"
			}
			rows := pterm.TableData{
				{"Name", info.Name},
				{"ID", info.ID},
				{"Kind", kind},
				{"Mime", info.Mime},
				{"Size", pterm.Sprintf("%d", info.Size)},
				{"Modified", info.ModTime.Format(time.RFC3339)},
			}
			return pterm.DefaultTable.WithData(rows).Render()
		},
	}
}
