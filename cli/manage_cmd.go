package cli

import (
	drivepath "github.com/drivepath/go-drivepath"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <path>",
		Short:   "Permanently delete a file (files only, not folders)",
		Aliases: []string{"remove", "delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDrive(cmd)
			if err != nil {
				return err
			}
			if err := d.Delete(drivepath.Path(args[0])); err != nil {
				return err
			}
			pterm.Success.Printfln("Deleted %s", args[0])
			return nil
		},
	}
}

func moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "mv <path> <to-folder>",
		Short:   "Move a file into another folder",
		Aliases: []string{"move"},
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDrive(cmd)
			if err != nil {
				return err
			}
			if err := d.Move(drivepath.Path(args[0]), drivepath.Path(args[1])); err != nil {
				return err
			}
			pterm.Success.Printfln("Moved %s to %s", args[0], args[1])
			return nil
		},
	}
}

func mkdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <folder-path>",
		Short: "Create every missing folder segment along a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDrive(cmd)
			if err != nil {
				return err
			}
			info, err := d.MkdirAll(drivepath.Path(args[0]))
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Created %s (id %s)", args[0], info.ID)
			return nil
		},
	}
}
