package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/nav"
)

// ErrDeclined is returned by confirm when the answer is no, so scripts can
// branch on the exit status.
var ErrDeclined = errors.New("declined")

// SelectCmd creates the select command.
func SelectCmd() *cobra.Command {
	var items []string

	cmd := &cobra.Command{
		Use:   "select MESSAGE",
		Short: "Choose one item from a list",
		Long: `Shows a menu and prints the key of the chosen item.

Items are given as key=label. An item without "=" uses the same text for both.

Examples:
  plume select "Deploy to" --item stg=Staging --item prd=Production
  plume select "Colour" --item red --item green --item blue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			key, err := s.prompter.Select(cmd.Context(), args[0], parseItems(items))
			if err != nil {
				return err
			}
			return s.emit(args[0], key)
		},
	}

	cmd.Flags().StringArrayVarP(&items, "item", "i", nil, "Menu item as key=label (repeatable)")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

// ToggleCmd creates the toggle command.
func ToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle MESSAGE",
		Short: "Choose between Yes and No",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			yes, err := s.prompter.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.emit(args[0], yes)
		},
	}
}

// ConfirmCmd creates the confirm command.
func ConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm MESSAGE",
		Short: "Ask for a typed yes before continuing",
		Long: `Asks the user to type yes or no. Exits with status 1 on no.

Example:
  plume confirm "Drop the staging database?" && dropdb staging`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			yes, err := s.prompter.Confirm(args[0])
			if err != nil {
				return err
			}
			if err := s.emit(args[0], yes); err != nil {
				return err
			}
			if !yes {
				return ErrDeclined
			}
			return nil
		},
	}
}

// TextCmd creates the text command.
func TextCmd() *cobra.Command {
	var defaultValue string

	cmd := &cobra.Command{
		Use:   "text MESSAGE",
		Short: "Ask for one line of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			value, err := s.prompter.Text(args[0], defaultValue)
			if err != nil {
				return err
			}
			return s.emit(args[0], value)
		},
	}

	cmd.Flags().StringVarP(&defaultValue, "default", "d", "", "Answer used when the input is empty")

	return cmd
}

// LinesCmd creates the lines command.
func LinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lines MESSAGE",
		Short: "Ask for several lines, ended by an empty line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			lines, err := s.prompter.Lines(args[0])
			if err != nil {
				return err
			}
			return s.emit(args[0], lines)
		},
	}
}

// ListCmd creates the list command.
func ListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list MESSAGE",
		Short: "Ask for a comma separated list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			values, err := s.prompter.List(args[0])
			if err != nil {
				return err
			}
			return s.emit(args[0], values)
		},
	}
}

// MaskCmd creates the mask command.
func MaskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mask MESSAGE",
		Short: "Ask for a secret without echoing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			secret, err := s.prompter.Mask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.emit(args[0], secret)
		},
	}
}

func parseItems(specs []string) []nav.Item {
	items := make([]nav.Item, 0, len(specs))
	for _, spec := range specs {
		key, label, found := strings.Cut(spec, "=")
		if !found {
			label = key
		}
		items = append(items, nav.Item{Key: strings.TrimSpace(key), Label: strings.TrimSpace(label)})
	}
	return items
}
