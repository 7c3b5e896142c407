package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/plume/nav"
)

// demoStyles are shown by the demo in this order.
var demoStyles = []string{
	"bold", "italic", "red", "green", "yellow", "blue", "magenta", "cyan",
	"grey", "redBg", "greenBg", "blueBg", "selectedItem",
}

// DemoCmd creates the demo command.
func DemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through every prompt type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			return runDemo(cmd, s)
		},
	}
}

func runDemo(cmd *cobra.Command, s *session) error {
	ctx := cmd.Context()
	p := s.prompter
	r := s.renderer

	if err := p.Title("plume " + r.Middot() + " prompt tour"); err != nil {
		return err
	}
	if err := p.Message(r.Line(40, 90)); err != nil {
		return err
	}

	samples := make([]string, 0, len(demoStyles))
	for _, name := range demoStyles {
		styled, err := r.Style(name, name)
		if err != nil {
			return err
		}
		samples = append(samples, styled)
	}
	if err := p.Message(strings.Join(samples, " ")); err != nil {
		return err
	}
	if err := p.Message(r.DashedLine(40, 90)); err != nil {
		return err
	}

	flavour, err := p.Select(ctx, "Pick a flavour", nav.Items("van", "Vanilla", "cho", "Chocolate", "str", "Strawberry"))
	if err != nil {
		return err
	}
	cone, err := p.Toggle(ctx, "In a cone?")
	if err != nil {
		return err
	}
	name, err := p.Text("Name for the order", "guest")
	if err != nil {
		return err
	}
	toppings, err := p.List("Toppings")
	if err != nil {
		return err
	}

	if err := p.Status(fmt.Sprintf("%s: %s, cone=%t, toppings=%v", name, flavour, cone, toppings)); err != nil {
		return err
	}
	return p.Approve("Order placed")
}
