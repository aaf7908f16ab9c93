package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/session"
)

const slotNames = "target, p1, p1.1, p1.2, p2, p2.1, p2.2"

// AssignCmd returns the assign command.
func AssignCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("assign", flag.ContinueOnError),
		Usage: "assign <slot> <character>",
		Short: "Put a character into an ancestry slot",
		Long: `Put a character (numeric id or name) into an ancestry slot.

Slots: ` + slotNames + `.

A character family may appear only once in the tree: any other slot holding
the same family is cleared along with its subtree.`,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execAssign(io, a, args)
		},
	}
}

func execAssign(io *IO, a *app, args []string) error {
	if len(args) < 2 {
		return requireArgs(args, "slot", "character")
	}

	slot, err := ancestry.ParseSlot(args[0])
	if err != nil {
		return err
	}

	identity, err := a.catalog.ResolveCharacter(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	var (
		node    ancestry.Node
		cleared []ancestry.Slot
	)

	err = a.update(func(s *session.Session) error {
		before := s.Model().Tree().Identities()
		node = s.Assign(slot, identity)
		after := s.Model().Tree().Identities()

		for _, other := range ancestry.Slots() {
			if before[other] > 0 && after[other] == 0 {
				cleared = append(cleared, other)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	io.Printf("Assigned %s: %s\n", slot, node.Name)

	for _, other := range cleared {
		io.Println("Cleared", other.String())
	}

	if _, known := a.catalog.Character(identity); !known {
		io.Warn("character "+node.Name+" is not in the catalog", "check the id or load a catalog with --catalog")
	}

	return nil
}

// ClearCmd returns the clear command.
func ClearCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("clear", flag.ContinueOnError),
		Usage: "clear <slot>",
		Short: "Empty an ancestry slot and its subtree",
		Long:  "Empty an ancestry slot. Clearing a parent also clears its grandparents.\n\nSlots: " + slotNames + ".",
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execClear(io, a, args)
		},
	}
}

func execClear(io *IO, a *app, args []string) error {
	if err := requireArgs(args, "slot"); err != nil {
		return err
	}

	slot, err := ancestry.ParseSlot(args[0])
	if err != nil {
		return err
	}

	err = a.update(func(s *session.Session) error {
		s.Clear(slot)

		return nil
	})
	if err != nil {
		return err
	}

	io.Println("Cleared", slot.String())

	return nil
}

// TreeCmd returns the tree command.
func TreeCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("tree", flag.ContinueOnError),
		Usage: "tree",
		Short: "Show the ancestry tree",
		Exec: func(_ context.Context, io *IO, args []string) error {
			if err := requireArgs(args); err != nil {
				return err
			}

			return a.view(func(s *session.Session) error {
				printTree(io, s.Model().Tree())

				return nil
			})
		},
	}
}

func printTree(io *IO, t *ancestry.Tree) {
	for _, slot := range ancestry.Slots() {
		n := t.Node(slot)
		indent := strings.Repeat("  ", slot.Layer())

		if n.Empty() {
			io.Printf("%s%-6s  (%s)\n", indent, slot, n.Name)

			continue
		}

		io.Printf("%s%-6s  %s [%d]\n", indent, slot, n.Name, n.Identity)
	}
}
