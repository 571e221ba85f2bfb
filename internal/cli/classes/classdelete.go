package classes

import (
	"fmt"

	"github.com/julianstephens/tutr/internal/cli"
)

type ClassDeleteCmd struct {
	Class string `arg:"" help:"Class id, id prefix or subject."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ClassDeleteCmd) Run(ctx *cli.Context) error {
	cl, err := ctx.ResolveClass(c.Class)
	if err != nil {
		return err
	}

	if !c.Yes {
		reminders, err := ctx.Store.GetRemindersForClass(cl.ID)
		if err != nil {
			return fmt.Errorf("failed to get reminders: %w", err)
		}
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %s (%s) and its %d reminder(s)?", cl.Subject, cli.FormatSchedule(cl), len(reminders)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteClass(cl.ID); err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	ctx.Printf("✓ Class deleted: %s\n", cl.Subject)
	return nil
}
