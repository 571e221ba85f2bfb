package system

import (
	"fmt"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/validation"
)

type ValidateCmd struct {
	Fix bool `help:"Delete duplicate reminders, keeping one of each."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	state, err := ctx.Store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	ctx.Println("Validating timetable...")
	result := validation.New().ValidateClasses(state.Classes, state.Reminders)

	ctx.Println()
	ctx.Println(result.FormatReport())

	if cmd.Fix && result.HasConflicts() {
		actions := validation.AutoFixDuplicateReminders(result.Conflicts, ctx.Store.DeleteReminder)
		if len(actions) == 0 {
			ctx.Println("Nothing to fix automatically. Overlapping classes must be edited by hand.")
		}
		for _, a := range actions {
			ctx.Printf("✓ %s\n", a.Action)
		}
	}
	return nil
}
