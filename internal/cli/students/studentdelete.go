package students

import (
	"fmt"

	"github.com/julianstephens/tutr/internal/cli"
)

type StudentDeleteCmd struct {
	Student string `arg:"" help:"Student id, id prefix or name."`
	Yes     bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *StudentDeleteCmd) Run(ctx *cli.Context) error {
	st, err := ctx.ResolveStudent(c.Student)
	if err != nil {
		return err
	}

	if !c.Yes {
		classes, err := ctx.Store.GetClassesForStudent(st.ID)
		if err != nil {
			return fmt.Errorf("failed to get classes: %w", err)
		}
		prompt := fmt.Sprintf("Delete %s and their %d class(es), reminders and payments?", st.Name, len(classes))
		ok, err := ctx.Confirm(prompt)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.DeleteStudent(st.ID); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	ctx.Printf("✓ Student deleted: %s\n", st.Name)
	return nil
}
