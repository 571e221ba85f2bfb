package exports

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/transfer"
)

// fileSystem is swapped for an in-memory one in tests.
var fileSystem afero.Fs = afero.NewOsFs()

type ExportCmd struct {
	Format string `short:"f" help:"Output format (json|yaml). Inferred from --out when omitted."`
	Out    string `short:"o" help:"Output file (defaults to tutr-backup-YYYY-MM-DD.<format> in the current directory)."`
}

func (c *ExportCmd) Validate() error {
	if c.Format != "" {
		if _, err := transfer.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	return nil
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	f, err := c.format()
	if err != nil {
		return err
	}
	path := c.Out
	if path == "" {
		path = transfer.DefaultFileName(ctx.Clock(), f)
	}

	state, err := transfer.Export(fileSystem, path, f, ctx.Store)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d students, %d classes, %d payments and %d reminders to %s\n",
		len(state.Students), len(state.Classes), len(state.SalaryRecords), len(state.Reminders), path)
	return nil
}

func (c *ExportCmd) format() (transfer.Format, error) {
	switch {
	case c.Format != "":
		return transfer.ParseFormat(c.Format)
	case c.Out != "" && filepath.Ext(c.Out) != "":
		return transfer.FormatFromPath(c.Out)
	default:
		return transfer.JSON, nil
	}
}

// ImportCmd replaces every student, class, payment and reminder with the
// contents of a previous export.
type ImportCmd struct {
	File string `arg:"" help:"JSON or YAML file written by export."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Validate() error {
	_, err := transfer.FormatFromPath(c.File)
	return err
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if _, err := fileSystem.Stat(c.File); err != nil {
		return fmt.Errorf("cannot read %s: %w", c.File, err)
	}
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Replace all current data with %s?", c.File))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	res, err := transfer.Import(fileSystem, c.File, ctx.Store)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		ctx.Printf("⚠ %s\n", w)
	}
	ctx.Printf("✓ Imported %d students, %d classes, %d payments and %d reminders\n",
		len(res.State.Students), len(res.State.Classes), len(res.State.SalaryRecords), len(res.State.Reminders))
	return nil
}
