package system

import (
	"bytes"
	"testing"

	"github.com/julianstephens/tutr/internal/cli"
	"github.com/julianstephens/tutr/internal/cli/clitest"
	"github.com/julianstephens/tutr/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	env := clitest.New(t)
	return env.Ctx, env.Store, env.Out
}

func seedStore(t *testing.T, store *sqlite.Store) {
	t.Helper()
	(&clitest.Env{Store: store}).Seed(t)
}
