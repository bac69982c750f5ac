package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/projectvault/internal/api"
)

// ErrUsage reports a malformed command line.
var ErrUsage = errors.New("usage error")

// Vault is implemented by *vaultclient.GRPCClient.
type Vault interface {
	Ping(ctx context.Context) error
	CreateSecret(ctx context.Context, projectID, name, value, typ string) (*api.Secret, error)
	ListSecrets(ctx context.Context, projectID string) ([]*api.Secret, error)
	RevealSecret(ctx context.Context, id string) (*api.RevealSecretResponse, error)
	UpdateSecret(ctx context.Context, req *api.UpdateSecretRequest) (*api.Secret, error)
	DeleteSecret(ctx context.Context, id string) error
}

type App struct {
	vault  Vault
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func NewApp(v Vault, in io.Reader, out, errOut io.Writer) *App {
	return &App{vault: v, reader: bufio.NewReader(in), out: out, errOut: errOut}
}

type command func(a *App, ctx context.Context, args []string) error

var commands = map[string]command{
	"genkey": (*App).genKey,
	"token":  (*App).token,
	"ping":   (*App).ping,
	"list":   (*App).list,
	"create": (*App).create,
	"reveal": (*App).reveal,
	"update": (*App).update,
	"delete": (*App).delete,
}

// Run executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command given (try genkey, token, ping, list, create, reveal, update, delete)", ErrUsage)
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return cmd(a, ctx, args[1:])
}
