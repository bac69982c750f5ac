package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/projectvault/internal/api"
	"github.com/dmitrijs2005/projectvault/internal/auth"
	"github.com/dmitrijs2005/projectvault/internal/cryptox"
)

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: -%s is required", ErrUsage, name)
	}
	return nil
}

func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func (a *App) genKey(ctx context.Context, args []string) error {
	if err := parse(a.flagSet("genkey"), args); err != nil {
		return err
	}
	key, err := cryptox.GenerateKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, key)
	return err
}

func (a *App) token(ctx context.Context, args []string) error {
	fs := a.flagSet("token")
	user := fs.String("user", "", "profile id to issue the token for")
	secret := fs.String("secret", "", "server JWT secret; falls back to $JWT_SECRET")
	ttl := fs.Duration("ttl", 15*time.Minute, "token validity, at most the server's access token TTL")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *secret == "" {
		*secret = os.Getenv("JWT_SECRET")
	}
	if err := required("user", *user); err != nil {
		return err
	}
	if err := required("secret", *secret); err != nil {
		return err
	}

	tok, err := auth.GenerateToken(*user, []byte(*secret), *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, tok)
	return err
}

func (a *App) ping(ctx context.Context, args []string) error {
	if err := parse(a.flagSet("ping"), args); err != nil {
		return err
	}
	if err := a.vault.Ping(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(a.out, "OK")
	return err
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := a.flagSet("list")
	project := fs.String("project", "", "project id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("project", *project); err != nil {
		return err
	}

	secrets, err := a.vault.ListSecrets(ctx, *project)
	if err != nil {
		return err
	}
	return printSecrets(a.out, secrets)
}

func (a *App) create(ctx context.Context, args []string) error {
	fs := a.flagSet("create")
	project := fs.String("project", "", "project id")
	name := fs.String("name", "", "secret name")
	typ := fs.String("type", "", "api_key, password, token, url or other")
	value := fs.String("value", "", "secret value (prompted when omitted)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("project", *project); err != nil {
		return err
	}
	if err := required("name", *name); err != nil {
		return err
	}

	v := *value
	if !isSet(fs, "value") {
		read, err := a.readValue()
		if err != nil {
			return err
		}
		v = read
	}

	s, err := a.vault.CreateSecret(ctx, *project, *name, v, *typ)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, s.ID)
	return err
}

func (a *App) reveal(ctx context.Context, args []string) error {
	fs := a.flagSet("reveal")
	id := fs.String("id", "", "secret id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}

	resp, err := a.vault.RevealSecret(ctx, *id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, resp.Value)
	return err
}

func (a *App) update(ctx context.Context, args []string) error {
	fs := a.flagSet("update")
	id := fs.String("id", "", "secret id")
	name := fs.String("name", "", "new name")
	typ := fs.String("type", "", "new type")
	value := fs.String("value", "", "new value")
	prompt := fs.Bool("prompt", false, "read the new value interactively")
	version := fs.Int64("version", 0, "expected current version (0 = unconditional)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}
	if *prompt && isSet(fs, "value") {
		return fmt.Errorf("%w: -value and -prompt are mutually exclusive", ErrUsage)
	}

	req := &api.UpdateSecretRequest{ID: *id, ExpectedVersion: *version}
	if isSet(fs, "name") {
		req.Name = name
	}
	if isSet(fs, "type") {
		req.Type = typ
	}
	if isSet(fs, "value") {
		req.Value = value
	}
	if *prompt {
		v, err := a.readValue()
		if err != nil {
			return err
		}
		req.Value = &v
	}
	if req.Name == nil && req.Type == nil && req.Value == nil {
		return fmt.Errorf("%w: nothing to update", ErrUsage)
	}

	s, err := a.vault.UpdateSecret(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "%s version %d\n", s.ID, s.Version)
	return err
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs := a.flagSet("delete")
	id := fs.String("id", "", "secret id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("id", *id); err != nil {
		return err
	}
	return a.vault.DeleteSecret(ctx, *id)
}

func printSecrets(w io.Writer, secrets []*api.Secret) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tVERSION\tUPDATED")
	for _, s := range secrets {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Type, s.Version, s.UpdatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
