package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/dig"
	"golang.org/x/term"

	"github.com/gurumantra/backend/apps/api/di"
	"github.com/gurumantra/backend/core"
	"github.com/gurumantra/backend/core/credit"
	"github.com/gurumantra/backend/core/notification"
	"github.com/gurumantra/backend/core/user"
	"github.com/gurumantra/backend/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	migrateFunc      = runMigrations     // mockable

	errHelp         = errors.New("help provided")
	errNoRecipients = errors.New("no mail recipients configured")
	errNotPostgres  = errors.New("migrations only apply to the postgres engine")
)

type commandLine struct {
	container *dig.Container
	out       io.Writer
}

func newCommandLine(c *dig.Container, out io.Writer) *commandLine {
	return &commandLine{container: c, out: out}
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Guru Mantra administration commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	root.AddCommand(cli.migrateCmd(), cli.resetPasswordCmd(), cli.setCreditsCmd(), cli.appreciateCmd())
	return root
}

// run executes the command line; args exclude the program name.
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	if err != nil && strings.HasPrefix(err.Error(), "unknown command") {
		_ = root.Usage()
		return errHelp
	}
	return err
}

// withStores runs fn through the container and closes the stores afterwards.
func (cli *commandLine) withStores(fn interface{}) error {
	var stores *di.Stores
	if err := cli.container.Invoke(func(s *di.Stores) { stores = s }); err != nil {
		return dig.RootCause(err)
	}
	defer func() { _ = stores.Close() }()

	if err := cli.container.Invoke(fn); err != nil {
		return dig.RootCause(err)
	}
	return nil
}

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command (up, down, status, ...) on the postgres database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.container.Invoke(func(conf *core.Config) error {
				if conf.Database.Engine != core.EnginePostgres {
					return errNotPostgres
				}
				return migrateFunc(cmd.Context(), conf, args)
			})
		},
	}
}

func runMigrations(ctx context.Context, conf *core.Config, args []string) error {
	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return err
	}
	db, err := database.OpenPostgres(ctx, conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return database.Migrate(db.DB, args...)
}

func (cli *commandLine) resetPasswordCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resetpassword --email EMAIL",
		Short: "Reset a user's password; the password is prompted next",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				_ = cmd.Usage()
				return errHelp
			}
			fmt.Fprint(cli.out, "Enter password:")
			pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
			fmt.Fprintln(cli.out)
			if err != nil {
				return err
			}
			if len(pwd) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.withStores(func(svc user.ServiceInterface) error {
				return svc.ResetPassword(cmd.Context(), email, string(pwd))
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "the user's email")
	return cmd
}

func (cli *commandLine) setCreditsCmd() *cobra.Command {
	var (
		userID string
		points int
	)
	cmd := &cobra.Command{
		Use:   "setcredits --user USER_ID --points N",
		Short: "Set the credit points of a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" || !cmd.Flags().Changed("points") {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.withStores(func(usrSvc user.ServiceInterface, credits credit.Repository) error {
				usr, err := usrSvc.GetByID(cmd.Context(), userID)
				if err != nil {
					return err
				}
				cp, err := credits.SetCreditPoints(cmd.Context(), usr.ID, points)
				if err != nil {
					return err
				}
				fmt.Fprintf(cli.out, "%s (%s) now has %d credit points\n", usr.Username, usr.Email, cp.CreditPoints)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "the user's ID")
	cmd.Flags().IntVar(&points, "points", 0, "the credit points")
	return cmd
}

func (cli *commandLine) appreciateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "appreciate",
		Short: "Send the teacher appreciation mail to the configured recipients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli.container.Invoke(func(svc *notification.Service, mailSvc core.EmailService) error {
				if !svc.SendAppreciation() {
					return errNoRecipients
				}
				mailSvc.Wait()
				fmt.Fprintln(cli.out, "appreciation mail sent")
				return nil
			})
		},
	}
}
