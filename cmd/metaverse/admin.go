package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/chiraggahujaa/metaverse-workspace/internal/core/domain"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/ports"
	"github.com/chiraggahujaa/metaverse-workspace/internal/core/service"
	"github.com/chiraggahujaa/metaverse-workspace/internal/infrastructure/session"
)

// bootstrapActor stands in for an administrator session when accounts are
// created from the command line.
var bootstrapActor = &domain.Claims{UserID: "cli", Username: "cli", Role: domain.RoleAdmin}

// NewAdminCmd creates the admin subcommand.
func NewAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var in ports.SignUpInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		Long:  `Create an administrator through the regular sign-up rules. Use it to bootstrap the first admin.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdminCreate(cmd, in)
		},
	}
	create.Flags().StringVar(&in.Email, "email", "", "account email")
	create.Flags().StringVar(&in.Username, "username", "", "account username")
	create.Flags().StringVar(&in.Password, "password", "", "account password")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}

func runAdminCreate(cmd *cobra.Command, in ports.SignUpInput) error {
	ctx := cmd.Context()
	cfg, log, err := setup(ctx)
	if err != nil {
		return err
	}

	repos, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close(context.Background())

	auth := service.NewAuthService(repos.users, session.NewCodec(cfg.Session.Secret, cfg.Session.TTL), service.Federation{}, log)
	user, err := createAdmin(ctx, auth, in)
	if err != nil {
		return err
	}

	cmd.Printf("created admin %s (%s)\n", user.Username, user.ID)
	return nil
}

// createAdmin signs up an administrator. Rule and conflict failures come back
// as their client message alone.
func createAdmin(ctx context.Context, auth ports.AuthService, in ports.SignUpInput) (*domain.User, error) {
	in.Role = domain.RoleAdmin
	user, err := auth.SignUp(ctx, bootstrapActor, in)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) || errors.Is(err, domain.ErrConflict) {
			return nil, errors.New(domain.Message(err))
		}
		return nil, err
	}
	return user, nil
}
