package main

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kind-link-bridge/internal/core/config"
	"kind-link-bridge/internal/core/database"
	"kind-link-bridge/internal/core/logger"
	"kind-link-bridge/internal/domain"
	"kind-link-bridge/internal/repo"
	"kind-link-bridge/internal/service"
)

// admin holds what every subcommand needs once the root pre-run is done.
type admin struct {
	cfgPath string
	out     io.Writer

	cfg   *config.Config
	log   *zap.Logger
	flush func()
	db    *gorm.DB
}

// execute runs args against a fresh root command and always releases the
// database handle, including when a subcommand fails.
func execute(out io.Writer, args []string) error {
	root, a := newRootCmd(out)
	root.SetArgs(args)
	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func newRootCmd(out io.Writer) (*cobra.Command, *admin) {
	a := &admin{out: out}
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Operator tools for the kind-link-bridge store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.open()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", os.Getenv("CONFIG_PATH"), "path to the YAML config")

	root.AddCommand(a.migrateCmd(), a.usersCmd(), a.dashboardCmd())
	return root, a
}

func (a *admin) open() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log, a.flush = logger.New(logger.Options{Level: "warn", Out: os.Stderr})
	a.db, err = database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Writer:             logger.GormWriter(a.log),
	})
	return errors.Wrap(err, "open database")
}

func (a *admin) close() error {
	if a.flush != nil {
		defer a.flush()
	}
	if a.db == nil {
		return nil
	}
	db := a.db
	a.db = nil
	return database.Close(db)
}

func (a *admin) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *admin) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and activity tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.Migrate(a.db); err != nil {
				return errors.Wrap(err, "migrate")
			}
			a.log.Info("migrate done", zap.String("driver", a.cfg.DB.Driver))
			_, err := io.WriteString(a.out, "migrated\n")
			return err
		},
	}
}

func (a *admin) usersCmd() *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users (password hashes are never printed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 || limit > 1000 {
				limit = 50
			}
			if offset < 0 {
				offset = 0
			}
			users, total, err := repo.NewUserRepo(a.db).List(cmd.Context(), offset, limit)
			if err != nil {
				return err
			}
			return a.print(struct {
				Total int64         `json:"total"`
				Items []domain.User `json:"items"`
			}{Total: total, Items: users})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "page size (1-1000)")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func (a *admin) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <user_id>",
		Short: "Print a user's dashboard as the HTTP endpoint would",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return errors.Errorf("invalid user_id %q", args[0])
			}
			users := repo.NewUserRepo(a.db)
			acts := repo.NewActivityRepo(a.db)
			var snap domain.Snapshotter
			if a.cfg.Dashboard.SnapshotReads {
				snap = acts
			}
			d, err := service.NewDashboardService(users, acts, snap).Get(cmd.Context(), id)
			if err != nil {
				return errors.Wrapf(err, "user %d", id)
			}
			return a.print(d)
		},
	}
}
