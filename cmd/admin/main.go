// Admin tooling for the shop database: migrations, seed data, accounts and
// token secrets.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/irsalhamdi/shop-api/config"
	"github.com/irsalhamdi/shop-api/core/category"
	"github.com/irsalhamdi/shop-api/core/claims"
	"github.com/irsalhamdi/shop-api/core/product"
	"github.com/irsalhamdi/shop-api/core/user"
	"github.com/irsalhamdi/shop-api/database"
	"github.com/irsalhamdi/shop-api/random"
	"github.com/irsalhamdi/shop-api/validate"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := newRootCmd(log).Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	var dbCfg config.DB

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Administrative tasks for the shop api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	disableTLS, _ := strconv.ParseBool(env("SHOP_DB_DISABLE_TLS", "true"))

	pf := root.PersistentFlags()
	pf.StringVar(&dbCfg.User, "db-user", env("SHOP_DB_USER", "postgres"), "database user")
	pf.StringVar(&dbCfg.Password, "db-password", env("SHOP_DB_PASSWORD", "postgres"), "database password")
	pf.StringVar(&dbCfg.Host, "db-host", env("SHOP_DB_HOST", "localhost:5432"), "database host:port")
	pf.StringVar(&dbCfg.Name, "db-name", env("SHOP_DB_NAME", "shop"), "database name")
	pf.BoolVar(&dbCfg.DisableTLS, "db-disable-tls", disableTLS, "connect without TLS")

	open := func(ctx context.Context) (*sqlx.DB, error) {
		dbCfg.MaxIdleConns = 1
		dbCfg.MaxOpenConns = 2
		db, err := database.Open(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		if err := database.StatusCheck(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("database not ready: %w", err)
		}
		return db, nil
	}

	root.AddCommand(
		newMigrateCmd(log, open),
		newRollbackCmd(log, open),
		newSeedCmd(log, open),
		newUserAddCmd(log, open),
		newGenKeyCmd(),
	)
	return root
}

type opener func(ctx context.Context) (*sqlx.DB, error)

func newMigrateCmd(log logrus.FieldLogger, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info("migrations complete")
			return nil
		},
	}
}

func newRollbackCmd(log logrus.FieldLogger, open opener) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Revert applied migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Rollback(db, steps); err != nil {
				return err
			}
			log.WithField("steps", steps).Info("rollback complete")
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert")
	return cmd
}

func newSeedCmd(log logrus.FieldLogger, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample categories and products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := seed(ctx, db, time.Now().UTC())
			if err != nil {
				return err
			}
			log.WithField("products", n).Info("seed complete")
			return nil
		},
	}
}

type seedProduct struct {
	name  string
	price string
	stock *int
}

func intp(v int) *int { return &v }

var catalog = map[string][]seedProduct{
	"Electronics": {
		{"Mechanical keyboard", "89.90", intp(25)},
		{"USB-C hub", "34.50", intp(100)},
		{"Noise cancelling headphones", "199.00", intp(10)},
	},
	"Books": {
		{"The Go Programming Language", "39.99", nil},
		{"Designing Data-Intensive Applications", "45.00", nil},
	},
	"Home": {
		{"Espresso cups, set of 4", "18.00", intp(40)},
	},
}

func seed(ctx context.Context, db *sqlx.DB, now time.Time) (int, error) {
	var n int
	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		for name, prds := range catalog {
			cat, err := category.Create(ctx, tx, category.CategoryNew{Name: name}, now)
			if err != nil {
				return fmt.Errorf("creating category[%s]: %w", name, err)
			}

			for _, sp := range prds {
				np := product.ProductNew{
					Name:       sp.name,
					Price:      decimal.RequireFromString(sp.price),
					Stock:      sp.stock,
					CategoryID: &cat.ID,
				}
				if err := validate.Check(np); err != nil {
					return fmt.Errorf("validating product[%s]: %w", sp.name, err)
				}
				if _, err := product.Create(ctx, tx, np, now); err != nil {
					return fmt.Errorf("creating product[%s]: %w", sp.name, err)
				}
				n++
			}
		}
		return nil
	})
	return n, err
}

func newUserAddCmd(log logrus.FieldLogger, open opener) *cobra.Command {
	var nu user.UserNew
	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			nu.Role = claims.RoleAdmin
			if err := validate.Check(nu); err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			usr, err := user.Create(ctx, db, nu, time.Now().UTC())
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"user_id": usr.ID, "email": usr.Email}).Info("admin created")
			return nil
		},
	}
	cmd.Flags().StringVar(&nu.Name, "name", "", "account name")
	cmd.Flags().StringVar(&nu.Email, "email", "", "account email")
	cmd.Flags().StringVar(&nu.Password, "password", "", "account password")
	return cmd
}

func newGenKeyCmd() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Print a random secret for SHOP_AUTH_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := random.StringSecure(length)
			if err != nil {
				return fmt.Errorf("generating key: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", 48, "secret length")
	return cmd
}
