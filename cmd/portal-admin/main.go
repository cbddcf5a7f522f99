// Command portal-admin manages administrator rights from the command line.
//
//	portal-admin [-config path] [-backend relational|document] grant-admin <email>
//	portal-admin [-config path] [-backend relational|document] revoke-admin <email>
//	portal-admin [-config path] [-backend relational|document] list-admins
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"complaint-portal/config"
	"complaint-portal/internal/apperr"
	"complaint-portal/internal/database"
	"complaint-portal/internal/document"
	"complaint-portal/internal/model"
	"complaint-portal/internal/repository"
	"complaint-portal/internal/service"
)

type admins interface {
	GrantAdmin(ctx context.Context, email string) error
	RevokeAdmin(ctx context.Context, email string) error
	ListAdmins(ctx context.Context) ([]model.AdminView, error)
}

type relationalAdmins struct{ svc *service.AdminService }

func (r relationalAdmins) GrantAdmin(ctx context.Context, email string) error {
	_, err := r.svc.GrantAdmin(ctx, email)
	return err
}

func (r relationalAdmins) RevokeAdmin(ctx context.Context, email string) error {
	return r.svc.RevokeAdmin(ctx, email)
}

func (r relationalAdmins) ListAdmins(ctx context.Context) ([]model.AdminView, error) {
	return r.svc.ListAdmins(ctx)
}

type documentAdmins struct{ store *document.Store }

func (d documentAdmins) GrantAdmin(ctx context.Context, email string) error {
	return d.store.GrantAdmin(ctx, email)
}

func (d documentAdmins) RevokeAdmin(ctx context.Context, email string) error {
	return d.store.RevokeAdmin(ctx, email)
}

func (d documentAdmins) ListAdmins(ctx context.Context) ([]model.AdminView, error) {
	return d.store.AdminViews(ctx)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: portal-admin [-config path] [-backend relational|document] grant-admin <email> | revoke-admin <email> | list-admins")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "config/config.json", "path to the config file")
	backend := flag.String("backend", "relational", "store to operate on: relational or document")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store admins
	switch *backend {
	case "relational":
		sqlDB, db, err := database.Open(cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer sqlDB.Close()
		store = relationalAdmins{svc: service.NewAdminService(
			repository.NewCitizenRepository(db),
			repository.NewCategoryRepository(db),
			repository.NewOfficialRepository(db),
			repository.NewAdminRepository(db),
		)}
	case "document":
		client, docs, err := document.Connect(ctx, cfg.Mongo)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer client.Disconnect(context.Background())
		store = documentAdmins{store: docs}
	default:
		usage()
		os.Exit(2)
	}

	if err := run(ctx, store, args); err != nil {
		if _, msg, ok := apperr.Public(err); ok {
			fmt.Fprintln(os.Stderr, msg)
			os.Exit(1)
		}
		log.Fatalf("%s: %v", args[0], err)
	}
}

func run(ctx context.Context, store admins, args []string) error {
	switch args[0] {
	case "grant-admin", "revoke-admin":
		if len(args) != 2 {
			return apperr.Validationf("an email address is required")
		}
		if args[0] == "grant-admin" {
			if err := store.GrantAdmin(ctx, args[1]); err != nil {
				return err
			}
			fmt.Printf("%s is now an admin\n", args[1])
			return nil
		}
		if err := store.RevokeAdmin(ctx, args[1]); err != nil {
			return err
		}
		fmt.Printf("%s is no longer an admin\n", args[1])
		return nil

	case "list-admins":
		views, err := store.ListAdmins(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USER ID\tEMAIL\tNAME")
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.UserID, v.Email, v.Name)
		}
		return w.Flush()

	default:
		return apperr.Validationf("unknown command " + args[0])
	}
}
