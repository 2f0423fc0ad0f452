package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"rental-backoffice/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"ariga.io/atlas/sql/migrate"
)

const migrateTimeout = 5 * time.Minute

func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	bin := flag.String("atlas", "atlas", "atlas binary")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [flags] apply|status|hash\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "apply"
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := run(ctx, cmd, *dir, *bin); err != nil {
		slog.Error("migration failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd, dir, bin string) error {
	if cmd == "hash" {
		return writeSum(dir)
	}

	cfg, err := config.LoadDBConfig()
	if err != nil {
		return err
	}
	client, err := atlasexec.NewClient(".", bin)
	if err != nil {
		return fmt.Errorf("failed to init atlas client: %w", err)
	}
	dirURL := "file://" + dir

	switch cmd {
	case "apply":
		res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
			URL:    cfg.BuildDSN(),
			DirURL: dirURL,
		})
		if err != nil {
			return err
		}
		slog.Info("migrations applied",
			"applied", len(res.Applied),
			"from", res.Current,
			"to", res.Target,
		)
	case "status":
		res, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{
			URL:    cfg.BuildDSN(),
			DirURL: dirURL,
		})
		if err != nil {
			return err
		}
		slog.Info("migration status",
			"status", res.Status,
			"current", res.Current,
			"next", res.Next,
			"pending", len(res.Pending),
		)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// writeSum regenerates atlas.sum after a migration file is added or edited.
func writeSum(dir string) error {
	local, err := migrate.NewLocalDir(dir)
	if err != nil {
		return err
	}
	sum, err := local.Checksum()
	if err != nil {
		return err
	}
	if err := migrate.WriteSumFile(local, sum); err != nil {
		return err
	}
	slog.Info("atlas.sum written", "dir", dir, "files", len(sum))
	return nil
}
