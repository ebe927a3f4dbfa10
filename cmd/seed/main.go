package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/shiftguard/backend/internal/config"
	"github.com/shiftguard/backend/internal/repository"
	"github.com/shiftguard/backend/internal/seed"
	"github.com/shiftguard/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random employees, 2: insert full demo dataset)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open only builds the pool object, it does not dial, so ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("employee count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				employee, err := utils.GenerateRandomEmployee(cfg.Seed.Employee.Password, "example.com")
				if err != nil {
					slog.Error("failed to generate employee", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateEmployee(employee); err != nil {
					slog.Error("failed to insert employee", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("employees inserted", slog.Int("count", n-cnt))
		}
	case 2:
		seed.SeedDemoData(cfg, repo)
	default:
		slog.Error("unknown operation")
	}
}
