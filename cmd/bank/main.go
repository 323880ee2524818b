// bank is a small command line front end for the in-memory bank. Each run
// opens the seeded accounts from configuration, applies the requested
// command and prints the resulting balances.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"bank_ledger/internal/config"
	"bank_ledger/internal/domain"
	"bank_ledger/internal/processor"
	"bank_ledger/internal/repository/memory"
	"bank_ledger/pkg/crypto"
	"bank_ledger/pkg/metrics"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	appName = "bank"
)

type arguments struct {
	command     string
	envFile     string
	showMetrics bool
	from        string
	to          string
	amount      string
}

func parseArgs(args []string) (*arguments, error) {
	app := kingpin.New(appName, "Open the configured accounts and move money between them.")
	app.Version("0.1.0")

	a := &arguments{}
	app.Flag("env-file", "Optional .env file read before the environment.").Default(".env").StringVar(&a.envFile)
	app.Flag("metrics", "Print the collected metrics before exiting.").BoolVar(&a.showMetrics)

	balances := app.Command("balances", "List every account and its balance.").Default()
	transfer := app.Command("transfer", "Transfer an amount between two account owners.")
	transfer.Flag("from", "Owner of the account to debit.").Required().StringVar(&a.from)
	transfer.Flag("to", "Owner of the account to credit.").Required().StringVar(&a.to)
	transfer.Flag("amount", "Decimal amount to move.").Required().StringVar(&a.amount)

	command, err := app.Parse(args)
	if err != nil {
		return nil, err
	}

	switch command {
	case balances.FullCommand(), transfer.FullCommand():
		a.command = command
	default:
		return nil, errors.Errorf("unknown command %q", command)
	}
	return a, nil
}

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("%s, try --help", err)
	}

	if err := run(context.Background(), args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", appName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args *arguments, out io.Writer) error {
	cfg, err := config.Load(args.envFile)
	if err != nil {
		return errors.WithMessage(err, "could not load configuration")
	}

	logger := setupLogger(cfg.LogLevel)
	logger.Info("Starting application",
		slog.String("name", appName),
		slog.String("bank", cfg.BankName))

	metricsCollector := metrics.NewMetricsCollector(logger)
	proc, err := setupProcessor(ctx, cfg, metricsCollector, logger)
	if err != nil {
		return err
	}

	if args.command == "transfer" {
		if err := transfer(ctx, proc, args, out); err != nil {
			return err
		}
	}

	printBalances(out, proc.Bank())

	if args.showMetrics {
		if err := printMetrics(out, metricsCollector); err != nil {
			return err
		}
	}
	return nil
}

func setupLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func setupProcessor(
	ctx context.Context,
	cfg config.Config,
	metricsCollector *metrics.MetricsCollector,
	logger *slog.Logger,
) (*processor.TransferProcessor, error) {
	bank := domain.NewBank()
	bank.SetName(cfg.BankName)

	proc := processor.NewTransferProcessor(
		bank,
		memory.NewAccountRepository(),
		memory.NewTransferRepository(),
		crypto.NewSigner(cfg.SigningKey, logger),
		metricsCollector,
		logger,
	)

	for _, seed := range cfg.SeedAccounts {
		if _, err := proc.OpenAccount(ctx, seed.Owner, seed.Balance); err != nil {
			return nil, errors.WithMessagef(err, "could not open account for %s", seed.Owner)
		}
	}
	return proc, nil
}

func transfer(ctx context.Context, proc *processor.TransferProcessor, args *arguments, out io.Writer) error {
	amount, err := decimal.NewFromString(args.amount)
	if err != nil {
		return errors.Wrapf(err, "invalid amount %q", args.amount)
	}

	origin, ok := proc.Bank().FindAccount(args.from)
	if !ok {
		return errors.Errorf("no account held by %q", args.from)
	}
	destination, ok := proc.Bank().FindAccount(args.to)
	if !ok {
		return errors.Errorf("no account held by %q", args.to)
	}

	receipt, err := proc.ProcessTransfer(ctx, processor.TransferRequest{
		OriginID:      origin.ID(),
		DestinationID: destination.ID(),
		Amount:        amount,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "transfer %s: %s from %s to %s (%s)\nsignature %s\n\n",
		receipt.ID, receipt.Amount, origin.Owner(), destination.Owner(), receipt.Status, receipt.Signature)
	return nil
}

func printBalances(out io.Writer, bank *domain.Bank) {
	fmt.Fprintf(out, "%s\n", bank.Name())
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OWNER\tBALANCE\tACCOUNT")
	for _, account := range bank.Accounts() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", account.Owner(), account.Balance(), account.ID())
	}
	fmt.Fprintf(w, "TOTAL\t%s\t\n", bank.TotalBalance())
	w.Flush()
}

func printMetrics(out io.Writer, collector *metrics.MetricsCollector) error {
	samples, err := collector.Samples()
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, s := range samples {
		if s.Labels != "" {
			fmt.Fprintf(out, "%s{%s} %g\n", s.Name, s.Labels, s.Value)
		} else {
			fmt.Fprintf(out, "%s %g\n", s.Name, s.Value)
		}
	}
	return nil
}
