package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Morymirco/admin.zalama/db"
	"github.com/Morymirco/admin.zalama/lib"
	"github.com/Morymirco/admin.zalama/lib/service"
	"github.com/Morymirco/admin.zalama/notify"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// operator jobs run against the same database as the server, usually from cron
func main() {
	var svc *service.ZalamaService

	rootCmd := &cobra.Command{
		Use:          "remboursement-jobs",
		Short:        "Scheduled reimbursement jobs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			svc, err = newService()
			return err
		},
	}

	rootCmd.AddCommand(syncCmd(&svc))
	rootCmd.AddCommand(markOverdueCmd(&svc))
	rootCmd.AddCommand(createAdminCmd(&svc))

	if err := rootCmd.Execute(); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func newService() (*service.ZalamaService, error) {
	c := &service.Config{}

	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	logger := lib.Logger(c.LogFilePath)

	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{Dsn: c.SentryDSN}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}

	// the server owns the migrations, jobs only need the connection
	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("initializing db connection: %w", err)
	}

	notifyConfig, err := notify.LoadConfig()
	if err != nil {
		return nil, err
	}

	return &service.ZalamaService{
		Config:              c,
		DB:                  dbConn,
		Logger:              logger,
		RemboursementPubSub: service.NewPubsub(),
		Notifier:            notify.New(notifyConfig),
	}, nil
}

func syncCmd(svc **service.ZalamaService) *cobra.Command {
	var requestID string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Validate the advance requests of completed transactions and create missing reimbursements",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := (*svc).SyncPaymentStatus(cmd.Context(), requestID)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().StringVar(&requestID, "request-id", "", "only synchronise this advance request")
	return cmd
}

func markOverdueCmd(svc **service.ZalamaService) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-overdue",
		Short: "Move pending reimbursements past their deadline to EN_RETARD",
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := (*svc).MarquerEnRetard(cmd.Context(), time.Now())
			if err != nil {
				return err
			}
			cmd.Printf("%d remboursements marqués en retard\n", count)
			return nil
		},
	}
}

func createAdminCmd(svc **service.ZalamaService) *cobra.Command {
	var email, nom, password, role string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a back-office account able to call the API",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := (*svc).CreateAdminUser(cmd.Context(), email, nom, password, role)
			if err != nil {
				return err
			}
			cmd.Printf("Admin %s created with id %s\n", admin.Email, admin.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&nom, "nom", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", "admin", "role stored in the token")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
