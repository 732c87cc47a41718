// threadctl is a small operator CLI for the thread document store: list
// stored threads, dump a thread's conversation, or purge everything.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/coldcanuk/MyChatApp/internal/config"
	"github.com/coldcanuk/MyChatApp/internal/docstore"
	"github.com/coldcanuk/MyChatApp/internal/store"
)

var (
	titleColor = color.New(color.FgMagenta, color.Bold)
	idColor    = color.New(color.FgCyan)
	userColor  = color.New(color.Bold)
	aiColor    = color.New(color.FgCyan)
	warnColor  = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:     "threadctl",
	Short:   "Inspect and manage stored chat threads",
	Version: "0.1.0",
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	docs, err := newDocstore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open document store: %v\n", err)
		os.Exit(1)
	}
	defer docs.Close()

	threads := store.New(docs)

	rootCmd.AddCommand(newListCmd(threads))
	rootCmd.AddCommand(newDumpCmd(threads))
	rootCmd.AddCommand(newPurgeCmd(threads))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newDocstore(cfg *config.Config) (docstore.Store, error) {
	if cfg.DocstoreDriver == "chroma" {
		return docstore.NewChromaStore(cfg.ChromaURL, cfg.ChromaCollection, cfg.RequestTimeout), nil
	}
	return docstore.NewSQLiteStore(cfg.DatabaseURL)
}

func newListCmd(threads *store.ThreadStore) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored thread ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := threads.ListAll(context.Background())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				warnColor.Println("No threads stored.")
				return nil
			}
			titleColor.Printf("%d thread(s)\n", len(ids))
			for i, id := range ids {
				fmt.Printf("%d. ", i+1)
				idColor.Println(id)
			}
			return nil
		},
	}
}

func newDumpCmd(threads *store.ThreadStore) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <thread_id>",
		Short: "Print a thread's conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thread, err := threads.Load(context.Background(), args[0])
			if err != nil {
				return err
			}
			titleColor.Printf("Thread %s\n", thread.ID)
			fmt.Printf("created: %s  last_updated: %s\n",
				thread.Created.Format("2006-01-02 15:04:05"),
				thread.LastUpdated.Format("2006-01-02 15:04:05"))
			for _, msg := range thread.Messages {
				line := fmt.Sprintf("[%s %s] %s: %s\n",
					msg.TimeState, msg.TimeValue.Format("15:04:05"), msg.Role, msg.Content)
				if msg.Role == "user" {
					userColor.Print(line)
				} else {
					aiColor.Print(line)
				}
			}
			return nil
		},
	}
}

func newPurgeCmd(threads *store.ThreadStore) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every stored thread",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ids, err := threads.ListAll(ctx)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				warnColor.Println("No threads to delete.")
				return nil
			}
			if !yes {
				return fmt.Errorf("refusing to delete %d thread(s) without --yes", len(ids))
			}
			for _, id := range ids {
				if err := threads.Delete(ctx, id); err != nil {
					return err
				}
			}
			fmt.Printf("Deleted %d thread(s).\n", len(ids))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
