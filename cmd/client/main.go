// cmd/client is the CLI entry-point built with Cobra.
//
// Usage:
//
//	logcli append "hello world" --write-concern 2   --server http://localhost:8080
//	logcli read                                     --server http://localhost:8080
//	logcli health                                    --server http://localhost:8080
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"replicated-log/internal/client"
)

var (
	serverAddr   string
	timeout      time.Duration
	writeConcern int
)

func main() {
	root := &cobra.Command{
		Use:   "logcli",
		Short: "CLI client for the replicated log",
	}

	root.PersistentFlags().StringVarP(&serverAddr, "server", "s",
		"http://localhost:8080", "node address")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second,
		"HTTP request timeout")

	root.AddCommand(appendCmd(), readCmd(), healthCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ─── append ───────────────────────────────────────────────────────────────────

func appendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append <message>",
		Short: "Append a message to the log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			entry, err := c.Append(context.Background(), args[0], writeConcern)
			if err != nil {
				return err
			}
			prettyPrint(entry)
			return nil
		},
	}
	cmd.Flags().IntVarP(&writeConcern, "write-concern", "w", 1,
		"number of nodes (including the primary) that must ack before returning")
	return cmd
}

// ─── read ─────────────────────────────────────────────────────────────────────

func readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Read every entry in the log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			entries, err := c.ReadAll(context.Background())
			if err != nil {
				return err
			}
			prettyPrint(entries)
			return nil
		},
	}
}

// ─── health ───────────────────────────────────────────────────────────────────

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Report quorum status and secondary health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			resp, err := c.Health(context.Background())
			if err != nil {
				return err
			}
			prettyPrint(resp)
			return nil
		},
	}
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func prettyPrint(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(data))
}
