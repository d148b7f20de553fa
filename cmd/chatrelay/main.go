package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	chatcmder "github.com/papercomputeco/chatrelay/cmd/chatrelay/chat"
	servecmder "github.com/papercomputeco/chatrelay/cmd/chatrelay/serve"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chatrelay",
		Short: "Relay chat messages to a text-generation inference endpoint",
		Long: `chatrelay forwards a chat message to a text-generation inference
endpoint and returns the reply with the extended conversation history.

The deployed form is an AWS Lambda function (see cmd/lambda). This binary
runs the same handler locally and offers a terminal chat client.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
