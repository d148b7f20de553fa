package servecmder

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papercomputeco/chatrelay/forwarder"
	"github.com/papercomputeco/chatrelay/pkg/logger"
	"github.com/papercomputeco/chatrelay/server"
)

const serveLongDesc string = `Run the chat handler behind a local HTTP server.

The handler is the same one deployed as a Lambda function: POST /chat takes
{"message": ..., "conversationHistory": [...]} and answers with the reply and
the extended history. GET /health reports liveness.

The inference endpoint comes from INFERENCE_URL unless --inference-url or a
--config file sets it.

Examples:
  chatrelay serve
  chatrelay serve --listen :9000 --inference-url http://localhost:8000/generate
  chatrelay serve --config ./chatrelay.toml --debug`

const serveShortDesc string = "Serve the chat handler locally"

type serveCommander struct {
	listenAddr   string
	inferenceURL string
	configPath   string
	debug        bool

	// listener overrides listenAddr when set.
	listener net.Listener
}

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&cmder.inferenceURL, "inference-url", "", "Inference endpoint URL (overrides INFERENCE_URL)")
	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to a TOML config file")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *serveCommander) run(ctx context.Context) error {
	config, err := c.loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewLogger(c.debug)
	defer log.Sync()

	f, err := forwarder.New(config, log)
	if err != nil {
		return fmt.Errorf("could not create forwarder: %w", err)
	}

	srv := server.New(server.Config{ListenAddr: c.listenAddr}, f, log)

	log.Info("chatrelay server configured",
		zap.String("inference_url", config.InferenceURL),
		zap.Duration("timeout", config.Timeout),
	)

	errCh := make(chan error, 1)
	go func() {
		if c.listener != nil {
			errCh <- srv.RunWithListener(c.listener)
			return
		}
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Shutdown()
	}
}

// loadConfig resolves the forwarder configuration: environment, then the
// config file, then flags.
func (c *serveCommander) loadConfig() (forwarder.Config, error) {
	config := forwarder.LoadConfig()
	if c.configPath != "" {
		var err error
		config, err = forwarder.LoadConfigFile(c.configPath)
		if err != nil {
			return forwarder.Config{}, fmt.Errorf("could not load config: %w", err)
		}
	}
	if c.inferenceURL != "" {
		config.InferenceURL = c.inferenceURL
	}
	return config, nil
}
