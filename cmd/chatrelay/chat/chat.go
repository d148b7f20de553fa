package chatcmder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/papercomputeco/chatrelay/pkg/client"
)

const chatLongDesc string = `Chat with a chatrelay endpoint from the terminal.

Each line you type is sent with the conversation so far; the endpoint keeps
no state of its own. Replies are rendered as markdown when the output is a
terminal.

Commands:
  /reset    start a new conversation
  /history  show how many turns are held
  /quit     leave (Ctrl-D works too)

Examples:
  chatrelay chat http://localhost:8080/chat
  chatrelay chat --plain https://abc123.execute-api.us-east-1.amazonaws.com/prod/chat`

const chatShortDesc string = "Chat with a chatrelay endpoint"

var (
	userLabel      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	noticeStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type chatCommander struct {
	plain bool
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat <endpoint-url>",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0])
		},
	}

	cmd.Flags().BoolVar(&cmder.plain, "plain", false, "Print replies as plain text")

	return cmd
}

func (c *chatCommander) run(ctx context.Context, in io.Reader, out io.Writer, endpoint string) error {
	render, err := c.newRenderer(out)
	if err != nil {
		return fmt.Errorf("could not create renderer: %w", err)
	}

	cl := client.New(endpoint)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, userLabel.Render("you> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			cl.Reset()
			fmt.Fprintln(out, noticeStyle.Render("conversation cleared"))
			continue
		case "/history":
			fmt.Fprintln(out, noticeStyle.Render(fmt.Sprintf("%d turns in history", len(cl.History()))))
			continue
		}

		reply, err := cl.Send(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintln(out, errorStyle.Render("error: "+err.Error()))
			continue
		}

		fmt.Fprintln(out, assistantLabel.Render("assistant>"))
		fmt.Fprintln(out, render(reply))
	}
}

// newRenderer returns a markdown renderer when out is a terminal and plain
// output was not requested; otherwise replies pass through unchanged.
func (c *chatCommander) newRenderer(out io.Writer) (func(string) string, error) {
	passthrough := func(s string) string { return s }

	f, ok := out.(*os.File)
	if c.plain || !ok || !term.IsTerminal(int(f.Fd())) {
		return passthrough, nil
	}

	width := 80
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		width = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	return func(s string) string {
		rendered, err := r.Render(s)
		if err != nil {
			return s
		}
		return strings.TrimRight(rendered, "\n")
	}, nil
}
