package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vivekalabs/viveka"
	"github.com/vivekalabs/viveka/internal/adapters/file"
	"github.com/vivekalabs/viveka/internal/dialogue"
	"github.com/vivekalabs/viveka/internal/presentation/tui"
	"github.com/vivekalabs/viveka/pkg/domain"
	"golang.org/x/term"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the loan advisor in the terminal",
	Long: `Starts an interactive conversation with the advisor on stdin/stdout.

Slash commands inside the chat:
  /upload <document label> <file-name>   Upload a document (e.g. /upload Aadhaar Card aadhaar.pdf)
  /letter                                Save the sanction letter once approved
  /session                               Show the current session state
  /quit                                  Leave the chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		path, _ := cmd.Flags().GetString("path")
		acceptAll, _ := cmd.Flags().GetBool("accept-all")

		opts := []viveka.Option{viveka.WithLogger(commandLogger(cmd))}
		if sessionID != "" {
			opts = append(opts, viveka.WithStore(file.New(path)))
		}
		if acceptAll {
			opts = append(opts, viveka.WithVerifier(dialogue.AcceptAll))
		}

		advisor, err := viveka.New(opts...)
		if err != nil {
			return fmt.Errorf("error initializing viveka: %w", err)
		}

		return runChat(cmd, advisor, sessionID)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().String("session", "", "Session ID to resume or persist (uses the file store)")
	chatCmd.Flags().String("path", "", "Session directory (defaults to .viveka/sessions)")
	chatCmd.Flags().Bool("accept-all", false, "Skip randomized document verification")
}

func runChat(cmd *cobra.Command, advisor *viveka.Advisor, sessionID string) error {
	ctx := cmd.Context()
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	render := func(text string) (string, error) { return text + "\n", nil }
	if interactive {
		tui.PrintBanner()
		render = tui.NewRenderer()
	}

	sess, created, err := advisor.StartSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}
	if !created {
		fmt.Printf(">>> Resuming session '%s' at the %s stage.\n", sess.ID, sess.Stage)
	}

	printed := 0
	printed = printNewMessages(sess, printed, render)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "":
			continue
		case input == "/quit" || input == "/exit":
			fmt.Println("Bye!")
			return nil
		case input == "/session":
			fmt.Printf(">>> Session %s | stage: %s | loan type: %s | pending documents: %d\n",
				sess.ID, sess.Stage, sess.LoanType, len(sess.PendingDocuments))
			continue
		case input == "/letter":
			letter, err := advisor.Letter(ctx, sess.ID)
			if err != nil {
				fmt.Printf(">>> %v\n", err)
				continue
			}
			if err := os.WriteFile(letter.FileName, []byte(letter.Content), 0o644); err != nil {
				fmt.Printf(">>> Failed to save letter: %v\n", err)
				continue
			}
			fmt.Printf(">>> Sanction letter %s saved to %s\n", letter.Reference, letter.FileName)
			continue
		case strings.HasPrefix(input, "/upload "):
			label, fileName, ok := parseUpload(input)
			if !ok {
				fmt.Println(">>> Usage: /upload <document label> <file-name>")
				continue
			}
			sess, err = advisor.Upload(ctx, sess.ID, label, fileName)
			if err != nil {
				fmt.Printf(">>> %v\n", err)
				continue
			}
			printed = printNewMessages(sess, printed, render)
			continue
		}

		sess, err = advisor.Send(ctx, sess.ID, input)
		if err != nil {
			fmt.Printf(">>> %v\n", err)
			continue
		}
		printed = printNewMessages(sess, printed, render)
	}
}

// parseUpload splits "/upload Aadhaar Card aadhaar.pdf" into the document
// label and the trailing file name. Labels may contain spaces.
func parseUpload(input string) (label, fileName string, ok bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(input, "/upload "))
	idx := strings.LastIndex(rest, " ")
	if idx < 0 {
		return "", "", false
	}
	label = strings.TrimSpace(rest[:idx])
	fileName = strings.TrimSpace(rest[idx+1:])
	return label, fileName, label != "" && fileName != ""
}

// printNewMessages renders transcript entries appended since the last call
// and returns the new high-water mark. User turns are echoes of what the
// user just typed, so only advisor turns are shown.
func printNewMessages(sess *domain.Session, from int, render func(string) (string, error)) int {
	for _, msg := range sess.Transcript[from:] {
		if msg.Sender != domain.SenderBot {
			continue
		}
		out, err := render(msg.Text)
		if err != nil {
			out = msg.Text + "\n"
		}
		fmt.Print(out)
		for _, act := range msg.Actions {
			switch act.Type {
			case domain.ActionUpload:
				fmt.Printf("  [upload] /upload %s <file-name>\n", act.DocumentLabel)
			case domain.ActionDownload:
				fmt.Println("  [download] /letter")
			}
		}
	}
	return len(sess.Transcript)
}
