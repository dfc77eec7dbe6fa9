package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/onair/internal/core"
	onairerrors "github.com/tessro/onair/internal/errors"
	"github.com/tessro/onair/internal/feed"
	"github.com/tessro/onair/internal/messages"
	"github.com/tessro/onair/internal/wizard"
)

var messagesCmd = &cobra.Command{
	Use:     "messages",
	Aliases: []string{"msg"},
	Short:   "Read and post listener messages",
	Long:    `Commands for the listener message wall.`,
}

var messagesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List messages, newest first",
	Args:    cobra.NoArgs,
	RunE:    runMessagesList,
}

var messagesSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Post a message",
	Long: `Post a message to the wall. Missing fields are asked for
interactively when running in a terminal.

Examples:
  onair messages send
  onair messages send --name Ana --city Recife --text "Toca Houdini!"
  onair messages send --name Ana --city Recife --text "Oi!" --photo me.jpg`,
	Args: cobra.NoArgs,
	RunE: runMessagesSend,
}

var messagesDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a message (moderator)",
	Long: `Delete a message after entering the moderator passphrase.
Without an id, pick the message from a list.

For scripts, pass --passphrase and --yes to skip the prompts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMessagesDelete,
}

var messagesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import messages from a JSON file",
	Long: `Import messages from a JSON array, such as the output of
'onair messages list --json'. Invalid entries are skipped and reported.
Imported messages are stamped with the current time.`,
	Args: cobra.ExactArgs(1),
	RunE: runMessagesImport,
}

var (
	listLimit int

	sendName          string
	sendCity          string
	sendText          string
	sendPhoto         string
	sendNoInteractive bool

	deletePassphrase string
	deleteYes        bool
)

func init() {
	messagesListCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "show at most n messages")

	messagesSendCmd.Flags().StringVar(&sendName, "name", "", "your name")
	messagesSendCmd.Flags().StringVar(&sendCity, "city", "", "your city")
	messagesSendCmd.Flags().StringVar(&sendText, "text", "", "the message")
	messagesSendCmd.Flags().StringVar(&sendPhoto, "photo", "", "path to an image to attach")
	messagesSendCmd.Flags().BoolVar(&sendNoInteractive, "no-interactive", false, "never prompt")

	messagesDeleteCmd.Flags().StringVar(&deletePassphrase, "passphrase", "", "moderator passphrase")
	messagesDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation")

	messagesCmd.AddCommand(messagesListCmd)
	messagesCmd.AddCommand(messagesSendCmd)
	messagesCmd.AddCommand(messagesDeleteCmd)
	messagesCmd.AddCommand(messagesImportCmd)
	rootCmd.AddCommand(messagesCmd)
}

func runMessagesList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	list, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list messages: %w", err)
	}
	if listLimit > 0 && len(list) > listLimit {
		list = list[:listLimit]
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		if list == nil {
			list = []core.Message{}
		}
		return writeJSON(out, list)
	}

	if len(list) == 0 {
		fmt.Fprintln(out, "No messages yet.")
		return nil
	}

	now := time.Now()
	table := NewTable(out, "WHEN", "NAME", "CITY", "MESSAGE", "PHOTO", "ID")
	for _, m := range list {
		table.Row(
			FormatAge(m.Time(), now),
			TruncateString(m.SenderName, 20),
			TruncateString(m.City, 20),
			TruncateString(m.Text, 50),
			StatusIcon(m.HasCustomPhoto(cfg.Station.PlaceholderPhoto)),
			m.ID,
		)
	}
	table.Flush()
	return nil
}

func runMessagesSend(cmd *cobra.Command, args []string) error {
	draft := wizard.Draft{
		Input:     messages.Input{Name: sendName, City: sendCity, Text: sendText},
		PhotoPath: sendPhoto,
	}

	interactive := wizard.NewInteractive()
	interactive.SetEnabled(!sendNoInteractive && !JSONOutput())

	if wizard.NeedsCompose(draft) {
		composed, err := interactive.PromptMessage(draft)
		if err != nil {
			return err
		}
		if composed == nil && interactive.CanInteract() {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		if composed != nil {
			draft = *composed
		}
	}

	if draft.PhotoPath != "" {
		uri, err := messages.PhotoDataURI(draft.PhotoPath)
		if err != nil {
			return err
		}
		draft.Photo = uri
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	m, err := store.Add(draft.Input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, m)
	}
	fmt.Fprintf(out, "✓ Message sent (%s)\n", m.ID)
	return nil
}

func runMessagesDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	presenter := feed.New(store, feed.Options{Passphrase: cfg.Moderator.Passphrase})
	if err := presenter.Reload(); err != nil {
		return err
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		picked, err := wizard.NewInteractive().PromptMessagePick(presenter.Messages(), cfg.Station.PlaceholderPhoto)
		if err != nil {
			return err
		}
		if picked == nil {
			return fmt.Errorf("no message selected. Pass the message id")
		}
		id = picked.ID
	}

	var auth feed.Authorizer = wizard.Moderator{}
	if deletePassphrase != "" && deleteYes {
		auth = feed.Answers{Passphrase: deletePassphrase, Confirmed: true}
	} else if !wizard.IsTerminal() {
		return fmt.Errorf("not a terminal. Pass --passphrase and --yes")
	} else if deletePassphrase != "" || deleteYes {
		auth = partialAnswers{passphrase: deletePassphrase, confirmed: deleteYes}
	}

	deleted, err := presenter.Delete(cmd.Context(), id, auth)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]any{"id": id, "deleted": deleted})
	}
	if deleted {
		fmt.Fprintln(out, "✓ Message deleted")
	} else {
		fmt.Fprintln(out, "Nothing deleted.")
	}
	return nil
}

// partialAnswers uses the answers given as flags and prompts for the rest.
type partialAnswers struct {
	passphrase string
	confirmed  bool
}

func (a partialAnswers) Challenge(ctx context.Context) (string, bool, error) {
	if a.passphrase != "" {
		return a.passphrase, true, nil
	}
	return wizard.Moderator{}.Challenge(ctx)
}

func (a partialAnswers) Confirm(ctx context.Context, m core.Message) (bool, error) {
	if a.confirmed {
		return true, nil
	}
	return wizard.Moderator{}.Confirm(ctx, m)
}

type importRecord struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Text  string `json:"text"`
	Photo string `json:"photo"`
}

func runMessagesImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var records []importRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result := importMessages(store, records, cfg.Station.PlaceholderPhoto)

	out := cmd.OutOrStdout()
	if JSONOutput() {
		errs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			errs = append(errs, e.Error())
		}
		return writeJSON(out, map[string]any{"imported": len(result.Data), "errors": errs})
	}

	fmt.Fprintf(out, "✓ Imported %d of %d messages\n", len(result.Data), len(records))
	if result.HasErrors() {
		fmt.Fprintf(out, "Skipped: %s\n", result.ErrorSummary())
	}
	return nil
}

// importMessages adds records oldest first so the newest record ends up at
// the front of the store.
func importMessages(store messages.Store, records []importRecord, placeholder string) *onairerrors.PartialResult[[]core.Message] {
	result := &onairerrors.PartialResult[[]core.Message]{}

	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		photo := r.Photo
		if photo == placeholder {
			photo = ""
		}

		m, err := store.Add(messages.Input{Name: r.Name, City: r.City, Text: r.Text, Photo: photo})
		if err != nil {
			if !errors.Is(err, onairerrors.ErrInvalidMessage) {
				result.AddError(err)
				break
			}
			result.AddError(fmt.Errorf("entry %d: %w", i+1, err))
			continue
		}
		result.Data = append(result.Data, m)
	}

	return result
}
