package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/elliot-ia/elliot/internal/chat"
	"github.com/elliot-ia/elliot/internal/export"
)

const chatUsage = `Comandos:
  /calc <palavra>   calculadora de gematria
  /clear            limpa a conversa
  /export [formato] exporta a conversa (txt, json, md, pdf, xlsx)
  /stats            mostra as estatísticas da sessão
  /help             mostra esta ajuda
  /quit             encerra o chat`

// ChatCLI is the interactive chat with the assistant
type ChatCLI struct {
	*InteractiveCLI
	session   *chat.Session
	outputDir string
	now       func() time.Time
}

func NewChatCLI(session *chat.Session, outputDir string, stdin io.Reader, stdout io.Writer) *ChatCLI {
	return &ChatCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		session:        session,
		outputDir:      outputDir,
		now:            time.Now,
	}
}

// Start prints the welcome turn and a hint, then runs the chat until /quit or EOF.
func (r *ChatCLI) Start(ctx context.Context) error {
	for _, turn := range r.session.Turns() {
		if err := r.printTurn(turn); err != nil {
			return err
		}
	}
	if _, err := r.faint.Fprintf(r.stdoutWriter, "Dica: %s. Digite /help para ver os comandos.\n\n", r.session.Hint()); err != nil {
		return fmt.Errorf("failed to write a hint > %w", err)
	}
	return r.Run(ctx, r)
}

func (r *ChatCLI) Session(ctx context.Context) error {
	if _, err := r.bold.Fprint(r.stdoutWriter, "Você: "); err != nil {
		return fmt.Errorf("failed to write a prompt > %w", err)
	}
	line, err := r.stdinReader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("error reading input: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			_, _ = fmt.Fprintln(r.stdoutWriter)
			return errEnd
		}
	}
	input := strings.TrimSpace(line)

	if strings.HasPrefix(input, "/") {
		return r.command(input)
	}

	if _, err := r.session.Send(input); err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			return nil
		}
		return fmt.Errorf("session.Send() > %w", err)
	}
	turns := r.session.Turns()
	return r.printTurn(turns[len(turns)-1])
}

func (r *ChatCLI) command(input string) error {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		_, _ = fmt.Fprintln(r.stdoutWriter, "Até logo!")
		return errEnd
	case "/help":
		_, err := fmt.Fprintln(r.stdoutWriter, chatUsage)
		return err
	case "/clear":
		removed, err := r.session.Clear()
		if errors.Is(err, chat.ErrEmptyTranscript) {
			return r.notify(color.FgYellow, "O chat já está vazio")
		}
		if err != nil {
			return fmt.Errorf("session.Clear() > %w", err)
		}
		return r.notify(color.FgGreen, fmt.Sprintf("Chat limpo (%d mensagens removidas)", removed))
	case "/calc":
		result := r.session.Calculate(arg)
		_, err := fmt.Fprintln(r.stdoutWriter, result.Text)
		return err
	case "/stats":
		_, err := fmt.Fprintf(r.stdoutWriter, "Mensagens: %d\nCálculos: %d\nPalavras no dicionário: %d\n",
			r.session.MessageCount(),
			r.session.CalculationCount(),
			r.session.DictionaryWords(),
		)
		return err
	case "/export":
		format := export.FormatText
		if arg != "" {
			if err := format.Set(arg); err != nil {
				return r.notify(color.FgRed, err.Error())
			}
		}
		path, err := export.WriteTranscriptFile(r.outputDir, r.session.Turns(), format, r.now())
		if errors.Is(err, export.ErrNothingToExport) {
			return r.notify(color.FgYellow, "Nenhuma conversa para exportar")
		}
		if err != nil {
			return fmt.Errorf("export.WriteTranscriptFile() > %w", err)
		}
		return r.notify(color.FgGreen, "Conversa exportada: "+path)
	default:
		return r.notify(color.FgRed, fmt.Sprintf("Comando desconhecido: %s. Digite /help para ver os comandos.", name))
	}
}

func (r *ChatCLI) notify(attr color.Attribute, message string) error {
	if _, err := color.New(attr).Fprintln(r.stdoutWriter, message); err != nil {
		return fmt.Errorf("failed to write a notification > %w", err)
	}
	return nil
}

func (r *ChatCLI) printTurn(turn chat.Turn) error {
	name := "Você"
	if turn.Sender == chat.SenderAssistant {
		name = chat.AssistantName
	}
	if _, err := color.New(color.FgCyan, color.Bold).Fprintf(r.stdoutWriter, "%s [%s]:\n", name, turn.TimeLabel); err != nil {
		return fmt.Errorf("failed to write a turn header > %w", err)
	}
	if _, err := fmt.Fprintf(r.stdoutWriter, "%s\n\n", turn.Text); err != nil {
		return fmt.Errorf("failed to write a turn > %w", err)
	}
	return nil
}
