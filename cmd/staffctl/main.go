// Command staffctl applies booking-request actions (confirm, deny,
// finalize, no-show) against the booking backend from the terminal. It is
// the staff dashboard's action poster without the dashboard: the same
// confirmation prompts, the same form posts, the same reload-after-success
// contract (here a reminder to refresh the open dashboard).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	appconfig "github.com/dmcruz/barberbook/internal/config"
	"github.com/dmcruz/barberbook/internal/staff"
	"github.com/dmcruz/barberbook/pkg/logging"
)

// stdinConfirmer puts action prompts to the terminal.
type stdinConfirmer struct {
	in *bufio.Reader
}

func (c *stdinConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [s/N] ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "s" || answer == "sim" || answer == "y" || answer == "yes"
}

// printReloader stands in for the dashboard page reload.
type printReloader struct{}

func (printReloader) Reload() {
	fmt.Println("Ação aplicada. Recarregue o painel para ver o estado atualizado.")
}

func main() {
	_ = godotenv.Load()

	var (
		shop   = flag.String("shop", "", "shop slug (required)")
		id     = flag.Int("id", 0, "booking request id (required)")
		action = flag.String("action", "", "confirm | deny | finalize | no-show (required)")
		start  = flag.String("start", "", "proposed start, \"YYYY-MM-DD HH:MM\" (confirm only)")
		price  = flag.String("price", "", "quoted price (confirm only)")
		reason = flag.String("reason", "", "denial reason (deny only)")
		token  = flag.String("token", "", "anti-forgery token (overrides cookie lookup)")
		yes    = flag.Bool("yes", false, "skip interactive confirmation")
	)
	flag.Parse()

	if *shop == "" || *id <= 0 || *action == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	opts := []staff.ClientOption{
		staff.WithLogger(logger),
		staff.WithCSRFCookie(cfg.StaffCSRFCookie),
	}
	if *token != "" {
		opts = append(opts, staff.WithCSRFToken(*token))
	}
	client := staff.NewClient(cfg.StaffBaseURL, opts...)

	var confirmer staff.Confirmer
	if !*yes {
		confirmer = &stdinConfirmer{in: bufio.NewReader(os.Stdin)}
	}
	runner := staff.NewRunner(confirmer, printReloader{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		control *staff.Control
		working string
		prompt  string
		send    func(context.Context) error
	)

	switch *action {
	case "confirm":
		if *start == "" {
			fmt.Fprintln(os.Stderr, "confirm requires -start")
			os.Exit(2)
		}
		control = staff.NewControl("Confirmar")
		working = "Confirmando…"
		send = func(ctx context.Context) error {
			return client.Confirm(ctx, staff.ConfirmRequest{
				Shop:      *shop,
				RequestID: *id,
				Start:     *start,
				Price:     *price,
			})
		}
	case "deny":
		control = staff.NewControl("Negar")
		working = "Negando…"
		prompt = fmt.Sprintf("Negar a solicitação #%d?", *id)
		send = func(ctx context.Context) error {
			return client.Deny(ctx, *shop, *id, *reason)
		}
	case "finalize":
		control = staff.NewControl("Finalizar")
		working = "Finalizando…"
		prompt = fmt.Sprintf("Finalizar o atendimento da solicitação #%d?", *id)
		send = func(ctx context.Context) error {
			return client.Finalize(ctx, *shop, *id)
		}
	case "no-show":
		control = staff.NewControl("No-show")
		working = "Marcando…"
		prompt = fmt.Sprintf("Marcar no-show na solicitação #%d?", *id)
		send = func(ctx context.Context) error {
			return client.NoShow(ctx, *shop, *id)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown action %q\n", *action)
		os.Exit(2)
	}

	if err := runner.Run(ctx, control, working, prompt, send); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *action, err)
		os.Exit(1)
	}
}
