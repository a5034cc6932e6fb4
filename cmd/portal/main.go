// Command portal is a terminal client for the cleaning portal. It drives the
// same session, dashboard, and accessibility components the HTTP API is built
// from, talking to Firebase Auth via the Identity Toolkit REST API and to
// Firestore directly.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jirehclean/portal/internal/accessibility"
	"github.com/jirehclean/portal/internal/dashboard"
	"github.com/jirehclean/portal/internal/identity"
	"github.com/jirehclean/portal/internal/platform/firebase"
	applog "github.com/jirehclean/portal/internal/platform/logging"
	"github.com/jirehclean/portal/internal/platform/timeutil"
	"github.com/jirehclean/portal/internal/service/appointment"
	"github.com/jirehclean/portal/internal/session"
)

func main() {
	_ = godotenv.Load()
	defer func() { _ = applog.Sync() }()

	ctx := context.Background()
	logger := applog.Logger()

	apiKey := os.Getenv("FIREBASE_API_KEY")
	if apiKey == "" && os.Getenv("FIREBASE_AUTH_EMULATOR_HOST") == "" {
		fmt.Fprintln(os.Stderr, "FIREBASE_API_KEY is required")
		os.Exit(1)
	}

	clients, err := firebase.InitializeClients(ctx, firebase.ConfigFromEnv())
	if err != nil {
		applog.LogFatal(ctx, "firebase initialization failed", err)
	}
	defer func() { _ = clients.Close() }()

	provider := identity.NewToolkitClient(&http.Client{Timeout: 15 * time.Second}, apiKey)
	hub := session.NewHub(provider, os.Getenv("PORTAL_ADMIN_EMAIL"), logger)
	defer hub.Close()

	app := &cli{
		ctx:      ctx,
		provider: provider,
		out:      os.Stdout,
	}

	policy := dashboard.CancelImmediate
	if os.Getenv("PORTAL_CANCEL_POLICY") == "deferred" {
		policy = dashboard.CancelDeferred
	}
	app.vm = dashboard.New(dashboard.Config{
		Appointments:   appointment.NewFirestoreStore(clients.Firestore),
		Sessions:       hub,
		Policy:         policy,
		Confirm:        app.confirmCancel,
		OpenCancelForm: app.openCancelForm,
		Logger:         logger,
	})
	defer app.vm.Close()

	storePath, err := accessibility.DefaultStorePath()
	if err != nil {
		applog.LogFatal(ctx, "cannot resolve preference path", err)
	}
	app.access = accessibility.New(accessibility.Config{
		Store:   accessibility.NewFileStore(storePath),
		Speaker: accessibility.DetectSpeaker(logger),
		Apply:   app.applyAccessibility,
		Logger:  logger,
	})

	unsub := app.vm.Subscribe(app.renderDashboard)
	defer unsub()

	app.repl(os.Stdin)
}

type cli struct {
	ctx      context.Context
	provider identity.Provider
	vm       *dashboard.ViewModel
	access   *accessibility.Controller
	out      *os.File

	// sessionInfo carries the pending phone verification between the
	// phone and code commands.
	sessionInfo string
}

func (c *cli) repl(in *os.File) {
	fmt.Fprintln(c.out, `portal ready, type "help" for commands`)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		if err := c.dispatch(line); err != nil {
			fmt.Fprintln(c.out, "error:", err)
		}
	}
}

func (c *cli) dispatch(line string) error {
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]

	switch cmd {
	case "help":
		c.printHelp()
		return nil

	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		return c.provider.SignInWithPassword(c.ctx, args[0], args[1])

	case "signup":
		if len(args) < 3 {
			return fmt.Errorf("usage: signup <email> <password> <name...>")
		}
		return c.provider.CreateAccount(c.ctx, strings.Join(args[2:], " "), args[0], args[1])

	case "phone":
		if len(args) != 1 {
			return fmt.Errorf("usage: phone <+E.164 number>")
		}
		info, err := c.provider.SendPhoneCode(c.ctx, args[0])
		if err != nil {
			return err
		}
		c.sessionInfo = info
		fmt.Fprintln(c.out, "code sent, confirm with: code <digits>")
		return nil

	case "code":
		if len(args) != 1 {
			return fmt.Errorf("usage: code <digits>")
		}
		if c.sessionInfo == "" {
			return fmt.Errorf("no code pending, run phone first")
		}
		if err := c.provider.ConfirmPhoneCode(c.ctx, c.sessionInfo, args[0]); err != nil {
			return err
		}
		c.sessionInfo = ""
		return nil

	case "name":
		if len(args) == 0 {
			return fmt.Errorf("usage: name <display name>")
		}
		return c.provider.UpdateDisplayName(c.ctx, strings.Join(args, " "))

	case "logout":
		return c.provider.SignOut(c.ctx)

	case "list":
		c.vm.Refresh(c.ctx)
		return nil

	case "request":
		if len(args) < 1 {
			return fmt.Errorf("usage: request <yyyy-mm-dd> [time]")
		}
		date, err := timeutil.ParseDay(args[0])
		if err != nil {
			return err
		}
		return c.vm.RequestAppointment(c.ctx, dashboard.RequestInput{
			Date: date,
			Time: strings.Join(args[1:], " "),
		})

	case "assign":
		if len(args) < 3 {
			return fmt.Errorf("usage: assign <email> <yyyy-mm-dd> <time>")
		}
		date, err := timeutil.ParseDay(args[1])
		if err != nil {
			return err
		}
		return c.vm.AssignAppointment(c.ctx, dashboard.AssignInput{
			ClientEmail: args[0],
			Date:        date,
			Time:        strings.Join(args[2:], " "),
		})

	case "cancel":
		if len(args) != 1 {
			return fmt.Errorf("usage: cancel <id>")
		}
		return c.vm.CancelAppointment(c.ctx, args[0])

	case "cancel-done":
		if len(args) != 1 {
			return fmt.Errorf("usage: cancel-done <id>")
		}
		return c.vm.CompleteCancellation(c.ctx, args[0])

	case "font+":
		c.access.IncreaseText()
		return nil
	case "font-":
		c.access.DecreaseText()
		return nil
	case "contrast":
		c.access.ToggleContrast()
		return nil
	case "links":
		c.access.ToggleHighlightLinks()
		return nil
	case "reader":
		c.access.ToggleReaderMode()
		return nil
	case "access-reset":
		c.access.Reset()
		return nil

	case "read":
		c.access.ReadTarget(accessibility.Target{Text: strings.Join(args, " ")})
		return nil
	case "hover":
		c.access.HoverTarget(accessibility.Target{Text: strings.Join(args, " ")})
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) printHelp() {
	fmt.Fprint(c.out, `commands:
  login <email> <password>          sign in with password
  signup <email> <password> <name>  create an account
  phone <number> / code <digits>    phone sign-in
  name <display name>               set display name
  logout                            sign out
  list                              refresh appointments
  request <date> [time]             request an appointment
  assign <email> <date> <time>      assign (operator only)
  cancel <id> / cancel-done <id>    cancel an appointment
  font+ font- contrast links reader access-reset
  read <text> / hover <text>        reader mode
  quit
`)
}

func (c *cli) confirmCancel(a appointment.Appointment) bool {
	fmt.Fprintf(c.out, "cancel appointment on %s at %s? [y/N] ", a.Date, a.Time)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

func (c *cli) openCancelForm(a appointment.Appointment) error {
	fmt.Fprintf(c.out, "complete the cancellation form for %s on %s, then run: cancel-done %s\n",
		a.ClientEmail, a.Date, a.ID)
	return nil
}

func (c *cli) renderDashboard(s dashboard.Snapshot) {
	fmt.Fprintf(c.out, "\n[%s]", s.Session.State)
	if s.Session.Identity != nil && s.Session.Identity.DisplayName != "" {
		fmt.Fprintf(c.out, " %s", s.Session.Identity.DisplayName)
	}
	fmt.Fprintln(c.out)

	if s.Session.NeedsName() {
		fmt.Fprintln(c.out, `please set a display name: name <your name>`)
	}
	if s.Notice != "" {
		fmt.Fprintln(c.out, s.Notice)
	}
	if s.Err != "" {
		fmt.Fprintln(c.out, s.Err)
	}
	if s.PendingCancel != "" {
		fmt.Fprintf(c.out, "cancellation pending for %s\n", s.PendingCancel)
	}

	printAppointments(c.out, "upcoming", s.Upcoming)
	printAppointments(c.out, "history", s.History)
}

func printAppointments(out *os.File, heading string, appts []appointment.Appointment) {
	if len(appts) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", heading)
	for _, a := range appts {
		fmt.Fprintf(out, "  %s  %s %s  %s / %s  [%s]\n",
			a.ID, a.Date, a.Time, a.ServiceType, a.Frequency, a.Status)
	}
}

func (c *cli) applyAccessibility(s accessibility.State) {
	var flags []string
	if s.HighContrast {
		flags = append(flags, "contrast")
	}
	if s.HighlightLinks {
		flags = append(flags, "links")
	}
	if s.ReaderMode {
		flags = append(flags, "reader")
	}
	fmt.Fprintf(c.out, "accessibility: font=%d %s\n", s.FontLevel, strings.Join(flags, " "))
}
