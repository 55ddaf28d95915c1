package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/fireme/pkg/apisdk"
	"github.com/aussiebroadwan/fireme/pkg/jwtx"
	"github.com/aussiebroadwan/fireme/pkg/notify"
	"github.com/spf13/pflag"
)

var (
	errUsage       = errors.New("usage")
	errNotLoggedIn = errors.New("not logged in")
)

// session is what a command runs against.
type session struct {
	app *Application
	in  io.Reader
	out io.Writer
}

func (s *session) client() *apisdk.Client { return s.app.Client }

func (s *session) success(format string, args ...any) {
	s.app.Notices.Push(fmt.Sprintf(format, args...), notify.SeveritySuccess)
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, s *session, args []string) error
}

var commands = []command{
	{"login", "login -u USER [-p PASSWORD]", "log in; reads the password from stdin when -p is omitted", runLogin},
	{"logout", "logout", "forget the stored tokens", runLogout},
	{"register", "register -u USER -p PASSWORD [--email ...]", "create an account", runRegister},
	{"whoami", "whoami [--verify]", "show the logged in user and token lifetimes", runWhoami},
	{"campaigns", "campaigns [list | show ID | create --platform ID --name NAME]", "manage campaigns", runCampaigns},
	{"queries", "queries [list [--campaign ID] | add --campaign ID --term TERM]", "manage search queries", runQueries},
	{"polls", "polls [list [--campaign ID] [--query ID] | create --query ID --question ID ...]", "manage polls", runPolls},
	{"questions", "questions [list [--search TEXT] | create TEXT | edit ID TEXT | delete ID]", "manage poll questions", runQuestions},
	{"answers", "answers [list QID | add QID TEXT | edit ID TEXT | delete ID]", "manage answers", runAnswers},
	{"platforms", "platforms [list | connections | app ID ... | info ID | connect ID ... | disconnect ID]", "manage platform credentials", runPlatforms},
}

// Run is the CLI entry point. It returns the process exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := pflag.NewFlagSet("fireme", pflag.ContinueOnError)
	global.SetOutput(stderr)
	global.SetInterspersed(false)
	GlobalFlags(global)
	global.Usage = func() { usage(stderr) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}

	cmd, ok := findCommand(rest[0])
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		usage(stderr)
		return 2
	}

	cfg, err := LoadConfig(global)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	app, err := New(ctx, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "startup: %v\n", err)
		return 1
	}
	defer func() { _ = app.Close() }()

	display := &Display{Notices: app.Notices, Out: stderr}
	defer display.Flush()

	err = cmd.run(ctx, &session{app: app, in: stdin, out: stdout}, rest[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "usage: fireme %s\n", cmd.usage)
		return 2
	case reported(err):
		// Already queued as a notice by the client.
		return 1
	default:
		app.Notices.Push(err.Error(), notify.SeverityError)
		return 1
	}
}

// reported is true for errors the API client has already pushed.
func reported(err error) bool {
	var apiErr *apisdk.APIError
	return errors.As(err, &apiErr) || errors.Is(err, apisdk.ErrTransport)
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: fireme [--api-url URL] [--config FILE] [--log-level LEVEL] COMMAND [ARGS]")
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.summary)
	}
	_ = tw.Flush()
}

func newFlags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

// subcommand splits "list ..." style arguments, defaulting to list.
func subcommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "list", args
	}
	return args[0], args[1:]
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", errUsage, s)
	}
	return id, nil
}

func table(w io.Writer, header string, rows func(tw io.Writer)) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	_ = tw.Flush()
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// ============================================================================
// Accounts
// ============================================================================

func runLogin(ctx context.Context, s *session, args []string) error {
	fs := newFlags("login")
	username := fs.StringP("username", "u", "", "username")
	password := fs.StringP("password", "p", "", "password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *username == "" {
		return errUsage
	}
	if *password == "" {
		line, err := bufio.NewReader(s.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	id, err := s.client().Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	s.success("Logged in as %s", id.DisplayName())
	return nil
}

func runLogout(ctx context.Context, s *session, _ []string) error {
	if err := s.client().Logout(ctx); err != nil {
		return err
	}
	s.success("Logged out")
	return nil
}

func runRegister(ctx context.Context, s *session, args []string) error {
	var req apisdk.RegisterRequest
	fs := newFlags("register")
	fs.StringVarP(&req.Username, "username", "u", "", "username")
	fs.StringVarP(&req.Password, "password", "p", "", "password")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.Institution, "institution", "", "institution")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	resp, err := s.client().Register(ctx, req)
	if err != nil {
		return err
	}
	s.success("Registered %s", resp.User.Username)
	return nil
}

func runWhoami(ctx context.Context, s *session, args []string) error {
	fs := newFlags("whoami")
	verify := fs.Bool("verify", false, "ask the backend whether the refresh token is still valid")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	creds := s.app.Credentials.Get()
	if !creds.Authenticated() {
		return errNotLoggedIn
	}

	if creds.Identity != nil {
		fmt.Fprintf(s.out, "user:     %s (id %d)\n", creds.Identity.DisplayName(), creds.Identity.ID)
	}
	now := time.Now()
	for _, tok := range []struct{ label, raw string }{
		{"access", creds.Access},
		{"refresh", creds.Refresh},
	} {
		fmt.Fprintf(s.out, "%-9s %s\n", tok.label+":", lifetime(tok.raw, now))
	}

	if *verify {
		if err := s.client().VerifyToken(ctx, creds.Refresh); err != nil {
			return err
		}
		s.success("Refresh token is valid")
	}
	return nil
}

// lifetime describes a token's expiry without verifying its signature.
func lifetime(raw string, now time.Time) string {
	claims, err := jwtx.ParseUnverified(raw)
	if err != nil {
		return "unreadable"
	}
	left, ok := claims.ExpiresIn(now)
	switch {
	case !ok:
		return "no expiry"
	case left <= 0:
		return fmt.Sprintf("expired %s ago", (-left).Round(time.Second))
	}
	return fmt.Sprintf("expires in %s", left.Round(time.Second))
}

// ============================================================================
// Campaigns & queries
// ============================================================================

func runCampaigns(ctx context.Context, s *session, args []string) error {
	action, args := subcommand(args)
	switch action {
	case "list":
		campaigns, err := s.client().ListCampaigns(ctx)
		if err != nil {
			return err
		}
		table(s.out, "ID\tPLATFORM\tNAME\tCREATED", func(tw io.Writer) {
			for _, c := range campaigns {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", c.ID, c.Platform, c.Name, stamp(c.CreatedAt))
			}
		})
		return nil

	case "show":
		if len(args) != 1 {
			return errUsage
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		c, err := s.client().GetCampaign(ctx, id)
		if err != nil {
			return err
		}
		queries, err := s.client().ListQueries(ctx, c.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s (id %d, platform %d, created %s)\n", c.Name, c.ID, c.Platform, stamp(c.CreatedAt))
		for _, q := range queries {
			fmt.Fprintf(s.out, "  query %d: %s\n", q.ID, q.SearchTerm)
		}
		return nil

	case "create":
		var req apisdk.CreateCampaignRequest
		fs := newFlags("campaigns create")
		fs.Int64Var(&req.Platform, "platform", 0, "platform id")
		fs.StringVar(&req.Name, "name", "", "campaign name")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		c, err := s.client().CreateCampaign(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, c.ID)
		s.success("Campaign created")
		return nil
	}
	return errUsage
}

func runQueries(ctx context.Context, s *session, args []string) error {
	action, args := subcommand(args)
	fs := newFlags("queries " + action)
	campaign := fs.Int64("campaign", 0, "campaign id")
	term := fs.String("term", "", "search term")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	switch action {
	case "list":
		queries, err := s.client().ListQueries(ctx, *campaign)
		if err != nil {
			return err
		}
		table(s.out, "ID\tCAMPAIGN\tSEARCH TERM\tCREATED", func(tw io.Writer) {
			for _, q := range queries {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", q.ID, q.Campaign, q.SearchTerm, stamp(q.CreatedAt))
			}
		})
		return nil

	case "add":
		q, err := s.client().CreateQuery(ctx, apisdk.CreateQueryRequest{Campaign: *campaign, SearchTerm: *term})
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, q.ID)
		s.success("Query added")
		return nil
	}
	return errUsage
}

// ============================================================================
// Polls
// ============================================================================

func runPolls(ctx context.Context, s *session, args []string) error {
	action, args := subcommand(args)
	switch action {
	case "list":
		var filter apisdk.PollFilter
		fs := newFlags("polls list")
		fs.Int64Var(&filter.Campaign, "campaign", 0, "campaign id")
		fs.Int64Var(&filter.Query, "query", 0, "query id")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		polls, err := s.client().ListPolls(ctx, filter)
		if err != nil {
			return err
		}
		now := time.Now()
		table(s.out, "ID\tTITLE\tQUERY\tQUESTION\tSTARTS\tENDS\tSTATE", func(tw io.Writer) {
			for _, p := range polls {
				title := "-"
				if p.Title != nil && *p.Title != "" {
					title = *p.Title
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
					p.ID, title, p.Query, p.Question, stamp(p.StartsAt), stamp(p.EndsAt), pollState(p, now))
			}
		})
		return nil

	case "create":
		var (
			req    apisdk.CreatePollRequest
			title  string
			starts string
			ends   string
			length time.Duration
		)
		fs := newFlags("polls create")
		fs.Int64Var(&req.Query, "query", 0, "query id")
		fs.Int64Var(&req.Question, "question", 0, "question id")
		fs.StringVar(&title, "title", "", "optional title")
		fs.StringVar(&starts, "starts", "", "start time, RFC 3339 (default: now)")
		fs.StringVar(&ends, "ends", "", "end time, RFC 3339")
		fs.DurationVar(&length, "for", 0, "run time, instead of --ends")
		if err := parseFlags(fs, args); err != nil {
			return err
		}

		req.StartsAt = time.Now().UTC().Truncate(time.Second)
		if starts != "" {
			t, err := time.Parse(time.RFC3339, starts)
			if err != nil {
				return fmt.Errorf("%w: --starts: %v", errUsage, err)
			}
			req.StartsAt = t
		}
		switch {
		case ends != "":
			t, err := time.Parse(time.RFC3339, ends)
			if err != nil {
				return fmt.Errorf("%w: --ends: %v", errUsage, err)
			}
			req.EndsAt = t
		case length > 0:
			req.EndsAt = req.StartsAt.Add(length)
		default:
			return fmt.Errorf("%w: one of --ends or --for is required", errUsage)
		}
		if title != "" {
			req.Title = &title
		}

		p, err := s.client().CreatePoll(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, p.ID)
		s.success("Poll created")
		return nil
	}
	return errUsage
}

func pollState(p apisdk.Poll, now time.Time) string {
	switch {
	case !p.IsActive:
		return "inactive"
	case now.Before(p.StartsAt):
		return "upcoming"
	case now.After(p.EndsAt):
		return "finished"
	}
	return "live"
}

// ============================================================================
// Questions & answers
// ============================================================================

func runQuestions(ctx context.Context, s *session, args []string) error {
	action, args := subcommand(args)
	switch action {
	case "list":
		fs := newFlags("questions list")
		search := fs.String("search", "", "filter by text")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		questions, err := s.client().ListQuestions(ctx, *search)
		if err != nil {
			return err
		}
		for _, q := range questions {
			fmt.Fprintf(s.out, "%d\t%s\n", q.ID, q.Question)
			for _, a := range q.Answers {
				fmt.Fprintf(s.out, "\t%d\t%s\n", a.ID, a.Answer)
			}
		}
		return nil

	case "create":
		if len(args) == 0 {
			return errUsage
		}
		q, err := s.client().CreateQuestion(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, q.ID)
		s.success("Question created")
		return nil

	case "edit":
		if len(args) < 2 {
			return errUsage
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, err := s.client().UpdateQuestion(ctx, id, strings.Join(args[1:], " ")); err != nil {
			return err
		}
		s.success("Question updated")
		return nil

	case "delete":
		if len(args) != 1 {
			return errUsage
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := s.client().DeleteQuestion(ctx, id); err != nil {
			return err
		}
		s.success("Question removed")
		return nil
	}
	return errUsage
}

func runAnswers(ctx context.Context, s *session, args []string) error {
	action, args := subcommand(args)
	if len(args) == 0 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")

	switch action {
	case "list":
		answers, err := s.client().ListAnswers(ctx, id)
		if err != nil {
			return err
		}
		for _, a := range answers {
			fmt.Fprintf(s.out, "%d\t%s\n", a.ID, a.Answer)
		}
		return nil

	case "add":
		a, err := s.client().AddAnswer(ctx, id, text)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, a.ID)
		s.success("Answer added")
		return nil

	case "edit":
		if _, err := s.client().UpdateAnswer(ctx, id, text); err != nil {
			return err
		}
		s.success("Answer updated")
		return nil

	case "delete":
		if err := s.client().DeleteAnswer(ctx, id); err != nil {
			return err
		}
		s.success("Answer removed")
		return nil
	}
	return errUsage
}

// ============================================================================
// Platforms
// ============================================================================

func runPlatforms(ctx context.Context, s *session, args []string) error {
	action, args := subcommand(args)
	switch action {
	case "list":
		platforms, err := s.client().ListPlatforms(ctx)
		if err != nil {
			return err
		}
		table(s.out, "ID\tNAME\tCONNECTED\tWEBPAGE", func(tw io.Writer) {
			for _, p := range platforms {
				fmt.Fprintf(tw, "%d\t%s\t%t\t%s\n", p.ID, p.Name, p.Connected, p.Webpage)
			}
		})
		return nil

	case "connections":
		conns, err := s.client().ListConnections(ctx)
		if err != nil {
			return err
		}
		table(s.out, "ID\tPLATFORM\tACCOUNT\tOAUTH\tEXPIRES", func(tw io.Writer) {
			for _, c := range conns {
				account := c.ExternalUsername
				if account == "" && c.ExternalAccountID != nil {
					account = *c.ExternalAccountID
				}
				if account == "" {
					account = "(app)"
				}
				expires := "-"
				if c.ExpiresAt != nil {
					expires = stamp(*c.ExpiresAt)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Platform.Name, account, c.OAuthVersion, expires)
			}
		})
		return nil
	}

	if len(args) == 0 {
		return errUsage
	}
	platform, err := parseID(args[0])
	if err != nil {
		return err
	}
	args = args[1:]

	switch action {
	case "app":
		var req apisdk.AppUpsertRequest
		fs := newFlags("platforms app")
		fs.StringVar(&req.ClientID, "client-id", "", "app client id")
		fs.StringVar(&req.ClientSecret, "client-secret", "", "app client secret")
		meta := fs.StringToString("meta", nil, "extra key=value settings")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if len(*meta) > 0 {
			req.Meta = make(map[string]any, len(*meta))
			for k, v := range *meta {
				req.Meta[k] = v
			}
		}
		if err := s.client().UpsertApp(ctx, platform, req); err != nil {
			return err
		}
		s.success("App credentials saved")
		return nil

	case "info":
		info, err := s.client().AppInfo(ctx, platform)
		if err != nil {
			return err
		}
		if !info.Exists {
			fmt.Fprintln(s.out, "no app configured")
			return nil
		}
		fmt.Fprintln(s.out, "app configured (secrets masked)")
		keys := make([]string, 0, len(info.Meta))
		for k := range info.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(s.out, "  %s = %v\n", k, info.Meta[k])
		}
		return nil

	case "connect":
		var (
			req     apisdk.ConnectCredentialsRequest
			version string
			expires time.Duration
		)
		fs := newFlags("platforms connect")
		fs.StringVar(&version, "oauth", string(apisdk.OAuth2), "oauth1a, oauth2 or app")
		fs.StringVar(&req.ExternalAccountID, "account-id", "", "external account id")
		fs.StringVar(&req.ExternalUsername, "account-name", "", "external username")
		fs.StringVar(&req.AccessToken, "access-token", "", "user access token")
		fs.StringVar(&req.TokenSecret, "token-secret", "", "OAuth 1.0a token secret")
		fs.StringVar(&req.RefreshToken, "refresh-token", "", "user refresh token")
		fs.StringVar(&req.BearerToken, "bearer-token", "", "bearer token")
		fs.StringVar(&req.Scope, "scope", "", "granted scope")
		fs.DurationVar(&expires, "expires-in", 0, "token lifetime")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		req.OAuthVersion = apisdk.OAuthVersion(version)
		if expires > 0 {
			at := time.Now().Add(expires).UTC()
			req.ExpiresAt = &at
		}

		resp, err := s.client().ConnectCredentials(ctx, platform, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, resp.ID)
		s.success("Platform connected")
		return nil

	case "disconnect":
		fs := newFlags("platforms disconnect")
		account := fs.String("account-id", "", "only this external account")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		n, err := s.client().Disconnect(ctx, platform, *account)
		if err != nil {
			return err
		}
		s.success("Disconnected %d connection(s)", n)
		return nil
	}
	return errUsage
}
