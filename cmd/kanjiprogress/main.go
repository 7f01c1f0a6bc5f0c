// Command kanjiprogress shows and edits the learned kanji of a signed-in user
//
// Usage:
//
//	kanjiprogress [flags] summary|list|check <kanji>|mark <kanji>|unmark <kanji>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/japanesestudent/kanji-service/internal/kanjiapi"
	"github.com/japanesestudent/kanji-service/internal/logger"
	"github.com/japanesestudent/kanji-service/internal/models"
	"github.com/japanesestudent/kanji-service/internal/progress"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const usage = `usage: kanjiprogress [flags] <command> [kanji]

commands:
  summary         completion per school grade and JLPT level
  list            all learned kanji
  check <kanji>   whether a kanji is learned
  mark <kanji>    mark a kanji as learned
  unmark <kanji>  unmark a learned kanji

flags:
`

// scope is one kanji list shown by the summary command
type scope struct {
	name  string
	fetch func(ctx context.Context) ([]string, error)
	kanji []string
}

func main() {
	server := flag.String("server", "http://localhost:8080", "kanji service base URL")
	kanjiAPI := flag.String("kanji-api", kanjiapi.DefaultBaseURL, "kanji API base URL")
	token := flag.String("token", os.Getenv("KANJI_TOKEN"), "access token (defaults to $KANJI_TOKEN)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall command timeout")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := logger.Init(*logLevel, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *token == "" {
		fmt.Fprintln(os.Stderr, "an access token is required (-token or KANJI_TOKEN)")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := progress.NewClient(*server, &http.Client{Timeout: *timeout})

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "summary":
		provider := kanjiapi.NewClient(*kanjiAPI, *timeout, logger.Logger)
		err = runSummary(ctx, os.Stdout, client, provider, *token)
	case "list":
		err = runList(ctx, os.Stdout, client, *token)
	case "check", "mark", "unmark":
		if flag.NArg() != 2 {
			flag.Usage()
			os.Exit(2)
		}
		err = runKanjiCommand(ctx, os.Stdout, client, *token, cmd, flag.Arg(1))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		if errors.Is(err, progress.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "the access token was rejected, sign in again")
		} else {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		logger.Logger.Debug("command failed", zap.Error(err))
		os.Exit(1)
	}
}

// levelProvider is the part of the kanji API used by the summary command
type levelProvider interface {
	KanjiByGrade(ctx context.Context, grade int) ([]string, error)
	KanjiByJLPT(ctx context.Context, level int) ([]string, error)
}

// runSummary prints the completion of every grade and JLPT level
//
// The learned set is loaded through a Tracker while the level lists are fetched.
func runSummary(ctx context.Context, out io.Writer, fetcher progress.Fetcher, provider levelProvider, token string) error {
	tracker := progress.NewTracker(fetcher, logger.Logger)
	tracker.SetSession(&progress.Identity{UserID: token, Token: token})

	var scopes []*scope
	for _, level := range models.Grades {
		grade := level.Level
		scopes = append(scopes, &scope{
			name:  level.Name,
			fetch: func(ctx context.Context) ([]string, error) { return provider.KanjiByGrade(ctx, grade) },
		})
	}
	for _, level := range models.JLPTLevels {
		jlpt := level.Level
		scopes = append(scopes, &scope{
			name:  level.Name,
			fetch: func(ctx context.Context) ([]string, error) { return provider.KanjiByJLPT(ctx, jlpt) },
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, s := range scopes {
		g.Go(func() error {
			kanji, err := s.fetch(gctx)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", s.name, err)
			}
			s.kanji = kanji
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := tracker.Wait(ctx); err != nil {
		return err
	}
	// The tracker signs out when the token is rejected
	if !tracker.IsAuthenticated() {
		return progress.ErrUnauthorized
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LEVEL\tLEARNED\tTOTAL\tDONE")
	for _, s := range scopes {
		c := tracker.Completion(s.kanji)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d%%\n", s.name, c.Learned, c.Total, c.Percentage)
	}
	fmt.Fprintf(tw, "Learned\t%d\t\t\n", tracker.Snapshot().Count)
	return tw.Flush()
}

// runList prints every learned kanji on one line
func runList(ctx context.Context, out io.Writer, fetcher progress.Fetcher, token string) error {
	list, err := fetcher.FetchLearned(ctx, token)
	if err != nil {
		return err
	}
	for _, k := range list.Kanji {
		fmt.Fprint(out, k)
	}
	if list.Count > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d learned\n", list.Count)
	return nil
}

// runKanjiCommand runs check, mark or unmark for a single kanji
func runKanjiCommand(ctx context.Context, out io.Writer, client *progress.Client, token, cmd, kanji string) error {
	switch cmd {
	case "check":
		learned, err := client.IsLearned(ctx, token, kanji)
		if err != nil {
			return err
		}
		if learned {
			fmt.Fprintf(out, "%s is learned\n", kanji)
		} else {
			fmt.Fprintf(out, "%s is not learned\n", kanji)
		}
	case "mark":
		msg, err := client.Mark(ctx, token, kanji)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
	case "unmark":
		msg, err := client.Unmark(ctx, token, kanji)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
