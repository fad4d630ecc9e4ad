// Package cmdutil provides the pieces censusbot commands share: opening the
// article directory and progress ledger, building a bot from the app
// configuration, reading title lists and printing progress lines.
package cmdutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scaledbot/censusbot"
	"github.com/scaledbot/censusbot/internal/appcontext"
	"github.com/scaledbot/censusbot/internal/articles"
	"github.com/scaledbot/censusbot/internal/cmd/emoji"
	"github.com/scaledbot/censusbot/internal/cmd/output"
	"github.com/scaledbot/censusbot/pkg/errors"
	"github.com/scaledbot/censusbot/pkg/progress"
)

// OpenArticles opens the configured articles directory.
func OpenArticles(app appcontext.Interface) (*articles.Dir, error) {
	if app.ArticlesDir() == "" {
		return nil, errors.NewConfigError("articles", "articles_dir is required (--articles-dir or CENSUSBOT_ARTICLES_DIR)", nil)
	}
	return articles.NewDir(app.ArticlesDir())
}

// OpenReporter opens the configured progress ledger, or an in-memory one
// when no file is configured.
func OpenReporter(app appcontext.Interface) (progress.Reporter, error) {
	if app.ProgressFile() == "" {
		return progress.NewMemory(), nil
	}
	return progress.Open(app.ProgressFile())
}

// NewBot builds a bot over source from the app configuration. extra options
// are applied last and win.
func NewBot(app appcontext.Interface, source censusbot.ArticleSource, extra ...censusbot.Option) (*censusbot.Bot, error) {
	idx, err := app.Index()
	if err != nil {
		return nil, err
	}
	opts := append(app.BotOptions(), extra...)
	return censusbot.New(idx, source, opts...)
}

// ReadTitles reads one title per line. Blank lines and lines starting with
// "#" are ignored. The path "-" reads from stdin.
func ReadTitles(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WrapIO("open", path, err)
		}
		defer f.Close()
		r = f
	}

	var titles []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return titles, nil
}

// Dedupe drops repeated titles, keeping the first occurrence.
func Dedupe(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Formatter returns the formatter for the configured output format and
// the format it resolved to.
func Formatter(app appcontext.Interface) (output.Formatter, output.Format) {
	format := output.DetectFormat(app.OutputFormat())
	return output.NewFormatter(format), format
}

// Progress prints one line per processed article to w.
func Progress(bot *censusbot.Bot, w io.Writer) {
	bot.OnEdited(func(e censusbot.EditEvent) {
		verb := "edited"
		if e.DryRun {
			verb = "would edit"
		}
		fmt.Fprintf(w, "%s %s %s: %s\n", emoji.Success, verb, e.Title, e.Summary)
	})
	bot.OnSkipped(func(title, reason string) {
		fmt.Fprintf(w, "%s skipped %s: %s\n", emoji.Optional, title, reason)
	})
	bot.OnFailed(func(title string, err error) {
		fmt.Fprintf(w, "%s failed %s: %v\n", emoji.Error, title, err)
	})
}
