package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/config"
	"github.com/fwojciec/faqbot/gemini"
	"github.com/fwojciec/faqbot/goquery"
	"github.com/fwojciec/faqbot/hiagent"
	bothttp "github.com/fwojciec/faqbot/http"
	"github.com/fwojciec/faqbot/mdbook"
	"github.com/fwojciec/faqbot/minisearch"
	"github.com/fwojciec/faqbot/plugin"
	"github.com/fwojciec/faqbot/sitemaphtml"
	botslog "github.com/fwojciec/faqbot/slog"
	"github.com/fwojciec/faqbot/typst"
	"github.com/fwojciec/faqbot/typstdocs"
	"google.golang.org/genai"
)

// NewRouter wires every plugin from cfg. Backends share one fetcher, and
// each backend kind keeps its own cache so /tyd and /faq reuse indices of
// the same kind.
func NewRouter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*faqbot.Router, error) {
	opts := []bothttp.Option{bothttp.WithTimeout(cfg.HTTP.Timeout.Duration)}
	if cfg.HTTP.UserAgent != "" {
		opts = append(opts, bothttp.WithUserAgent(cfg.HTTP.UserAgent))
	}
	if cfg.HTTP.RateLimit > 0 {
		opts = append(opts, bothttp.WithRateLimit(cfg.HTTP.RateLimit))
	}
	base := bothttp.NewRetryFetcher(bothttp.NewFetcher(opts...), nil, logger)
	fetcher := botslog.NewLoggingFetcher(base, logger)

	search := func(b faqbot.SearchBackend, name string) faqbot.SearchBackend {
		return botslog.NewLoggingSearchBackend(b, name, logger)
	}
	sitemap := search(sitemaphtml.NewBackend(fetcher, nil), "sitemaphtml")
	index := search(minisearch.NewBackend(fetcher, nil), "minisearch")
	official := search(typstdocs.NewBackend(fetcher, nil), "typstdocs")
	book := search(mdbook.NewBackend(fetcher, nil), "mdbook")
	maxResults := faqbot.WithMaxResults(cfg.Search.MaxResults)

	tyd, err := plugin.NewTyd(index, official, book, maxResults)
	if err != nil {
		return nil, err
	}
	faq, err := plugin.NewFAQ(cfg.Search.FAQBaseURL, sitemap, index, maxResults)
	if err != nil {
		return nil, err
	}

	bin := typst.NewCompiler(
		typst.WithExecutable(cfg.Typst.Executable),
		typst.WithTimeout(cfg.Typst.Timeout.Duration),
	)
	compiler := botslog.NewLoggingCompiler(bin, logger)
	registry := botslog.NewLoggingPackageRegistry(bothttp.NewPackageRegistry(fetcher, nil), logger)
	compile := plugin.NewTypst(compiler, registry, cfg.Typst.DevExecutable, cfg.Typst.DevVersion)

	cmds := []*faqbot.Command{
		tyd,
		faq,
		plugin.NewOffTopic(typst.NewBannerRenderer(bin), compiler),
		plugin.NewUniverse(goquery.NewExampleFinder(fetcher, nil)),
	}
	cmds = append(cmds, compile.Commands()...)

	asker, err := newAsker(ctx, cfg.Chat)
	if err != nil {
		return nil, err
	}
	if asker != nil {
		cmds = append(cmds, plugin.NewChat(botslog.NewLoggingAsker(asker, logger)))
	} else {
		logger.Warn("chat disabled: no credentials", "provider", cfg.Chat.Provider)
	}

	router := faqbot.NewRouter()
	for _, cmd := range cmds {
		if err := router.Register(cmd); err != nil {
			return nil, err
		}
	}
	return router, nil
}

// newAsker returns the configured remote agent, or nil if its credentials
// are missing.
func newAsker(ctx context.Context, cfg config.ChatConfig) (faqbot.Asker, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewAsker(client, cfg.GeminiModel), nil
	default:
		if cfg.AppToken == "" {
			return nil, nil
		}
		return hiagent.NewAsker(hiagent.NewClient(cfg.APIBase, cfg.AppToken), cfg.UserID), nil
	}
}
