package plugin

import (
	"context"
	"strings"

	"github.com/fwojciec/faqbot"
	"github.com/fwojciec/faqbot/typst"
)

var typstUsage = `编译 typst 文档。

用法：
/typtyp ⟨文档⟩
/typ ⟨文档⟩
/typdev ⟨文档⟩
/typtyp fonts

/typtyp 和 /typ 使用发布版 typst，而 /typdev 使用开发版 typst。如有需要，可联系管理员更新。

` + typst.PreambleUsage + `

如果引用了先前发言，会存入` + "`re.typ`" + `，可以 import、include 或 read。只考虑直接引用，不考虑引用的引用。引用中开头的“/typtyp ”或“typ ”会被删除。
此外，若引用了先前发言但⟨文档⟩留空，则会将先前发言作为⟨文档⟩。

⟨文档⟩和先前发言中，一行开头的` + "`!!⟨package⟩`" + `会被展开为` + "`#import \"@preview/⟨package⟩:⟨version⟩\": *;`" + `，其中⟨version⟩是当前最新版本。

若在群中使用时误发代码，可撤回原消息，机器人会跟着撤回，除非消息太久远了。`

// Typst serves the compile commands /typtyp, /typ and /typdev.
type Typst struct {
	compiler faqbot.Compiler
	registry faqbot.PackageRegistry

	devExecutable string
	devVersion    string
}

// NewTypst creates the compile commands. devExecutable is the binary used
// by /typdev and devVersion describes it to users.
func NewTypst(compiler faqbot.Compiler, registry faqbot.PackageRegistry, devExecutable, devVersion string) *Typst {
	return &Typst{
		compiler:      compiler,
		registry:      registry,
		devExecutable: devExecutable,
		devVersion:    devVersion,
	}
}

// Commands returns one command per compile profile.
func (t *Typst) Commands() []*faqbot.Command {
	return []*faqbot.Command{
		t.command("typtyp", "编译 typst 文档", typst.ProfileBasic),
		t.command("typ", "编译 typst 文档，页面自动伸缩", typst.ProfileFitPage),
		t.command("typdev", "用开发版 typst 编译文档", typst.ProfileDev),
	}
}

func (t *Typst) command(name, description string, profile typst.Profile) *faqbot.Command {
	return &faqbot.Command{
		Name:        name,
		Description: description,
		Usage:       typstUsage,
		Handler: faqbot.HandlerFunc(func(ctx context.Context, msg *faqbot.Message) (*faqbot.Reply, error) {
			reply, err := t.handle(ctx, msg, profile)
			if reply != nil {
				reply.Recallable = true
			}
			return reply, err
		}),
	}
}

func (t *Typst) handle(ctx context.Context, msg *faqbot.Message, profile typst.Profile) (*faqbot.Reply, error) {
	text := msg.Text
	quoted := typst.CleanReply(msg.Quoted)

	switch {
	case strings.TrimSpace(text) == "fonts":
		fonts, err := t.compiler.Fonts(ctx)
		if err != nil {
			return nil, err
		}
		return faqbot.TextReply(fonts), nil
	case strings.TrimSpace(text) == "" && strings.TrimSpace(quoted) == "":
		return faqbot.TextReply(typstUsage), nil
	}

	var hints []string
	job := &faqbot.CompileJob{Preamble: profile.Preamble()}
	if profile == typst.ProfileDev {
		job.Executable = t.devExecutable
		if t.devVersion != "" {
			hints = append(hints, "typst version: "+t.devVersion+".")
		}
	}

	// The first non-blank part is the document, the second goes to re.typ.
	var docs []string
	for _, part := range []string{text, quoted} {
		if strings.TrimSpace(part) == "" {
			continue
		}
		doc, h, err := t.expand(ctx, part)
		if err != nil {
			return nil, err
		}
		hints = append(hints, h...)
		docs = append(docs, doc)
	}
	job.Document = docs[0]
	if len(docs) > 1 {
		job.Reply = docs[1]
	}

	result, err := t.compiler.Compile(ctx, job)
	if err != nil {
		return nil, err
	}

	reply := &faqbot.Reply{}
	if result.OK {
		reply.Images = result.Pages
	}
	var texts []string
	if result.Diagnostics != "" {
		texts = append(texts, result.Diagnostics)
	}
	if len(hints) > 0 {
		texts = append(texts, strings.Join(hints, "\n"))
	}
	reply.Text = strings.Join(texts, "\n")
	return reply, nil
}

// expand resolves "!!package" lines. The registry is only consulted when
// the document uses them.
func (t *Typst) expand(ctx context.Context, doc string) (string, []string, error) {
	if !typst.HasMagic(doc) {
		return doc, nil, nil
	}
	versions, err := t.registry.LatestVersions(ctx)
	if err != nil {
		return "", nil, err
	}
	expanded, hints := typst.ExpandMagic(doc, versions)
	return expanded, hints, nil
}
