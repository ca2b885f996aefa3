package faqbot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// CommandPrefix starts every command.
const CommandPrefix = "/"

// Message is an incoming chat message addressed to a command.
type Message struct {
	// ID identifies the message on the chat surface.
	ID string

	// Text is the raw text of the message. Handlers receive only the
	// arguments after the command name.
	Text string

	// Quoted is the plain text of the message being replied to, if any.
	Quoted string

	// QuotedSender is the display name of the quoted message's author.
	QuotedSender string
}

// Reply is the bot's answer to a message.
type Reply struct {
	Text   string
	Images [][]byte

	// Recallable marks replies that should be withdrawn if the user
	// recalls the message that triggered them.
	Recallable bool
}

// TextReply returns a Reply carrying only text.
func TextReply(text string) *Reply {
	return &Reply{Text: text}
}

// Handler answers messages for one command.
type Handler interface {
	Handle(ctx context.Context, msg *Message) (*Reply, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, msg *Message) (*Reply, error)

// Handle calls f(ctx, msg).
func (f HandlerFunc) Handle(ctx context.Context, msg *Message) (*Reply, error) {
	return f(ctx, msg)
}

// Command binds a name and its aliases to a handler.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Handler     Handler
}

// Validate returns an error if the command contains invalid fields.
func (c *Command) Validate() error {
	if c.Name == "" {
		return Errorf(EINVALID, "command name required")
	}
	if c.Handler == nil {
		return Errorf(EINVALID, "command %q handler required", c.Name)
	}
	return nil
}

// Router dispatches messages to registered commands.
type Router struct {
	mu       sync.RWMutex
	commands []*Command
	index    map[string]*Command

	history *History
}

// NewRouter returns an empty Router with a reply history of the default size.
func NewRouter() *Router {
	return &Router{
		index:   make(map[string]*Command),
		history: NewHistory(DefaultHistorySize),
	}
}

// Register adds a command. Names and aliases must be unique.
func (r *Router) Register(cmd *Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{cmd.Name}, cmd.Aliases...)
	for _, name := range names {
		if name == "help" {
			return Errorf(EINVALID, "command name %q is reserved", name)
		}
		if _, ok := r.index[name]; ok {
			return Errorf(EINVALID, "command %q already registered", name)
		}
	}
	for _, name := range names {
		r.index[name] = cmd
	}
	r.commands = append(r.commands, cmd)
	return nil
}

// Lookup returns the command registered under name or one of its aliases.
func (r *Router) Lookup(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.index[name]
	return cmd, ok
}

// Commands returns registered commands sorted by name.
func (r *Router) Commands() []*Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]*Command, len(r.commands))
	copy(cmds, r.commands)
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// ParseCommand splits "/name args" into name and args.
// ok is false if text does not start with CommandPrefix.
func ParseCommand(text string) (name, args string, ok bool) {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)
	if !strings.HasPrefix(text, CommandPrefix) {
		return "", "", false
	}
	text = strings.TrimPrefix(text, CommandPrefix)

	end := strings.IndexFunc(text, unicode.IsSpace)
	if end < 0 {
		return text, "", text != ""
	}
	return text[:end], strings.TrimLeftFunc(text[end:], unicode.IsSpace), end > 0
}

// Dispatch routes msg to its command. It returns a nil reply if msg is not
// a known command. Handler errors are returned unchanged; use FailureReply
// to turn them into something the user can read.
func (r *Router) Dispatch(ctx context.Context, msg *Message) (*Reply, error) {
	name, args, ok := ParseCommand(msg.Text)
	if !ok {
		return nil, nil
	}

	if name == "help" {
		return r.help(strings.TrimSpace(args)), nil
	}

	cmd, ok := r.Lookup(name)
	if !ok {
		return nil, nil
	}

	in := *msg
	in.Text = args
	return cmd.Handler.Handle(ctx, &in)
}

// Delivered records that reply, sent with replyID, answered msg.
// Only recallable replies are remembered.
func (r *Router) Delivered(msg *Message, reply *Reply, replyID string) {
	if reply == nil || !reply.Recallable || msg.ID == "" {
		return
	}
	r.history.Push(msg.ID, replyID)
}

// Recall returns the ID of the reply to withdraw after the user recalled
// the message messageID.
func (r *Router) Recall(messageID string) (replyID string, ok bool) {
	return r.history.Pop(messageID)
}

func (r *Router) help(name string) *Reply {
	if name != "" {
		cmd, ok := r.Lookup(strings.TrimPrefix(name, CommandPrefix))
		if !ok {
			return TextReply(fmt.Sprintf("未知命令：%s", name))
		}
		return TextReply(cmd.Usage)
	}

	var sb strings.Builder
	sb.WriteString("可用命令：")
	for _, cmd := range r.Commands() {
		fmt.Fprintf(&sb, "\n%s%s", CommandPrefix, cmd.Name)
		if cmd.Description != "" {
			fmt.Fprintf(&sb, " - %s", cmd.Description)
		}
	}
	fmt.Fprintf(&sb, "\n\n详见 %shelp ⟨命令⟩。", CommandPrefix)
	return TextReply(sb.String())
}

// FailureReply turns a handler error into a generic failure reply.
func FailureReply(err error) *Reply {
	return TextReply("出错了：" + ErrorMessage(err))
}

// SearchQuery joins the message arguments and the quoted text with a blank
// line, skipping parts that are empty.
func SearchQuery(msg *Message) string {
	var parts []string
	if s := strings.TrimSpace(msg.Text); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(msg.Quoted); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n")
}
