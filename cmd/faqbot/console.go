package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/faqbot"
)

const consoleHelp = `Type a message such as "/tyd table" and press enter.
  > text         quote a line in the next message (repeatable)
  !sender name   set the author of the quoted message
  !recall id     recall a message and withdraw the bot's reply
  line\          continue the message on the next line
Each message is echoed with its ID in parentheses, each reply with its ID in brackets.`

// Run executes the console command.
func (c *ConsoleCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, consoleHelp)

	var (
		quoted []string
		sender string
		text   []string
	)

	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := deps.Ctx.Err(); err != nil {
			return err
		}
		line := scanner.Text()

		if len(text) == 0 {
			switch {
			case strings.HasPrefix(line, "> ") || line == ">":
				quoted = append(quoted, strings.TrimPrefix(strings.TrimPrefix(line, ">"), " "))
				continue
			case strings.HasPrefix(line, "!sender "):
				sender = strings.TrimSpace(strings.TrimPrefix(line, "!sender "))
				continue
			case strings.HasPrefix(line, "!recall "):
				recall(deps, strings.TrimSpace(strings.TrimPrefix(line, "!recall ")))
				continue
			}
		}

		if strings.HasSuffix(line, `\`) {
			text = append(text, strings.TrimSuffix(line, `\`))
			continue
		}
		text = append(text, line)

		msg := &faqbot.Message{
			ID:           deps.NewID(),
			Text:         strings.Join(text, "\n"),
			Quoted:       strings.Join(quoted, "\n"),
			QuotedSender: sender,
		}
		quoted, sender, text = nil, "", nil

		fmt.Fprintf(deps.Stdout, "(%s)\n", msg.ID)
		if _, err := answer(deps, msg, c.Out); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func recall(deps *Dependencies, messageID string) {
	replyID, ok := deps.Router.Recall(messageID)
	if !ok {
		fmt.Fprintf(deps.Stdout, "nothing to recall for %s\n", messageID)
		return
	}
	fmt.Fprintf(deps.Stdout, "withdrew reply %s\n", replyID)
}
