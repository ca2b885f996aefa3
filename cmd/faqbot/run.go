package main

import (
	"github.com/fwojciec/faqbot"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	msg := &faqbot.Message{
		ID:           deps.NewID(),
		Text:         c.Message,
		Quoted:       c.Quote,
		QuotedSender: c.Sender,
	}

	ok, err := answer(deps, msg, c.Out)
	if err != nil {
		return err
	}
	if !ok {
		return faqbot.Errorf(faqbot.ENOTFOUND, "%q is not a command. Run 'faqbot commands' to list them", c.Message)
	}
	return nil
}
