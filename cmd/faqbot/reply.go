package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/faqbot"
)

// answer dispatches msg and prints the reply. It returns false if msg was
// not a command. Handler errors are logged and answered with a failure
// reply, as a chat surface would.
func answer(deps *Dependencies, msg *faqbot.Message, outDir string) (bool, error) {
	reply, err := deps.Router.Dispatch(deps.Ctx, msg)
	if err != nil {
		deps.Logger.Error("command failed", "message", msg.ID, "err", err)
		reply = faqbot.FailureReply(err)
	}
	if reply == nil {
		return false, nil
	}

	replyID := deps.NewID()
	if err := printReply(deps, reply, replyID, outDir); err != nil {
		return true, err
	}
	deps.Router.Delivered(msg, reply, replyID)
	return true, nil
}

// printReply writes reply text to stdout and images to outDir.
func printReply(deps *Dependencies, reply *faqbot.Reply, replyID, outDir string) error {
	fmt.Fprintf(deps.Stdout, "[%s]\n", replyID)
	if reply.Text != "" {
		fmt.Fprintln(deps.Stdout, reply.Text)
	}

	if len(reply.Images) == 0 {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for i, img := range reply.Images {
		path := filepath.Join(outDir, fmt.Sprintf("%s-%d.png", replyID, i+1))
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "image: %s\n", path)
	}
	return nil
}
