// Package hiagent implements faqbot.Asker against a HiAgent application's
// backend service API.
//
// One question takes three calls: create a conversation, ask in streaming
// mode (blocking mode omits the tracing that lists answer sources), then
// fetch the finished message by ID.
package hiagent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/faqbot"
	"github.com/go-resty/resty/v2"
)

// DefaultAPIBase is the API root of Agent.BIT.
const DefaultAPIBase = "https://agent.bit.edu.cn/api/proxy/api/v1"

// DefaultUserID identifies the bot to the agent. Users are anonymous, so
// any fixed value works.
const DefaultUserID = "通讯官"

// QueryTimeout bounds the streaming query.
const QueryTimeout = 60 * time.Second

// Separator sits between the answer and its sources.
var Separator = strings.Repeat("═", 6)

// Ensure Asker implements faqbot.Asker at compile time.
var _ faqbot.Asker = (*Asker)(nil)

// Asker asks a HiAgent application.
type Asker struct {
	client *resty.Client
	userID string
}

// NewClient returns a resty client for the API at apiBase authenticated
// with the application's API key.
func NewClient(apiBase, appToken string) *resty.Client {
	return resty.New().
		SetBaseURL(apiBase).
		SetHeader("ApiKey", appToken).
		SetHeader("Content-Type", "application/json")
}

// NewAsker creates a new Asker. If userID is empty DefaultUserID is used.
func NewAsker(client *resty.Client, userID string) *Asker {
	if userID == "" {
		userID = DefaultUserID
	}
	return &Asker{client: client, userID: userID}
}

// Ask implements faqbot.Asker.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", faqbot.Errorf(faqbot.EINVALID, "question required")
	}

	conversationID, err := a.createConversation(ctx)
	if err != nil {
		return "", err
	}

	messageID, err := a.query(ctx, conversationID, question)
	if err != nil {
		return "", err
	}

	info, err := a.messageInfo(ctx, messageID)
	if err != nil {
		return "", err
	}

	return FormatAnswer(info)
}

func (a *Asker) createConversation(ctx context.Context) (string, error) {
	body, err := a.post(ctx, "/create_conversation", map[string]any{
		"UserID": a.userID,
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		Conversation *struct {
			AppConversationID string `json:"AppConversationID"`
		} `json:"Conversation"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", faqbot.Errorf(faqbot.EFORMAT, "invalid create_conversation response: %v", err)
	}
	if resp.Conversation == nil || resp.Conversation.AppConversationID == "" {
		return "", faqbot.Errorf(faqbot.EFORMAT, "create_conversation response lacks AppConversationID")
	}
	return resp.Conversation.AppConversationID, nil
}

func (a *Asker) query(ctx context.Context, conversationID, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	body, err := a.post(ctx, "/chat_query_v2", map[string]any{
		"UserID":            a.userID,
		"Query":             question,
		"AppConversationID": conversationID,
		"ResponseMode":      "streaming",
	})
	if err != nil {
		return "", err
	}
	return ParseMessageID(string(body))
}

func (a *Asker) messageInfo(ctx context.Context, messageID string) (*MessageInfo, error) {
	body, err := a.post(ctx, "/get_message_info", map[string]any{
		"UserID":    a.userID,
		"MessageID": messageID,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		MessageInfo *MessageInfo `json:"MessageInfo"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "invalid get_message_info response: %v", err)
	}
	if resp.MessageInfo == nil || resp.MessageInfo.AnswerInfo == nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "get_message_info response lacks MessageInfo.AnswerInfo")
	}
	return resp.MessageInfo, nil
}

func (a *Asker) post(ctx context.Context, path string, payload map[string]any) ([]byte, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s error (status %d): %s", path, resp.StatusCode(), resp.String())
	}
	return resp.Body(), nil
}
