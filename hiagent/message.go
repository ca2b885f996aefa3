package hiagent

import (
	"encoding/json"
	"strings"

	"github.com/fwojciec/faqbot"
)

// MessageInfo is the finished message returned by get_message_info.
type MessageInfo struct {
	AnswerInfo *AnswerInfo `json:"AnswerInfo"`
}

// AnswerInfo holds the answer text and its tracing events.
type AnswerInfo struct {
	Answer string `json:"Answer"`

	// TracingJSONStr is a JSON-encoded list of tracing events. The last one
	// is knowledge_retrieve_end and lists the retrieved documents.
	TracingJSONStr string `json:"TracingJsonStr"`
}

// Source is a document the answer was based on.
type Source struct {
	Name string
	URL  string
}

type tracingEvent struct {
	Docs *struct {
		OutputList []struct {
			Metadata struct {
				DocumentName string `json:"document_name"`
				DatasetName  string `json:"dataset_name"`
				DocumentURL  string `json:"document_url"`
				DocumentID   string `json:"document_id"`
			} `json:"metadata"`
		} `json:"outputList"`
	} `json:"docs"`
}

// ParseMessageID returns the ID of the first "message" event in a
// server-sent event stream.
func ParseMessageID(stream string) (string, error) {
	for _, line := range strings.Split(stream, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}

		var event struct {
			Event string `json:"event"`
			ID    string `json:"id"`
		}
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			return "", faqbot.Errorf(faqbot.EFORMAT, "invalid stream event: %v", err)
		}
		if event.Event == "message" {
			return event.ID, nil
		}
	}
	return "", faqbot.Errorf(faqbot.EFORMAT, "no message event in chat stream")
}

// ParseSources returns the documents listed by the last tracing event.
// Documents without a name fall back to their dataset name, and documents
// without a URL to their ID, since knowledge bases and Q&A bases differ.
func ParseSources(tracingJSON string) ([]Source, error) {
	var events []tracingEvent
	if err := json.Unmarshal([]byte(tracingJSON), &events); err != nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "invalid tracing: %v", err)
	}
	if len(events) == 0 {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "tracing has no events")
	}
	last := events[len(events)-1]
	if last.Docs == nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "last tracing event lists no docs")
	}

	sources := make([]Source, 0, len(last.Docs.OutputList))
	for _, out := range last.Docs.OutputList {
		m := out.Metadata
		s := Source{Name: m.DocumentName, URL: m.DocumentURL}
		if s.Name == "" {
			s.Name = m.DatasetName
		}
		if s.URL == "" {
			s.URL = m.DocumentID
		}
		sources = append(sources, s)
	}
	return sources, nil
}

// FormatAnswer renders the answer followed by its sources.
func FormatAnswer(info *MessageInfo) (string, error) {
	sources, err := ParseSources(info.AnswerInfo.TracingJSONStr)
	if err != nil {
		return "", err
	}

	parts := []string{info.AnswerInfo.Answer, Separator, "回答来源"}
	for _, s := range sources {
		parts = append(parts, s.Name+"\n"+s.URL)
	}
	return strings.Join(parts, "\n\n"), nil
}
