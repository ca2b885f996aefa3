package minisearch

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/faqbot"
)

// SerializationVersion is the only MiniSearch index format understood.
const SerializationVersion = 2

type searchIndex struct {
	SerializationVersion *int                    `json:"serializationVersion"`
	DocumentCount        *int                    `json:"documentCount"`
	DocumentIDs          map[string]string       `json:"documentIds"`
	StoredFields         map[string]storedFields `json:"storedFields"`
}

type storedFields struct {
	Title  *string   `json:"title"`
	Titles *[]string `json:"titles"`
}

// ParseSearchIndex parses a serialized MiniSearch index.
//
// Document IDs are stripped of root, the base URL path. Page titles (entries
// without enclosing headings) also lose their URL fragment so that they link
// to the page itself.
func ParseSearchIndex(root string, data []byte) ([]*Entry, error) {
	var index searchIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "invalid search index: %v", err)
	}

	if index.SerializationVersion == nil || *index.SerializationVersion != SerializationVersion {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "unsupported search index serialization version")
	}
	if index.DocumentCount == nil || index.DocumentIDs == nil || index.StoredFields == nil {
		return nil, faqbot.Errorf(faqbot.EFORMAT, "search index lacks documentCount, documentIds or storedFields")
	}
	if *index.DocumentCount != len(index.DocumentIDs) || *index.DocumentCount != len(index.StoredFields) {
		return nil, faqbot.Errorf(faqbot.EFORMAT,
			"search index counts disagree: documentCount=%d documentIds=%d storedFields=%d",
			*index.DocumentCount, len(index.DocumentIDs), len(index.StoredFields))
	}

	keys := make([]string, 0, len(index.StoredFields))
	for k := range index.StoredFields {
		keys = append(keys, k)
	}
	sortIDs(keys)

	entries := make([]*Entry, 0, len(keys))
	for _, key := range keys {
		fields := index.StoredFields[key]
		if fields.Title == nil || fields.Titles == nil {
			return nil, faqbot.Errorf(faqbot.EFORMAT, "stored fields of document %s lack title or titles", key)
		}
		id, ok := index.DocumentIDs[key]
		if !ok {
			return nil, faqbot.Errorf(faqbot.EFORMAT, "document %s has stored fields but no ID", key)
		}

		u := strings.TrimPrefix(id, root)
		if len(*fields.Titles) == 0 {
			u, _, _ = strings.Cut(u, "#")
		}

		entries = append(entries, &Entry{
			URL:    u,
			Title:  *fields.Title,
			Titles: *fields.Titles,
		})
	}
	return entries, nil
}

// sortIDs orders short document IDs numerically, as MiniSearch assigns them.
// Non-numeric IDs sort after numeric ones, lexically.
func sortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
}
