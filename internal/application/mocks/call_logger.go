package mocks

import (
	"context"
	"sync"
)

// LoggedCall is one call captured by CallLogger.
type LoggedCall struct {
	URL      string
	Request  any
	Response any
	IsError  bool
}

// CallLogger records every call it is given.
type CallLogger struct {
	mu    sync.Mutex
	Calls []LoggedCall
}

func (l *CallLogger) LogCall(_ context.Context, url string, request, response any, isError bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Calls = append(l.Calls, LoggedCall{URL: url, Request: request, Response: response, IsError: isError})
}

func (l *CallLogger) URLs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	urls := make([]string, 0, len(l.Calls))
	for _, c := range l.Calls {
		urls = append(urls, c.URL)
	}
	return urls
}
