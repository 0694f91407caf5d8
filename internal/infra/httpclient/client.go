// Package httpclient talks to a remote quadra server.
package httpclient

import (
	"net"
	"net/http"
	"time"
)

type Config struct {
	// Total timeout for one request. A context deadline can still shorten it.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConnsPerHost int
}

// DefaultConfig leaves room for a full tolerance search on the server side.
func DefaultConfig() Config {
	return Config{
		Timeout:             45 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		ResponseHeader:      40 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 4,
	}
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
