package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// session is the part of an IMAP client the connector relies on
type session interface {
	Login(user, password string) error
	Select(box string) (uint32, error)
	Fetch(from, to uint32) ([][]byte, error)
	Idle(ctx context.Context, wake <-chan struct{}) error
	Noop() error
	Logout() error
	Close() error
}

// dialFunc opens a session, onExists is called from the reader goroutine with the
// mailbox size reported by unilateral EXISTS responses
type dialFunc func(ctx context.Context, cfg ConnectorConfig, onExists func(uint32)) (session, error)

// imapSession adapts go-imap client to session
type imapSession struct {
	client *imapclient.Client
}

func dialIMAP(_ context.Context, cfg ConnectorConfig, onExists func(uint32)) (session, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	opts := &imapclient.Options{
		TLSConfig: &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12},
		UnilateralDataHandler: &imapclient.UnilateralDataHandler{
			Mailbox: func(data *imapclient.UnilateralDataMailbox) {
				if data.NumMessages != nil {
					onExists(*data.NumMessages)
				}
			},
		},
	}

	var client *imapclient.Client
	var err error
	if cfg.TLS {
		client, err = imapclient.DialTLS(addr, opts)
	} else {
		client, err = imapclient.DialInsecure(addr, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return &imapSession{client: client}, nil
}

// Login authenticates, a status response from the server is reported as ErrAuth
func (s *imapSession) Login(user, password string) error {
	if err := s.client.Login(user, password).Wait(); err != nil {
		var imapErr *imap.Error
		if errors.As(err, &imapErr) {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func (s *imapSession) Select(box string) (uint32, error) {
	data, err := s.client.Select(box, nil).Wait()
	if err != nil {
		return 0, err
	}
	return data.NumMessages, nil
}

// Fetch returns raw messages of sequence range from:to in server order, to == 0 means "*"
func (s *imapSession) Fetch(from, to uint32) ([][]byte, error) {
	var seqSet imap.SeqSet
	seqSet.AddRange(from, to)

	section := &imap.FetchItemBodySection{Peek: true}
	cmd := s.client.Fetch(seqSet, &imap.FetchOptions{
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{section},
	})
	defer cmd.Close()

	var raws [][]byte
	for {
		msg := cmd.Next()
		if msg == nil {
			break
		}
		buf, err := msg.Collect()
		if err != nil {
			return nil, fmt.Errorf("collect message: %w", err)
		}
		raws = append(raws, buf.FindBodySection(section))
	}

	if err := cmd.Close(); err != nil {
		return nil, fmt.Errorf("fetch %d:%d: %w", from, to, err)
	}
	return raws, nil
}

// Idle runs IDLE until wake is signaled or ctx is done
func (s *imapSession) Idle(ctx context.Context, wake <-chan struct{}) error {
	cmd, err := s.client.Idle()
	if err != nil {
		return fmt.Errorf("start idle: %w", err)
	}
	select {
	case <-ctx.Done():
	case <-wake:
	}
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("stop idle: %w", err)
	}
	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("idle: %w", err)
	}
	return nil
}

// Noop lets the server report mailbox changes, EXISTS responses reach the unilateral handler
func (s *imapSession) Noop() error {
	return s.client.Noop().Wait()
}

func (s *imapSession) Logout() error {
	return s.client.Logout().Wait()
}

func (s *imapSession) Close() error {
	return s.client.Close()
}
