// Package mail connects to an IMAP mailbox, fetches messages and parses them into domain mails
package mail

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"

	"github.com/nl2rss/nl2rss/pkg/domain"
)

const notificationsBuffer = 16

// ConnectorConfig holds mailbox connection parameters
type ConnectorConfig struct {
	Host       string
	Port       int
	TLS        bool
	User       string
	Password   string
	Box        string
	Retries    int
	RetryDelay time.Duration // 5s if zero
}

// Connector owns the single IMAP session of the process
type Connector struct {
	cfg  ConnectorConfig
	dial dialFunc

	mu    sync.Mutex
	sess  session
	total uint32 // messages in the box known to us

	notify   chan uint32
	overflow atomic.Uint32 // new mail counts that didn't fit into notify
	wake     chan struct{}
}

// NewConnector makes a connector, nothing is dialed until Connect
func NewConnector(cfg ConnectorConfig) *Connector {
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	if cfg.Retries < 1 {
		cfg.Retries = 1
	}
	if cfg.Box == "" {
		cfg.Box = "INBOX"
	}
	return &Connector{
		cfg:    cfg,
		dial:   dialIMAP,
		notify: make(chan uint32, notificationsBuffer),
		wake:   make(chan struct{}, 1),
	}
}

// Connect dials and logs in, retrying with a fixed delay up to the configured number of
// attempts. Auth failures are not retried. Exhausted attempts end with ConnectionError.
func (c *Connector) Connect(ctx context.Context) error {
	attempt := 0
	var sess session
	var authErr error
	err := repeater.NewFixed(c.cfg.Retries, c.cfg.RetryDelay).Do(ctx, func() error {
		attempt++
		lgr.Printf("[DEBUG] connection attempt (%d/%d)", attempt, c.cfg.Retries)
		s, err := c.dial(ctx, c.cfg, c.onExists)
		if err != nil {
			if attempt < c.cfg.Retries {
				lgr.Printf("[WARN] failed to connect to the imap server, retrying: %v", err)
			}
			return err
		}
		if err := s.Login(c.cfg.User, c.cfg.Password); err != nil {
			_ = s.Close()
			if errors.Is(err, ErrAuth) {
				authErr = err
				return ErrAuth // terminates retries
			}
			if attempt < c.cfg.Retries {
				lgr.Printf("[WARN] failed to log in to the imap server, retrying: %v", err)
			}
			return err
		}
		sess = s
		return nil
	}, ErrAuth)

	if err != nil {
		if authErr != nil {
			return fmt.Errorf("log in as %s: %w", c.cfg.User, authErr)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ConnectionError{User: c.cfg.User, Password: c.cfg.Password, Host: c.cfg.Host,
			Port: c.cfg.Port, TLS: c.cfg.TLS, Attempts: attempt, Err: err}
	}

	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()
	lgr.Printf("[INFO] connected to the imap server %s:%d", c.cfg.Host, c.cfg.Port)
	return nil
}

// Open selects the configured box and returns its message count
func (c *Connector) Open(ctx context.Context) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	sess, err := c.session()
	if err != nil {
		return 0, err
	}

	lgr.Printf("[DEBUG] opening box %s", c.cfg.Box)
	n, err := sess.Select(c.cfg.Box)
	if err != nil {
		return 0, &BoxError{Box: c.cfg.Box, Err: err}
	}

	c.mu.Lock()
	c.total = n
	c.mu.Unlock()
	lgr.Printf("[INFO] box %s opened, %d message(s)", c.cfg.Box, n)
	return n, nil
}

// Notifications returns counts of newly arrived messages
func (c *Connector) Notifications() <-chan uint32 {
	return c.notify
}

// onExists runs on the imap reader goroutine and must never block
func (c *Connector) onExists(n uint32) {
	c.mu.Lock()
	if n <= c.total {
		c.total = n // expunge shrinks the box
		c.mu.Unlock()
		return
	}
	added := n - c.total
	c.total = n
	c.mu.Unlock()

	select {
	case c.notify <- added:
	default:
		c.overflow.Add(added)
	}
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// WaitNewMail idles until new messages arrive and returns how many did. IDLE is stopped
// before returning, so the session can be used for fetching right away.
func (c *Connector) WaitNewMail(ctx context.Context) (uint32, error) {
	if n := c.drain(); n > 0 {
		return n, nil
	}
	sess, err := c.session()
	if err != nil {
		return 0, err
	}

	for {
		if err := sess.Idle(ctx, c.wake); err != nil {
			return 0, err
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if n := c.drain(); n > 0 {
			return n, nil
		}
	}
}

// CheckNewMail asks the server for mailbox updates with NOOP and returns how many messages
// arrived since the last check. Used instead of WaitNewMail when the server can't IDLE.
func (c *Connector) CheckNewMail(ctx context.Context) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	sess, err := c.session()
	if err != nil {
		return 0, err
	}
	if err := sess.Noop(); err != nil {
		return 0, fmt.Errorf("noop: %w", err)
	}
	return c.drain(), nil
}

// drain collects all pending new mail counts without blocking
func (c *Connector) drain() uint32 {
	var n uint32
	for {
		select {
		case v := <-c.notify:
			n += v
		default:
			return n + c.overflow.Swap(0)
		}
	}
}

// FetchMails fetches and parses messages of the box. n == 0 fetches all of them,
// otherwise the newest n. Messages failing to parse are logged and skipped, the
// result keeps server order.
func (c *Connector) FetchMails(ctx context.Context, n uint32) ([]domain.Mail, error) {
	sess, err := c.session()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	total := c.total
	c.mu.Unlock()
	if total == 0 {
		return []domain.Mail{}, nil
	}

	from, to := uint32(1), uint32(0)
	if n > 0 && n < total {
		from, to = total-n+1, total
	}

	lgr.Printf("[INFO] fetching mails %d:%s", from, seqEnd(to))
	raws, err := sess.Fetch(from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch mails: %w", err)
	}
	lgr.Printf("[INFO] %d mail(s) fetched", len(raws))

	return parseAll(ctx, raws)
}

// parseAll parses messages concurrently, keeping input order in the result
func parseAll(ctx context.Context, raws [][]byte) ([]domain.Mail, error) {
	parsed := make([]*domain.Mail, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := ParseMail(raw)
			if err != nil {
				lgr.Printf("[WARN] skip message %d: %v", i+1, err)
				return nil
			}
			parsed[i] = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mails := make([]domain.Mail, 0, len(raws))
	for _, m := range parsed {
		if m != nil {
			mails = append(mails, *m)
		}
	}
	return mails, nil
}

// Close logs out and closes the connection
func (c *Connector) Close() error {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.mu.Unlock()
	if sess == nil {
		return nil
	}

	if err := sess.Logout(); err != nil {
		lgr.Printf("[DEBUG] imap logout: %v", err)
	}
	if err := sess.Close(); err != nil {
		return fmt.Errorf("close imap connection: %w", err)
	}
	lgr.Printf("[INFO] imap connection closed")
	return nil
}

func (c *Connector) session() (session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return nil, ErrNotConnected
	}
	return c.sess, nil
}

func seqEnd(to uint32) string {
	if to == 0 {
		return "*"
	}
	return fmt.Sprintf("%d", to)
}
