package media

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jlaffaye/ftp"
)

const dialTimeout = 10 * time.Second

// FTPStore keeps participant images on an FTP server and serves them
// through a public base URL. It implements domain.MediaStore.
// The connection is established lazily and re-established once after
// a failed transfer.
type FTPStore struct {
	host     string
	port     string
	user     string
	password string
	baseURL  string
	dir      string

	mu   sync.Mutex
	conn *ftp.ServerConn
}

// NewFTPStore creates a new FTPStore; dir is the remote directory keys live under
func NewFTPStore(host, port, user, password, baseURL, dir string) *FTPStore {
	return &FTPStore{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		baseURL:  baseURL,
		dir:      dir,
	}
}

// connect establishes the FTP connection, caller must hold mu
func (s *FTPStore) connect() error {
	addr := s.host + ":" + s.port
	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(dialTimeout))
	if err != nil {
		return fmt.Errorf("failed to connect to FTP: %w", err)
	}

	if err := conn.Login(s.user, s.password); err != nil {
		_ = conn.Quit()
		return fmt.Errorf("failed to login to FTP: %w", err)
	}

	s.conn = conn
	return nil
}

func (s *FTPStore) remotePath(key string) string {
	return s.dir + "/" + key
}

// Upload stores data under key and returns its public URL
func (s *FTPStore) Upload(ctx context.Context, data []byte, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	remotePath := s.remotePath(key)
	if err := s.withRetry(func() error {
		return s.conn.Stor(remotePath, bytes.NewReader(data))
	}); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", remotePath, err)
	}

	return s.baseURL + "/" + remotePath, nil
}

// Delete removes the file stored under key
func (s *FTPStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	remotePath := s.remotePath(key)
	if err := s.withRetry(func() error {
		return s.conn.Delete(remotePath)
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", remotePath, err)
	}

	return nil
}

// withRetry runs op over the cached connection, reconnecting once on failure
func (s *FTPStore) withRetry(op func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		if err := s.connect(); err != nil {
			return err
		}
	}

	err := op()
	if err == nil {
		return nil
	}

	_ = s.conn.Quit()
	s.conn = nil
	if err := s.connect(); err != nil {
		return err
	}
	return op()
}

// Close closes the FTP connection
func (s *FTPStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		err := s.conn.Quit()
		s.conn = nil
		return err
	}
	return nil
}
