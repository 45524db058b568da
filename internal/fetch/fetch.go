// Package fetch loads the raw statement text from a local file or an
// HTTP(S) URL. It is a thin I/O wrapper: the whole payload is read in
// one pass and handed to the parser, or an error is returned and the
// caller keeps its previous state.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a single HTTP fetch of the source file.
const DefaultTimeout = 30 * time.Second

// Load reads the statement text from source, which is either a local
// file path or an http(s) URL.
func Load(ctx context.Context, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return loadURL(ctx, source)
	}
	return loadFile(source)
}

func loadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("error reading statement file: %w", err)
	}
	return string(data), nil
}

func loadURL(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("error building statement request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error fetching statement: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error fetching statement: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading statement response: %w", err)
	}
	return string(data), nil
}
