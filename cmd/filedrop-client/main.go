// Command filedrop-client is a small CLI for talking to a filedrop server
// from scripts and terminals.
//
// Usage:
//
//	filedrop-client [-server URL] upload <path>
//	filedrop-client [-server URL] list
//	filedrop-client [-server URL] health
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fatih/color"
)

const (
	defaultServerURL = "http://localhost:8080"

	uploadTimeout  = 30 * time.Second
	requestTimeout = 10 * time.Second

	retryAttempts = 3
	retryDelay    = 500 * time.Millisecond
)

func main() {
	serverURL := flag.String("server", defaultServerURL, "base URL of the filedrop server")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	base := strings.TrimRight(*serverURL, "/")

	var err error
	switch args[0] {
	case "upload":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		err = runUpload(base, args[1])
	case "list":
		err = runList(base)
	case "health":
		err = runHealth(base)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		failuref("error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `filedrop-client - upload and inspect files on a filedrop server

Usage:
  filedrop-client [-server URL] upload <path>
  filedrop-client [-server URL] list
  filedrop-client [-server URL] health

Flags:
`)
	flag.PrintDefaults()
}

// --- Commands ---

type uploadResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	Timestamp string `json:"timestamp"`
}

func runUpload(base, path string) error {
	// Read the file once up front so each retry attempt can rebuild the
	// multipart body from the same bytes.
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: uploadTimeout}
	filename := filepath.Base(path)

	var out uploadResponse
	err = doWithRetry(func() error {
		body, contentType, err := buildMultipart(filename, data)
		if err != nil {
			return retry.Unrecoverable(err)
		}

		resp, err := client.Post(base+"/upload", contentType, body)
		if err != nil {
			return err
		}

		return decodeResponse(resp, &out)
	})
	if err != nil {
		return err
	}

	successf("uploaded %s\n", path)
	fmt.Printf("  stored as: %s\n", out.Filename)
	fmt.Printf("  size:      %d bytes\n", out.Size)
	fmt.Printf("  timestamp: %s\n", out.Timestamp)

	return nil
}

type listResponse struct {
	Files []struct {
		Name     string `json:"name"`
		Size     int64  `json:"size"`
		Modified string `json:"modified"`
	} `json:"files"`
}

func runList(base string) error {
	client := &http.Client{Timeout: requestTimeout}

	var out listResponse
	err := doWithRetry(func() error {
		resp, err := client.Get(base + "/files")
		if err != nil {
			return err
		}

		return decodeResponse(resp, &out)
	})
	if err != nil {
		return err
	}

	if len(out.Files) == 0 {
		fmt.Println("no files uploaded yet")
		return nil
	}

	for _, f := range out.Files {
		fmt.Printf("%-44s %12d  %s\n", f.Name, f.Size, f.Modified)
	}
	fmt.Printf("%d file(s)\n", len(out.Files))

	return nil
}

type healthResponse struct {
	Status       string `json:"status"`
	UploadFolder string `json:"upload_folder"`
	Timestamp    string `json:"timestamp"`
}

func runHealth(base string) error {
	client := &http.Client{Timeout: requestTimeout}

	var out healthResponse
	err := doWithRetry(func() error {
		resp, err := client.Get(base + "/health")
		if err != nil {
			return err
		}

		return decodeResponse(resp, &out)
	})
	if err != nil {
		return err
	}

	successf("status: %s\n", out.Status)
	fmt.Printf("  upload folder: %s\n", out.UploadFolder)
	fmt.Printf("  timestamp:     %s\n", out.Timestamp)

	return nil
}

// --- HTTP plumbing ---

// apiError is a non-2xx response decoded from the server's error envelope.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (%s, http %d)", e.Message, e.Code, e.Status)
}

func buildMultipart(filename string, data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &apiError{
			Status:  resp.StatusCode,
			Code:    "UNKNOWN",
			Message: http.StatusText(resp.StatusCode),
		}

		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}

		// Client errors are deterministic: retrying them wastes attempts.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return retry.Unrecoverable(apiErr)
		}
		return apiErr
	}

	return json.Unmarshal(raw, out)
}

func doWithRetry(op func() error) error {
	return retry.Do(
		op,
		retry.Attempts(retryAttempts),
		retry.Delay(retryDelay),
		retry.MaxJitter(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			fmt.Fprintf(os.Stderr, "attempt %d failed: %v, retrying\n", n+1, err)
		}),
	)
}

// --- Output helpers ---

func successf(format string, args ...any) {
	color.New(color.FgGreen).Printf(format, args...)
}

func failuref(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, format, args...)
}
