package scaffold

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDocsURL is the URL to download methodology documents from.
	// GitHub API provides tarballs at /repos/{owner}/{repo}/tarball/{ref}
	DefaultDocsURL = "https://api.github.com/repos/foolishimp/ai_init/tarball/main"

	// docsRoot is the repository directory holding the documents.
	docsRoot = "claude_tasks"
)

// RequiredDocs lists the documents an installed doc set must contain.
var RequiredDocs = []string{
	"QUICK_REFERENCE.md",
	"PRINCIPLES_QUICK_CARD.md",
	"DEVELOPMENT_PROCESS.md",
}

// HTTPClient is an interface for HTTP operations to allow mocking in tests.
type HTTPClient interface {
	Get(url string) (*http.Response, error)
}

// Installer downloads the methodology documents from a source tarball
// into the workspace directory, replacing the embedded templates.
type Installer struct {
	targetDir  string
	httpClient HTTPClient
	docsURL    string
}

// NewInstaller creates an installer targeting the workspace directory.
func NewInstaller(targetDir string) *Installer {
	return &Installer{
		targetDir:  targetDir,
		httpClient: http.DefaultClient,
		docsURL:    DefaultDocsURL,
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing).
func (i *Installer) SetHTTPClient(client HTTPClient) {
	i.httpClient = client
}

// SetDocsURL sets a custom tarball URL (useful for testing).
func (i *Installer) SetDocsURL(url string) {
	i.docsURL = url
}

// Install downloads and extracts the documents, verifying the required
// set is present. Partial installs are cleaned up on failure.
func (i *Installer) Install() error {
	if err := os.MkdirAll(i.targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create docs directory: %w", err)
	}

	resp, err := i.httpClient.Get(i.docsURL)
	if err != nil {
		return fmt.Errorf("failed to download docs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download docs: HTTP %d", resp.StatusCode)
	}

	written, err := i.extractTarball(resp.Body)
	if err != nil {
		removeAll(written)
		return fmt.Errorf("failed to extract docs: %w", err)
	}

	if err := i.verify(); err != nil {
		removeAll(written)
		return err
	}

	return nil
}

// extractTarball extracts markdown documents found under the tarball's
// claude_tasks/ directory. GitHub tarballs carry a root directory
// prefix that is stripped. Returns the paths written so far, for
// cleanup on failure.
func (i *Installer) extractTarball(r io.Reader) ([]string, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	var rootPrefix string
	var written []string

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, fmt.Errorf("failed to read tar entry: %w", err)
		}

		// Detect root prefix from first entry, e.g. "foolishimp-ai_init-abc123/"
		if rootPrefix == "" {
			parts := strings.SplitN(header.Name, "/", 2)
			if len(parts) > 0 {
				rootPrefix = parts[0] + "/"
			}
		}

		relPath := strings.TrimPrefix(header.Name, rootPrefix)
		if !strings.HasPrefix(relPath, docsRoot+"/") {
			continue
		}
		relPath = strings.TrimPrefix(relPath, docsRoot+"/")
		if relPath == "" || header.Typeflag != tar.TypeReg || !strings.HasSuffix(relPath, ".md") {
			continue
		}

		// Security: reject paths with parent directory traversal
		if strings.Contains(relPath, "..") {
			continue
		}
		targetPath := filepath.Join(i.targetDir, relPath)
		if !strings.HasPrefix(filepath.Clean(targetPath), filepath.Clean(i.targetDir)) {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return written, fmt.Errorf("failed to create parent directory for %s: %w", targetPath, err)
		}
		f, err := os.Create(targetPath)
		if err != nil {
			return written, fmt.Errorf("failed to create file %s: %w", targetPath, err)
		}
		written = append(written, targetPath)
		// Use a limited reader to prevent decompression bombs
		limited := io.LimitReader(tr, 10*1024*1024) // 10MB max per file
		if _, err := io.Copy(f, limited); err != nil {
			f.Close()
			return written, fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}
		f.Close()
	}

	return written, nil
}

// verify checks that all required documents are present.
func (i *Installer) verify() error {
	for _, doc := range RequiredDocs {
		path := filepath.Join(i.targetDir, doc)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("docs source missing required document %q", doc)
		}
	}
	return nil
}

func removeAll(paths []string) {
	for _, path := range paths {
		os.Remove(path)
	}
}
