package export

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/confluence-export/api"
)

// exportServer serves a two-page tree: root 100 with one leaf child 200.
func exportServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/rest/api/content/100" && r.URL.Query().Get("expand") == "body.storage":
			w.Write([]byte(`{"id": "100", "title": "Home", "body": {"storage": {"value": "<h1>Welcome</h1>"}}}`))
		case r.URL.Path == "/rest/api/content/100/child/page":
			w.Write([]byte(`{"results": [{"id": "200", "title": "Child"}]}`))
		case r.URL.Path == "/rest/api/content/200":
			w.Write([]byte(`{"id": "200", "title": "Child", "body": {"storage": {"value": "<p>Leaf</p>"}}}`))
		case strings.HasSuffix(r.URL.Path, "/child/page"), strings.HasSuffix(r.URL.Path, "/child/attachment"):
			w.Write([]byte(`{"results": []}`))
		case r.URL.Path == "/rest/api/content":
			w.Write([]byte(`{"results": [{"id": "100", "title": "Home"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "not found"}`))
		}
	}))
}

func TestRunExport_ByID(t *testing.T) {
	server := exportServer(t)
	defer server.Close()

	client := api.NewClient(server.URL, "test@example.com", "token")
	outDir := t.TempDir()
	opts := &exportOptions{outputDir: outDir, noColor: true}

	err := runExport(context.Background(), "100", opts, client)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Home")
	assert.FileExists(t, filepath.Join(outDir, "Child.md"))
}

func TestRunExport_ByDisplayURL(t *testing.T) {
	server := exportServer(t)
	defer server.Close()

	client := api.NewClient(server.URL, "test@example.com", "token")
	outDir := t.TempDir()
	opts := &exportOptions{outputDir: outDir, noColor: true}

	err := runExport(context.Background(), server.URL+"/display/DOCS/Home", opts, client)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "index.md"))
}

func TestRunExport_ByPageURL(t *testing.T) {
	server := exportServer(t)
	defer server.Close()

	client := api.NewClient(server.URL, "test@example.com", "token")
	outDir := t.TempDir()
	opts := &exportOptions{outputDir: outDir, noColor: true}

	err := runExport(context.Background(), server.URL+"/spaces/DOCS/pages/100/Home", opts, client)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "index.md"))
}

func TestRunExport_KeepRaw(t *testing.T) {
	server := exportServer(t)
	defer server.Close()

	client := api.NewClient(server.URL, "test@example.com", "token")
	outDir := t.TempDir()
	opts := &exportOptions{outputDir: outDir, keepRaw: true, noColor: true}

	err := runExport(context.Background(), "100", opts, client)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "raw.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Welcome</h1>", string(data))

	data, err = os.ReadFile(filepath.Join(outDir, "Child.raw.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p>Leaf</p>", string(data))
}

func TestRunExport_MissingRoot(t *testing.T) {
	server := exportServer(t)
	defer server.Close()

	client := api.NewClient(server.URL, "test@example.com", "token")
	opts := &exportOptions{outputDir: t.TempDir(), noColor: true}

	err := runExport(context.Background(), "999", opts, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to retrieve page 999")
}

func TestNewCmdExport_Flags(t *testing.T) {
	cmd := NewCmdExport()

	assert.Equal(t, "export <page-url-or-id>", cmd.Use)

	outFlag := cmd.Flags().Lookup("out")
	require.NotNil(t, outFlag)
	assert.Equal(t, "", outFlag.DefValue)

	rawFlag := cmd.Flags().Lookup("raw")
	require.NotNil(t, rawFlag)
	assert.Equal(t, "false", rawFlag.DefValue)
}
