package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "normalizes line endings and spaces",
			in:   "Senior  Engineer\r\nRemote   role",
			want: "Senior Engineer\nRemote role",
		},
		{
			name: "collapses blank line runs",
			in:   "a\n\n\n\n\nb",
			want: "a\n\nb",
		},
		{
			name: "preserves bullet indentation",
			in:   "Requirements:\n  - Go\n  - SQL",
			want: "Requirements:\n  - Go\n  - SQL",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestJobFromTextTooShort(t *testing.T) {
	_, err := JobFromText("too short")

	var jts *JobTooShortError
	require.ErrorAs(t, err, &jts)
	assert.Equal(t, 9, jts.Length)
}

func TestJobFromText(t *testing.T) {
	text, err := JobFromText("  We are hiring a senior Go engineer to build services.  ")
	require.NoError(t, err)
	assert.Equal(t, "We are hiring a senior Go engineer to build services.", text)
}

func TestJobFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("We are hiring a senior Go engineer to build services."), 0644))

	text, err := JobFromFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "senior Go engineer")
}

func TestJobFromFileMissing(t *testing.T) {
	_, err := JobFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestJobFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
			<nav>Menu items</nav>
			<div class="job-description">We are hiring a senior Go engineer to build distributed services.</div>
			<footer>Copyright</footer>
		</body></html>`)
	}))
	defer srv.Close()

	text, err := JobFromURL(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "senior Go engineer")
	assert.NotContains(t, text, "Menu items")
	assert.NotContains(t, text, "Copyright")
}

func TestJobFromURLBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := JobFromURL(context.Background(), srv.URL)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Message, "404")
}

func TestJobFromURLInvalid(t *testing.T) {
	_, err := JobFromURL(context.Background(), "not-a-url")
	assert.Error(t, err)
}
