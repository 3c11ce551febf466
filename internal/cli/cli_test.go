package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/candor/internal/model"
)

func TestParseStarRating(t *testing.T) {
	tests := []struct {
		input   string
		want    *float64
		wantErr string
	}{
		{input: ""},
		{input: "  "},
		{input: "4.5", want: ptr(4.5)},
		{input: " 1 ", want: ptr(1)},
		{input: "0", wantErr: "between 1 and 5"},
		{input: "5.5", wantErr: "between 1 and 5"},
		{input: "five", wantErr: "invalid star rating"},
		{input: "NaN", wantErr: "invalid star rating"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseStarRating(tt.input)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestReviewText(t *testing.T) {
	text, err := reviewText(strings.NewReader("ignored"), []string{"Great", "pizza"})
	require.NoError(t, err)
	assert.Equal(t, "Great pizza", text)

	text, err = reviewText(strings.NewReader("From stdin\n"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "From stdin", text)

	text, err = reviewText(strings.NewReader("Piped review\r\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Piped review", text)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Candor Configuration File"))

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, model.DefaultConfig().Batch, cfg.Batch)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	assert.ErrorContains(t, writeDefaultConfig(path), "already exists")
}

func TestActiveRules(t *testing.T) {
	listing, err := activeRules(model.DefaultConfig())
	require.NoError(t, err)

	require.NotEmpty(t, listing.Groups)
	assert.Equal(t, "advertisement-strong", listing.Groups[0].Category)
	assert.Equal(t, "promo-phrase", listing.Groups[0].Rules[0].ID)
	assert.Contains(t, listing.Suspicious, "guarantee")
	assert.Contains(t, listing.Types, "coffee_shop")

	var buf bytes.Buffer
	require.NoError(t, writeRules(&buf, listing))
	assert.Contains(t, buf.String(), "personal-info (3)")

	cfg := model.DefaultConfig()
	cfg.Analysis.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = activeRules(cfg)
	assert.ErrorContains(t, err, "load business catalog")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CANDOR_LOGGING_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"analyze", "--no-color", "-o", "json", "--rating", "4", "Call us at 555-123-4567 for a discount"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var result model.AnalysisResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, model.StatusAdvertisement, result.Status)
	assert.Equal(t, 4.0, result.Analysis.Metadata.Insights["star_rating"])
}
