package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REDIS_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	renderInput, renderOut, renderHTML = "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderCommand_HTMLOnly(t *testing.T) {
	htmlPath := filepath.Join(t.TempDir(), "cv.html")
	out, err := runCLI(t, "render", "--input", "testdata/fixture.json", "--html", htmlPath)
	require.NoError(t, err)
	assert.Contains(t, out, "template: default")

	b, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", doc.Find("h1").Text())
	assert.Equal(t, "Backend Engineer", doc.Find("title").Text())
	assert.Equal(t, 2, doc.Find(".section-experience .item").Length())
	assert.Contains(t, doc.Find(".section-experience").Text(), "03/2021 - Atual")
	assert.Contains(t, doc.Find(".section-summary").Text(), "sistemas distribuídos")
	assert.True(t, strings.Contains(doc.Find(".section-certifications").Text(), "Sem expiração"))
}

func TestRenderCommand_RequiresOutput(t *testing.T) {
	_, err := runCLI(t, "render", "--input", "testdata/fixture.json")
	assert.ErrorContains(t, err, "nothing to do")
}

func TestRenderCommand_MissingFixture(t *testing.T) {
	_, err := runCLI(t, "render", "--input", "testdata/missing.json", "--html", filepath.Join(t.TempDir(), "x.html"))
	assert.Error(t, err)
}
