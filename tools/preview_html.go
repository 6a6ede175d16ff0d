package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cv-renderer/internal/domain"
	"cv-renderer/internal/usecase"
)

// preview_html compiles a fixture to HTML with the template bundles in
// -templates, so template changes can be checked in a browser without Chrome
// in the loop.
func main() {
	in := flag.String("in", "cmd/server/testdata/fixture.json", "fixture path")
	out := flag.String("out", "preview.html", "output path")
	dir := flag.String("templates", "templates", "template bundle directory")
	slug := flag.String("slug", "", "bundle slug to preview (default template when empty)")
	flag.Parse()

	fx, err := domain.LoadFixture(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}
	tpl := fx.Template
	if *slug != "" {
		tpl = &domain.Template{Slug: *slug}
	}

	p := usecase.NewProcessor(nil, nil, nil, usecase.WithResolver(usecase.NewResolver(*dir, nil, nil)))
	html, source, err := p.BuildHTML(context.Background(), fx.CV, fx.Profile, tpl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compile: %v\n", err)
		os.Exit(2)
	}
	if err := os.WriteFile(*out, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s (template: %s)\n", *out, source)
}
