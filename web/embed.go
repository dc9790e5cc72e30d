package web

import "embed"

// Templates embeds the dashboard layouts, partials and pages.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

// Static embeds the dashboard stylesheet.
//
//go:embed static/css/*
var Static embed.FS
