// Package views embeds the HTML templates so the binary carries its pages.
package views

import "embed"

//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS
