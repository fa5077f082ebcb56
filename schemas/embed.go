// Package schemas embeds the JSON Schemas for résumé form input and snapshots.
package schemas

import "embed"

// Schema file names.
const (
	FormSchema   = "form.schema.json"
	ResumeSchema = "resume.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
