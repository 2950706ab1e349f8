package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgFdShort         = "Fast dirs: short names for directories"
	MsgFlShort         = "Fast links: short names for links"
	MsgListShort       = "List all entries sorted by name"
	MsgFdAddShort      = "Add a new fast dir"
	MsgFlAddShort      = "Add a new fast link"
	MsgGoShort         = "Print the cd command for a fast dir"
	MsgRmShort         = "Remove an entry"
	MsgUpdateShort     = "Update the link or tags of a fast link"
	MsgViewShort       = "Show fast links whose name contains a substring"
	MsgExportShort     = "Export fast links as json, yaml or opml"
	MsgSnippetShort    = "Output shell integration snippet"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Result messages
	MsgDirAdded        = "fast dir '%s' added -> %s"
	MsgDirReplaced     = "fast dir '%s' replaced -> %s"
	MsgDirRemoved      = "fast dir '%s' was successfully removed"
	MsgDirNotFound     = "fast dir '%s' does not exist. Hint: try 'fd list' command for a complete list of fast dirs"
	MsgDirMissing      = "dir '%s' does not exist, fast dir '%s' was not created"
	MsgDirStale        = "dir '%s' does not exist => removing fast dir '%s'"
	MsgLinkAdded       = "fast link '%s' added -> %s"
	MsgLinkUpdated     = "fast link '%s' updated"
	MsgLinkRemoved     = "fast link '%s' was successfully removed"
	MsgLinkNotFound    = "fast link '%s' does not exist. Hint: try 'fl list' command for a complete list of fast links"
	MsgNoMatch         = "no fast link matches '%s'"
	MsgExportWritten   = "exported %d fast links to %s"
	MsgVersionFormat   = "%s version %s\n  commit: %s\n  built:  %s\n"
	MsgErrorPrefix     = "Error:"
	MsgExportTitle     = "fast links"
	MsgInvalidColor    = "invalid --color value '%s'. Hint: use auto, always or never"
	MsgNothingToUpdate = "nothing to update for fast link '%s'. Hint: pass --link or --tags"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagColor    = "Color output: auto, always or never (default from config)"
	MsgFlagReplace  = "Replace the fast dir if it already exists"
	MsgFlagTags     = "Comma separated tags"
	MsgFlagLink     = "New link"
	MsgFlagShell    = "Shell type (bash, zsh, fish)"
	MsgFlagFormat   = "Export format (json, yaml, opml)"
	MsgFlagOutput   = "Write the export to a file instead of stdout"
	MsgFlagDefaults = "Print the commented default configuration instead"
)

// Long messages from embedded files
var (
	//go:embed msgs/fd-long.txt
	msgFdLongRaw string
	MsgFdLong    = strings.TrimSpace(msgFdLongRaw)

	//go:embed msgs/fl-long.txt
	msgFlLongRaw string
	MsgFlLong    = strings.TrimSpace(msgFlLongRaw)

	//go:embed msgs/go-long.txt
	msgGoLongRaw string
	MsgGoLong    = strings.TrimSpace(msgGoLongRaw)

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/snippet-long.txt
	msgSnippetLongRaw string
	MsgSnippetLong    = strings.TrimSpace(msgSnippetLongRaw)

	//go:embed msgs/fd-example.txt
	msgFdExampleRaw string
	MsgFdExample    = strings.TrimSpace(msgFdExampleRaw)

	//go:embed msgs/fl-example.txt
	msgFlExampleRaw string
	MsgFlExample    = strings.TrimSpace(msgFlExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
