// Package shell produces the shell integration for fd.
//
// fd cannot change the directory of the shell that runs it, so `fd go`
// prints a `cd` command and a shell function wrapping the binary evaluates
// it. Anything else fd prints is passed through untouched.
package shell

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/fast/pkg/errors"
)

// Supported shells
const (
	Bash = "bash"
	Zsh  = "zsh"
	Fish = "fish"
)

// Shells lists the shells a snippet can be generated for.
var Shells = []string{Bash, Zsh, Fish}

// CdPrefix starts every line the wrapper evaluates.
const CdPrefix = "cd "

const posixSnippet = `# fast dirs shell integration (%[2]s)
# add to your shell rc file: eval "$(%[1]s snippet --shell %[2]s)"
%[1]s() {
    local out rc
    out="$(command %[1]s "$@")"
    rc=$?
    case "$out" in
        "cd "*) eval "$out" ;;
        "") ;;
        *) printf '%%s\n' "$out" ;;
    esac
    return $rc
}`

const fishSnippet = `# fast dirs shell integration (fish)
# add to config.fish: %[1]s snippet --shell fish | source
function %[1]s
    set -l out (command %[1]s $argv | string collect)
    set -l code $pipestatus[1]
    if string match -q -- 'cd *' $out
        eval $out
    else if test -n "$out"
        printf '%%s\n' $out
    end
    return $code
end`

// GetShellIntegrationSnippet returns the wrapper function for shell. bin is
// the name of the fd executable. An empty shell means bash.
func GetShellIntegrationSnippet(shell, bin string) (string, error) {
	if bin == "" {
		bin = "fd"
	}
	switch shell {
	case Bash, Zsh:
		return fmt.Sprintf(posixSnippet, bin, shell), nil
	case "":
		return fmt.Sprintf(posixSnippet, bin, Bash), nil
	case Fish:
		return fmt.Sprintf(fishSnippet, bin), nil
	}
	return "", errors.Newf(errors.ErrInvalidInput,
		"unsupported shell '%s'. Hint: use one of %s", shell, strings.Join(Shells, ", "))
}

// CdCommand returns the line `fd go` prints for dir, quoted so that the
// wrapper's eval sees a single argument.
func CdCommand(dir string) string {
	return CdPrefix + Quote(dir)
}

// Quote returns s unchanged when it only holds characters no shell treats
// specially, and single-quoted otherwise.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, needsQuoting) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("/._-+,:@%", r)
}
