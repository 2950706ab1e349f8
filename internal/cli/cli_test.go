// internal/cli/cli_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: OS temp dirs, environment
// PURPOSE: Run the fd and fl command trees end to end

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/fast/pkg/config"
	"github.com/arthur-debert/fast/pkg/paths"
	"github.com/arthur-debert/fast/pkg/shell"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t          *testing.T
	home       string
	configFile string
	fdStore    string
	flStore    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	home := t.TempDir()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix) {
			t.Setenv(name, "")
			require.NoError(t, os.Unsetenv(name))
		}
	}

	h := &harness{
		t:          t,
		home:       home,
		configFile: filepath.Join(home, "config", "config.toml"),
		fdStore:    filepath.Join(home, ".fd_storage"),
		flStore:    filepath.Join(home, ".fl_storage"),
	}
	t.Setenv("HOME", home)
	t.Setenv(paths.EnvStateDir, filepath.Join(home, "state"))
	t.Setenv("NO_COLOR", "1")
	return h
}

type result struct {
	out  string
	err  string
	code int
}

func (h *harness) exec(newCmd func(Env) *cobra.Command, implicit string, args ...string) result {
	h.t.Helper()
	var out, errOut bytes.Buffer
	env := Env{
		Out:     &out,
		Err:     &errOut,
		Fs:      afero.NewOsFs(),
		Sources: config.Sources{ConfigFile: h.configFile},
	}
	code := Execute(newCmd(env), args, implicit)
	return result{out: out.String(), err: errOut.String(), code: code}
}

func (h *harness) fd(args ...string) result { return h.exec(NewFdCmd, "go", args...) }
func (h *harness) fl(args ...string) result { return h.exec(NewFlCmd, "view", args...) }

func (h *harness) mkdir(name string) string {
	h.t.Helper()
	dir := filepath.Join(h.home, name)
	require.NoError(h.t, os.MkdirAll(dir, 0755))
	return dir
}

func (h *harness) writeConfig(content string) {
	h.t.Helper()
	require.NoError(h.t, os.MkdirAll(filepath.Dir(h.configFile), 0755))
	require.NoError(h.t, os.WriteFile(h.configFile, []byte(content), 0644))
}

func TestImproveArgs(t *testing.T) {
	known := []string{"add", "list", "go", "rm", "help"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no_args_lists", nil, []string{"list"}},
		{"unknown_token_goes", []string{"abc"}, []string{"go", "abc"}},
		{"known_verb_kept", []string{"list"}, []string{"list"}},
		{"help_kept", []string{"help"}, []string{"help"}},
		{"flag_kept", []string{"--help"}, []string{"--help"}},
		{"short_flag_kept", []string{"-v"}, []string{"-v"}},
		{"add_untouched", []string{"add", "a", "b/c"}, []string{"add", "a", "b/c"}},
		{"go_untouched", []string{"go", "a"}, []string{"go", "a"}},
		{"rm_untouched", []string{"rm", "abc"}, []string{"rm", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImproveArgs(known, tt.args, "go"))
		})
	}

	assert.Equal(t, []string{"view", "g1"}, ImproveArgs([]string{"view", "update"}, []string{"g1"}, "view"))
}

func TestCommandNames(t *testing.T) {
	names := commandNames(NewFlCmd(Env{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}))
	for _, want := range []string{"list", "add", "update", "view", "rm", "export", "config", "version", "completion", "help"} {
		assert.Contains(t, names, want)
	}
}

func TestFdAddAndList(t *testing.T) {
	h := newHarness(t)
	movies := h.mkdir("Movies")
	music := h.mkdir("Music")

	r := h.fd("add", "mov", movies)
	require.Equal(t, 0, r.code, r.err)
	assert.Equal(t, "fast dir 'mov' added -> "+movies+"\n", r.out)

	r = h.fd("add", "mus", music)
	require.Equal(t, 0, r.code, r.err)

	r = h.fd()
	require.Equal(t, 0, r.code, r.err)
	assert.Equal(t, "mov -> "+movies+"\nmus -> "+music+"\n", r.out)

	r = h.fd("list")
	assert.Equal(t, "mov -> "+movies+"\nmus -> "+music+"\n", r.out)
}

func TestFdAddRules(t *testing.T) {
	h := newHarness(t)
	movies := h.mkdir("Movies")
	videos := h.mkdir("Videos")
	require.Equal(t, 0, h.fd("add", "mov", movies).code)

	t.Run("duplicate_without_replace", func(t *testing.T) {
		r := h.fd("add", "mov", videos)
		assert.Equal(t, 0, r.code)
		assert.Contains(t, r.out, "--replace")
		assert.Equal(t, "mov -> "+movies+"\n", h.fd("list").out)
	})

	t.Run("duplicate_with_replace", func(t *testing.T) {
		r := h.fd("add", "-r", "mov", videos)
		assert.Equal(t, 0, r.code)
		assert.Equal(t, "fast dir 'mov' replaced -> "+videos+"\n", r.out)
		assert.Equal(t, "mov -> "+videos+"\n", h.fd("list").out)
	})

	t.Run("invalid_name", func(t *testing.T) {
		r := h.fd("add", "a!xy", movies)
		assert.Equal(t, 0, r.code)
		assert.Contains(t, r.out, "a!xy")
		assert.NotContains(t, h.fd("list").out, "a!xy")
	})

	t.Run("missing_dir", func(t *testing.T) {
		missing := filepath.Join(h.home, "nope")
		r := h.fd("add", "nope", missing)
		assert.Equal(t, 0, r.code)
		assert.Equal(t, "dir '"+missing+"' does not exist, fast dir 'nope' was not created\n", r.out)
	})

	t.Run("home_is_expanded", func(t *testing.T) {
		r := h.fd("add", "vid", "~/Videos")
		assert.Equal(t, 0, r.code, r.err)
		assert.Contains(t, h.fd("list").out, "vid -> "+videos)
	})

	t.Run("wrong_arg_count", func(t *testing.T) {
		r := h.fd("add", "only")
		assert.Equal(t, 1, r.code)
		assert.Contains(t, r.err, "Error:")
	})
}

func TestFdGo(t *testing.T) {
	h := newHarness(t)
	movies := h.mkdir("Movies")
	require.Equal(t, 0, h.fd("add", "mov", movies).code)

	t.Run("explicit", func(t *testing.T) {
		r := h.fd("go", "mov")
		assert.Equal(t, 0, r.code)
		assert.Equal(t, shell.CdCommand(movies)+"\n", r.out)
	})

	t.Run("implicit", func(t *testing.T) {
		r := h.fd("mov")
		assert.Equal(t, 0, r.code)
		assert.Equal(t, "cd "+shell.Quote(movies)+"\n", r.out)
	})

	t.Run("unknown", func(t *testing.T) {
		r := h.fd("xyz")
		assert.Equal(t, 0, r.code)
		assert.Contains(t, r.out, "fast dir 'xyz' does not exist")
		assert.Contains(t, r.out, "fd list")
		assert.False(t, strings.HasPrefix(r.out, shell.CdPrefix))
	})

	t.Run("stale_entry_is_removed", func(t *testing.T) {
		require.NoError(t, os.RemoveAll(movies))

		r := h.fd("mov")
		assert.Equal(t, 0, r.code)
		assert.Equal(t, "dir '"+movies+"' does not exist => removing fast dir 'mov'\n", r.out)
		assert.Empty(t, h.fd("list").out)
	})
}

func TestFdRmTwice(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.fd("add", "mov", h.mkdir("Movies")).code)

	r := h.fd("rm", "mov")
	assert.Equal(t, 0, r.code)
	assert.Equal(t, "fast dir 'mov' was successfully removed\n", r.out)

	r = h.fd("rm", "mov")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "fast dir 'mov' does not exist")
	assert.Empty(t, h.fd("list").out)
}

func TestMalformedStore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.fdStore, []byte(`{"mov": `), 0644))

	r := h.fd("list")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "malformed store file")

	r = h.fd("add", "mus", h.mkdir("Music"))
	assert.Equal(t, 0, r.code, r.err)

	backup, err := os.ReadFile(h.fdStore + ".bak")
	require.NoError(t, err)
	assert.Equal(t, `{"mov": `, string(backup))
	assert.Contains(t, h.fd("list").out, "mus -> ")
}

func TestRmUnknownResetsMalformedStore(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(h.fdStore, []byte(`{"mov": `), 0644))

	r := h.fd("rm", "nope")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "malformed store file")
	assert.Contains(t, r.out, "fast dir 'nope' does not exist")

	data, err := os.ReadFile(h.fdStore)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	backup, err := os.ReadFile(h.fdStore + ".bak")
	require.NoError(t, err)
	assert.Equal(t, `{"mov": `, string(backup))
}

func TestMalformedStoreWithoutBackup(t *testing.T) {
	h := newHarness(t)
	h.writeConfig("[store]\nbackup_malformed = false\n")
	require.NoError(t, os.WriteFile(h.flStore, []byte(`[]`), 0644))

	r := h.fl("add", "g1", "google.com")
	assert.Equal(t, 0, r.code, r.err)
	assert.NoFileExists(t, h.flStore+".bak")
}

func TestStoreCreatedOnFirstUse(t *testing.T) {
	h := newHarness(t)

	r := h.fl()
	assert.Equal(t, 0, r.code, r.err)
	assert.Empty(t, r.out)

	data, err := os.ReadFile(h.flStore)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestSnippetCommand(t *testing.T) {
	h := newHarness(t)

	r := h.fd("snippet", "--shell", "fish")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "function fd")

	t.Setenv("SHELL", "/bin/zsh")
	r = h.fd("snippet")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "--shell zsh")

	r = h.fd("snippet", "--shell", "tcsh")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.err, "Error:")
	assert.Contains(t, r.err, "tcsh")
}

func TestFlAddListView(t *testing.T) {
	h := newHarness(t)

	r := h.fl("add", "g1", "google.com", "--tags", "abc,def")
	require.Equal(t, 0, r.code, r.err)
	assert.Equal(t, "fast link 'g1' added -> google.com\n", r.out)
	require.Equal(t, 0, h.fl("add", "g2", "abc.com").code)
	require.Equal(t, 0, h.fl("add", "mail", "mail.com").code)

	r = h.fl()
	assert.Equal(t,
		"g1              |abc,def             | -> google.com\n"+
			"g2              |                    | -> abc.com\n"+
			"mail            |                    | -> mail.com\n",
		r.out)

	r = h.fl("g")
	assert.Equal(t,
		"g1              |abc,def             | -> google.com\n"+
			"g2              |                    | -> abc.com\n",
		r.out)

	r = h.fl("view", "zzz")
	assert.Equal(t, 0, r.code)
	assert.Empty(t, r.out)

	data, err := os.ReadFile(h.flStore)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"g1": {"link": "google.com", "tags": ["abc", "def"]},
		"g2": {"link": "abc.com"},
		"mail": {"link": "mail.com"}
	}`, string(data))
}

func TestFlAddRules(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.fl("add", "g1", "google.com").code)

	r := h.fl("add", "g1", "abc.com")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "update")

	r = h.fl("add", "g2", "")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "link cannot be empty")

	r = h.fl("add", "a!xy", "abc.com")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "a!xy")
}

func TestFlUpdate(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.fl("add", "g1", "abc", "--tags", "aaa,bbb").code)

	r := h.fl("update", "g1", "--tags", "abc,def")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "fast link 'g1' updated")
	assert.Contains(t, r.out, "|abc,def")

	r = h.fl("update", "g1", "--link", "google.com")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, h.fl("list").out, "|abc,def             | -> google.com")

	r = h.fl("update", "g1")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "nothing to update")

	r = h.fl("update", "g2", "--tags", "mmm,xxx")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "fast link 'g2' does not exist")
}

func TestFlRm(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.fl("add", "g1", "google.com").code)

	assert.Equal(t, "fast link 'g1' was successfully removed\n", h.fl("rm", "g1").out)
	assert.Contains(t, h.fl("rm", "g1").out, "fl list")
}

func TestFlExport(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.fl("add", "g1", "google.com", "--tags", "abc").code)

	r := h.fl("export", "--format", "yaml")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "name: g1")
	assert.Contains(t, r.out, "link: google.com")

	target := filepath.Join(h.home, "links.opml")
	r = h.fl("export", "-f", "opml", "-o", target)
	assert.Equal(t, 0, r.code, r.err)
	assert.Equal(t, "exported 1 fast links to "+target+"\n", r.out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), `url="google.com"`)

	r = h.fl("export", "--format", "csv")
	assert.Equal(t, 1, r.code)
	assert.Empty(t, r.out)
	assert.Contains(t, r.err, "unknown export format 'csv'")
}

func TestConfigAffectsOutput(t *testing.T) {
	h := newHarness(t)
	custom := filepath.Join(h.home, "links.json")
	h.writeConfig("[fl]\nstorage = \"" + custom + "\"\n\n[list]\nname_width = 4\ntags_width = 3\n")

	require.Equal(t, 0, h.fl("add", "g1", "google.com", "--tags", "a").code)
	assert.FileExists(t, custom)
	assert.Equal(t, "g1   |a  | -> google.com\n", h.fl("list").out)

	r := h.fl("config")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "name_width = 4")
	assert.Contains(t, r.out, custom)

	r = h.fl("config", "--defaults")
	assert.Contains(t, r.out, "# name_width = 15")
}

func TestInvalidConfigFails(t *testing.T) {
	h := newHarness(t)
	h.writeConfig("[output]\ncolor = \"rainbow\"\n")

	r := h.fl("list")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.err, "Error:")

	r = h.fl("version")
	assert.Equal(t, 0, r.code, "commands without a store ignore the config")
}

func TestColorFlag(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.fd("add", "mov", h.mkdir("Movies")).code)

	r := h.fd("list", "--color", "always")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "\x1b[")

	r = h.fd("go", "mov", "--color", "always")
	assert.True(t, strings.HasPrefix(r.out, "cd "), "cd lines are never styled")

	r = h.fd("list", "--color", "pink")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.err, "pink")
}

func TestMiscCommands(t *testing.T) {
	h := newHarness(t)

	r := h.fd("version")
	assert.Equal(t, 0, r.code)
	assert.True(t, strings.HasPrefix(r.out, "fd version "))

	r = h.fl("help", "topics")
	assert.Equal(t, 0, r.code)
	for _, topic := range []string{"shell", "storage", "config", "names"} {
		assert.Contains(t, r.out, "  "+topic)
	}

	r = h.fd("help", "storage")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "interrupted")

	r = h.fd("--help")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "snippet")

	r = h.fl("completion", "bash")
	assert.Equal(t, 0, r.code)
	assert.Contains(t, r.out, "fl")

	r = h.fd("frob", "a", "b")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.err, "unknown command")
}

func TestNameCompletion(t *testing.T) {
	h := newHarness(t)
	movies := h.mkdir("Movies")
	require.Equal(t, 0, h.fd("add", "mov", movies).code)

	r := h.fd(cobra.ShellCompRequestCmd, "go", "")
	assert.Equal(t, 0, r.code, r.err)
	assert.Contains(t, r.out, "mov\t"+movies)
}
