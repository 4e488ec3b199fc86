package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/katalvlaran/depbracket/config"
	"github.com/katalvlaran/depbracket/deptree"
	"github.com/katalvlaran/depbracket/format/conllu"
	"github.com/katalvlaran/depbracket/format/displacy"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const janDoc = `{"words":[{"text":"Jan","tag":"NOUN"},{"text":"biegnie","tag":"VERB"},{"text":"szybko","tag":"ADV"}],"arcs":[{"start":1,"end":2,"label":"advmod","dir":"right"},{"start":0,"end":1,"label":"nsubj","dir":"left"}]}`

// cycleDoc has no word without a head.
const cycleDoc = `{"words":[{"text":"a","tag":"NOUN"},{"text":"b","tag":"NOUN"}],"arcs":[{"start":0,"end":1,"label":"x","dir":"right"},{"start":0,"end":1,"label":"y","dir":"left"}]}`

// forestDoc has two words without a head.
const forestDoc = `{"words":[{"text":"Tak","tag":"PART"},{"text":"Nie","tag":"PART"}],"arcs":[]}`

// badDirDoc has an arc with an unknown direction.
const badDirDoc = `{"words":[{"text":"a","tag":"NOUN"},{"text":"b","tag":"VERB"}],"arcs":[{"start":0,"end":1,"label":"x","dir":"up"}]}`

// badHeadCoNLLU points a HEAD past the end of its sentence.
const badHeadCoNLLU = "1\tAla\tAla\tNOUN\t_\t_\t9\tnsubj\t_\t_\n" +
	"2\tśpi\tspać\tVERB\t_\t_\t0\troot\t_\t_\n\n"

const janCoNLLU = "1\tJan\tJan\tPROPN\tSUBST\t_\t2\tnsubj\t_\t_\n" +
	"2\tbiegnie\tbiec\tVERB\tFIN\t_\t0\troot\t_\t_\n" +
	"3\tszybko\tszybko\tADV\tADV\t_\t2\tadvmod\t_\t_\n\n"

// run executes the CLI with stdin and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvFormat, "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestAnnotate_Stdin(t *testing.T) {
	out, err := run(t, janDoc, "annotate")
	require.NoError(t, err)
	assert.Equal(t, "[NP [NP Jan NP] biegnie [ADVP szybko ADVP] ADVP] \n", out)
}

func TestAnnotate_CoNLLUFileWithModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jan.conllu")
	require.NoError(t, os.WriteFile(path, []byte(janCoNLLU+janCoNLLU), 0644))

	out, err := run(t, "", "annotate", "--format", "conllu", "--labels", "owner", "--spans", "transitive", path)
	require.NoError(t, err)
	line := "[VP [NP Jan NP] biegnie [ADVP szybko ADVP] VP] \n"
	assert.Equal(t, line+line, out)

	out, err = run(t, "", "annotate", "--format", "conllu", "--limit", "1", path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestAnnotate_LimitDisplacy(t *testing.T) {
	out, err := run(t, janDoc+"\n"+janDoc+"\n"+janDoc, "annotate", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestAnnotate_SkipsBadSentences(t *testing.T) {
	out, err := run(t, cycleDoc+"\n"+janDoc+"\n"+forestDoc, "annotate")
	require.NoError(t, err)
	assert.Equal(t, "[NP [NP Jan NP] biegnie [ADVP szybko ADVP] ADVP] \n", out)
}

func TestAnnotate_SkipsUnreadableSentences(t *testing.T) {
	jan := "[NP [NP Jan NP] biegnie [ADVP szybko ADVP] ADVP] \n"

	out, err := run(t, janDoc+"\n"+badDirDoc+"\n"+janDoc, "annotate")
	require.NoError(t, err)
	assert.Equal(t, jan+jan, out)

	out, err = run(t, janCoNLLU+badHeadCoNLLU+janCoNLLU, "annotate", "--format", "conllu")
	require.NoError(t, err)
	assert.Equal(t, jan+jan, out)
}

func TestAnnotate_FailFastOnUnreadableSentence(t *testing.T) {
	out, err := run(t, janDoc+"\n"+badDirDoc, "annotate", "--fail-fast")
	require.ErrorIs(t, err, deptree.ErrMalformedArc)
	assert.Contains(t, err.Error(), "sentence 2")
	assert.Equal(t, 1, strings.Count(out, "\n"))

	out, err = run(t, janCoNLLU+badHeadCoNLLU, "annotate", "--format", "conllu", "--fail-fast")
	require.ErrorIs(t, err, conllu.ErrMalformedRow)
	assert.Contains(t, err.Error(), "sentence 2")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestAnnotate_FailFast(t *testing.T) {
	out, err := run(t, janDoc+"\n"+cycleDoc, "annotate", "--fail-fast")
	require.ErrorIs(t, err, deptree.ErrNoRoot)
	assert.Contains(t, err.Error(), "sentence 2")
	assert.Equal(t, 1, strings.Count(out, "\n"), "sentences before the failure are printed")
}

func TestAnnotate_LastFoundRoot(t *testing.T) {
	out, err := run(t, forestDoc, "annotate", "--roots", "last")
	require.NoError(t, err)
	assert.Equal(t, "[ADVP Tak ADVP] [ADVP Nie ADVP] \n", out)
}

func TestAnnotate_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	out, err := run(t, "", "annotate", missing)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "", "annotate", "--fail-fast", missing)
	assert.Error(t, err)
}

func TestAnnotate_InvalidFlag(t *testing.T) {
	_, err := run(t, janDoc, "annotate", "--spans", "deep")
	assert.ErrorContains(t, err, "invalid engine.spans")
}

func TestAnnotate_ConfigFile(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvFormat, "")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "depbracket.yaml")
	cfg := config.DefaultConfig()
	cfg.Engine.Labels = "owner"
	cfg.Logging.Level = "error"
	require.NoError(t, cfg.Save(cfgPath))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(janDoc))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "annotate"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "[VP [NP Jan NP] biegnie [ADVP szybko ADVP] VP] \n", out.String())
}

func TestCategories(t *testing.T) {
	out, err := run(t, "", "categories")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 18)
	assert.Equal(t, "ADJ\tADJP", lines[0])
	assert.Contains(t, lines, "PRAET\tVP")
	assert.Equal(t, "VERB\tVP", lines[len(lines)-1])
}

func TestConvert_SkipsUnreadableSentences(t *testing.T) {
	out, err := run(t, badHeadCoNLLU+janCoNLLU, "convert", "--format", "conllu")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	_, err = run(t, badHeadCoNLLU+janCoNLLU, "convert", "--format", "conllu", "--fail-fast")
	assert.ErrorIs(t, err, conllu.ErrMalformedRow)
}

func TestConvert_CoNLLUToDisplacy(t *testing.T) {
	out, err := run(t, janCoNLLU, "convert", "--format", "conllu", "--tag", "xpos")
	require.NoError(t, err)

	var doc displacy.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "FIN", doc.Words[1].Tag)
	assert.Equal(t, []displacy.Arc{
		{Start: 0, End: 1, Label: "nsubj", Dir: "left"},
		{Start: 1, End: 2, Label: "advmod", Dir: "right"},
	}, doc.Arcs)
}
