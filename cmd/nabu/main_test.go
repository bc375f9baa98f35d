package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calc = "testdata/calc.yaml"

func init() {
	color.NoColor = true
}

func runArgs(args ...string) (code int, stdout, stderr string) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	code = run(args, out, errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFlat(t *testing.T) {
	code, out, errOut := runArgs("parse", calc, "testdata/expr.txt")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, `{1, {{"+", {"(", {2, {{"*", 3}}}, ")"}}}}`+"\n", out)
}

func TestParseFormats(t *testing.T) {
	src := writeFile(t, "sum.txt", "1 + 2")

	code, out, errOut := runArgs("parse", "--format", "json", calc, src)
	require.Equal(t, 0, code, errOut)
	assert.JSONEq(t, `[1, [["+", 2]]]`, out)

	code, out, errOut = runArgs("parse", "-f", "yaml", calc, src)
	require.Equal(t, 0, code, errOut)
	assert.YAMLEq(t, `[1, [["+", 2]]]`, out)
}

func TestParseEntry(t *testing.T) {
	src := writeFile(t, "terms.txt", "1 (2)")
	code, out, errOut := runArgs("parse", "--entry", "term", calc, src)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, `{1, {"(", {2, {}}, ")"}}`+"\n", out)

	code, _, errOut = runArgs("parse", "--entry", "trem", calc, src)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown entry rule "trem" (did you mean "term"?)`)
}

func TestParseErrors(t *testing.T) {
	code, _, errOut := runArgs("parse", calc, writeFile(t, "open.txt", "1 +"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `error: unexpected op token "+"`)
	assert.Contains(t, errOut, "    1 | 1 +\n      |   ^\n")

	code, _, errOut = runArgs("parse", calc, writeFile(t, "lexeme.txt", "1 $ 2"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `error: bad lexeme "$"`)

	code, _, errOut = runArgs("parse", calc, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "cannot read")
}

func TestLex(t *testing.T) {
	code, out, errOut := runArgs("lex", calc, "testdata/expr.txt")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "TOKEN")
	assert.Contains(t, out, `| num   | "1"  | 1     |`)
	assert.Contains(t, out, `| lpar  | "("  | "("   |`)
	assert.NotContains(t, out, "comment")
}

func TestLexAllErrors(t *testing.T) {
	code, out, errOut := runArgs("lex", calc, writeFile(t, "bad.txt", "1 $ 2\n@@ 3"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `"3"`)
	assert.Contains(t, errOut, "error: bad lexeme \"$\"")
	assert.Contains(t, errOut, "    1 | 1 $ 2\n      |   ^\n")
	assert.Contains(t, errOut, "    2 | @@ 3\n      | ^~\n")
}

func TestCheck(t *testing.T) {
	code, out, errOut := runArgs("check", calc)
	require.Equal(t, 0, code, errOut)
	expected := "language calc, entry rule expr\n" +
		"token comment = /#[^\\n]*/ (ignored)\n" +
		"token num = /\\d+/\n" +
		"token op = /[-+*/]/\n" +
		"token lpar = /\\(/\n" +
		"token rpar = /\\)/\n" +
		"rule expr = term (op term)*\n" +
		"rule term = num | lpar expr rpar\n"
	assert.Equal(t, expected, out)
}

func TestCheckErrors(t *testing.T) {
	broken := writeFile(t, "broken.yaml", "tokens: [{name: num, re: '\\d+'}]\nrules: [{name: list, expr: nums+}]")
	code, _, errOut := runArgs("check", broken)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `did you mean "num"?`)
}

func TestUsage(t *testing.T) {
	code, _, errOut := runArgs()
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "nabu: error:")

	code, _, _ = runArgs("parse", "--format", "xml", calc, "testdata/expr.txt")
	assert.Equal(t, 2, code)

	code, out, _ := runArgs("--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage: nabu")
}

func TestVerbose(t *testing.T) {
	code, _, errOut := runArgs("parse", calc, "testdata/expr.txt")
	require.Equal(t, 0, code)
	assert.Empty(t, errOut)

	code, _, errOut = runArgs("--verbose", "parse", calc, "testdata/expr.txt")
	require.Equal(t, 0, code)
	assert.Contains(t, errOut, "level=debug msg=match")
	assert.Contains(t, errOut, "symbol=term")
}
