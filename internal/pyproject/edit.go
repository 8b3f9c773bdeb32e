package pyproject

import (
	"fmt"
	"regexp"
	"strings"
)

// Line-level editing of the mirror file. Only the targeted key's lines are
// replaced; every other byte, comments and blank lines included, stays
// exactly as the author wrote it. Callers re-parse the result, so a bad
// splice cannot reach disk.

// anyHeaderRe matches any table header line, which terminates the table
// being scanned.
var anyHeaderRe = regexp.MustCompile(`^\s*\[`)

func headerRe(table string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*\[\s*` + regexp.QuoteMeta(table) + `\s*\]\s*(#.*)?$`)
}

func keyRe(key string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(key) + `\s*=`)
}

// tableBounds returns the header line index of table and the index one past
// its last line.
func tableBounds(lines []string, table string) (head, end int, ok bool) {
	re := headerRe(table)
	head = -1
	for i, line := range lines {
		if head == -1 {
			if re.MatchString(line) {
				head = i
			}
			continue
		}
		if anyHeaderRe.MatchString(line) {
			return head, i, true
		}
	}
	if head == -1 {
		return 0, 0, false
	}
	return head, len(lines), true
}

// setScalar rewrites the quoted value of key inside table, keeping the
// line's indentation, quoting style and trailing comment. A missing key is
// declared right under the table header.
func setScalar(raw []byte, table, key, value string) ([]byte, error) {
	lines := strings.Split(string(raw), "\n")
	head, end, ok := tableBounds(lines, table)
	if !ok {
		return nil, fmt.Errorf("no [%s] table", table)
	}
	re := regexp.MustCompile(`^(\s*` + regexp.QuoteMeta(key) + `\s*=\s*)(["'])[^"']*(["'])(.*)$`)
	for i := head + 1; i < end; i++ {
		if m := re.FindStringSubmatch(lines[i]); m != nil {
			lines[i] = m[1] + m[2] + value + m[3] + m[4]
			return []byte(strings.Join(lines, "\n")), nil
		}
	}
	return insertLines(lines, head+1, []string{key + ` = "` + value + `"`}), nil
}

// setArray replaces the array assigned to key inside table, single-line or
// multi-line, with a freshly rendered multi-line array at the same
// indentation. A missing key is declared right under the table header.
func setArray(raw []byte, table, key string, elems []string) ([]byte, error) {
	lines := strings.Split(string(raw), "\n")
	head, end, ok := tableBounds(lines, table)
	if !ok {
		return nil, fmt.Errorf("no [%s] table", table)
	}
	kre := keyRe(key)
	for i := head + 1; i < end; i++ {
		if !kre.MatchString(lines[i]) {
			continue
		}
		last := arrayEnd(lines, i)
		indent := lines[i][:len(lines[i])-len(strings.TrimLeft(lines[i], " \t"))]
		rendered := renderArray(indent, key, elems)
		out := make([]string, 0, len(lines)+len(rendered))
		out = append(out, lines[:i]...)
		out = append(out, rendered...)
		out = append(out, lines[last+1:]...)
		return []byte(strings.Join(out, "\n")), nil
	}
	return insertLines(lines, head+1, renderArray("", key, elems)), nil
}

// arrayEnd returns the index of the line holding the bracket that closes
// the array opened on lines[start]. Brackets inside string literals and
// comments do not count.
func arrayEnd(lines []string, start int) int {
	depth := 0
	for i := start; i < len(lines); i++ {
		line := lines[i]
		var quote byte
		for j := 0; j < len(line); j++ {
			c := line[j]
			if quote != 0 {
				if c == quote {
					quote = 0
				}
				continue
			}
			switch c {
			case '"', '\'':
				quote = c
			case '#':
				j = len(line)
			case '[':
				depth++
			case ']':
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return len(lines) - 1
}

func renderArray(indent, key string, elems []string) []string {
	if len(elems) == 0 {
		return []string{indent + key + " = []"}
	}
	out := make([]string, 0, len(elems)+2)
	out = append(out, indent+key+" = [")
	for _, e := range elems {
		out = append(out, indent+`    "`+e+`",`)
	}
	return append(out, indent+"]")
}

func insertLines(lines []string, at int, ins []string) []byte {
	out := make([]string, 0, len(lines)+len(ins))
	out = append(out, lines[:at]...)
	out = append(out, ins...)
	out = append(out, lines[at:]...)
	return []byte(strings.Join(out, "\n"))
}

// appendTableHeader adds an empty [table] at the end of the file, separated
// from the existing content by a blank line.
func appendTableHeader(raw []byte, table string) []byte {
	s := string(raw)
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	if s != "" {
		s += "\n"
	}
	return []byte(s + "[" + table + "]\n")
}
