package string

import (
	"strings"
)

// Dedent removes the common leading tab indentation from every line of
// a multiline raw string, so such strings can be indented to match the
// surrounding code. Leading and trailing blank lines are dropped.
func Dedent(str string) string {
	lines := strings.Split(str, "\n")

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		li := lineIndentation(line)
		if indent < 0 || li < indent {
			indent = li
		}
	}
	if indent <= 0 {
		return strings.Join(lines, "\n")
	}

	outLines := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			outLines[i] = ""
		} else {
			outLines[i] = line[indent:]
		}
	}
	return strings.Join(outLines, "\n")
}

func lineIndentation(line string) int {
	var i int
	for ; i < len(line) && line[i] == '\t'; i++ {
	}
	return i
}
