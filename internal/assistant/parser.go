package assistant

import "strings"

// ParseInput splits a line on whitespace. The first token, lower-cased, is
// the command; the rest are positional arguments. An empty line yields "".
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}
