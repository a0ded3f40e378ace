package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed howtoplay.txt schema.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimRight(sc.Text(), " \t")
		if strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// HowToPlay returns the rules text shown by the front ends.
func HowToPlay() (string, error) {
	lines, err := readLines("howtoplay.txt")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n", nil
}

// Schema returns the SQL applied to the stats database.
func Schema() (string, error) {
	b, err := FS.ReadFile("schema.sql")
	return string(b), err
}
