package intelxaudit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var targetPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsTarget reports whether s looks like an email address that can be audited.
func IsTarget(s string) bool {
	return targetPattern.MatchString(strings.TrimSpace(s))
}

// ReadTargets reads one target per line. Lines that are not valid targets are dropped without notice.
func ReadTargets(r io.Reader) ([]string, error) {
	var targets []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if IsTarget(line) {
			targets = append(targets, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading targets: %w", err)
	}

	return targets, nil
}

func targetDomain(target string) string {
	_, domain, _ := strings.Cut(target, "@")

	return strings.ToLower(domain)
}
