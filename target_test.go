package intelxaudit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTarget(t *testing.T) {
	valid := []string{
		"a@b.cd",
		"john.doe@example.com",
		"first+tag@mail.example.co.uk",
		"x_y%z-1@sub-domain.example.org",
		"  padded@example.com \n",
	}

	for _, s := range valid {
		assert.True(t, IsTarget(s), "expected %q to be accepted", s)
	}

	invalid := []string{
		"",
		"plainaddress",
		"missing-domain@",
		"@example.com",
		"no-tld@example",
		"short-tld@example.c",
		"numeric-tld@example.c0m",
		"two@@example.com",
		"space in@example.com",
		"trailing@example.com garbage",
	}

	for _, s := range invalid {
		assert.False(t, IsTarget(s), "expected %q to be rejected", s)
	}
}

func TestReadTargets(t *testing.T) {
	input := "alice@example.com\nnot-an-email\n\n  bob@example.org  \r\n"

	targets, err := ReadTargets(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.org"}, targets)
}
