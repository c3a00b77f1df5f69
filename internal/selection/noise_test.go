package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoise(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"README.md", true},
		{"docs/CHANGELOG.MD", true},
		{"docs/setup.txt", true},
		{"Docs/index.html", true},
		{"test/helpers.go", true},
		{"tests/fixtures/data.json", true},
		{"src/app.test.ts", true},
		{"package-lock.json", true},
		{"web/pnpm-lock.yaml", true},
		{"yarn.lock", true},
		{"api/poetry.lock", true},
		{"src/docs/readme.txt", false},
		{"src/testing/util.go", false},
		{"testdata/file.go", false},
		{"src/main.go", false},
		{"go.sum", false},
		{"markdown.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoise(tt.filename))
		})
	}
}
