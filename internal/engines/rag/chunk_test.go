package rag_test

import (
	"strings"
	"testing"

	"github.com/rsrinivasan18/agentic-ai-platform/internal/engines/rag"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		maxLen     int
		wantChunks int
	}{
		{
			"empty text",
			"",
			100,
			0,
		},
		{
			"whitespace only",
			"   \n\n  \n",
			100,
			0,
		},
		{
			"single short paragraph",
			"hello world",
			100,
			1,
		},
		{
			"fits in one chunk",
			"first paragraph\n\nsecond paragraph",
			100,
			1,
		},
		{
			"splits at paragraph boundary",
			strings.Repeat("a", 60) + "\n\n" + strings.Repeat("b", 60),
			100,
			2,
		},
		{
			"defaults zero max length",
			"short text",
			0,
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := rag.ChunkText(tt.text, tt.maxLen)
			if len(chunks) != tt.wantChunks {
				t.Errorf("ChunkText() produced %d chunks, want %d: %q", len(chunks), tt.wantChunks, chunks)
			}
		})
	}
}

func TestChunkText_ForceFlushAtLimit(t *testing.T) {
	// A continuous block with no blank lines still splits once the
	// limit is reached.
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, strings.Repeat("x", 50))
	}
	text := strings.Join(lines, "\n")

	chunks := rag.ChunkText(text, 200)
	if len(chunks) < 2 {
		t.Fatalf("ChunkText() produced %d chunks, want several", len(chunks))
	}

	for i, chunk := range chunks {
		if len(chunk) > 200+51 {
			t.Errorf("chunk %d length %d exceeds limit with slack", i, len(chunk))
		}
	}
}

func TestChunkText_PreservesContent(t *testing.T) {
	text := "alpha\n\nbravo\n\ncharlie"
	chunks := rag.ChunkText(text, 8)

	joined := strings.Join(chunks, "\n")
	for _, word := range []string{"alpha", "bravo", "charlie"} {
		if !strings.Contains(joined, word) {
			t.Errorf("chunks lost %q: %q", word, chunks)
		}
	}
}

func TestChunkText_TrimsChunks(t *testing.T) {
	chunks := rag.ChunkText("  padded  \n\n\n", 100)
	if len(chunks) != 1 {
		t.Fatalf("ChunkText() produced %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "padded" {
		t.Errorf("chunk = %q, want %q", chunks[0], "padded")
	}
}
