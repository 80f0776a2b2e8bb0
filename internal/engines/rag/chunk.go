package rag

import "strings"

// ChunkText splits text into chunks at paragraph boundaries. A blank
// line flushes the current chunk once it reaches half the limit; a
// chunk is force-flushed at the limit regardless of boundaries.
func ChunkText(text string, maxChunkLen int) []string {
	if maxChunkLen <= 0 {
		maxChunkLen = 1000
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		content := strings.TrimSpace(current.String())
		if content != "" {
			chunks = append(chunks, content)
		}
		current.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" && current.Len() >= maxChunkLen/2 {
			flush()
			continue
		}

		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)

		if current.Len() >= maxChunkLen {
			flush()
		}
	}

	flush()
	return chunks
}
