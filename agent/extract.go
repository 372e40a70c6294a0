package agent

import "strings"

const (
	callOpenTag  = "<tool_call>"
	callCloseTag = "</tool_call>"
)

// TagContent is the outcome of scanning model output for tagged call blocks.
type TagContent struct {
	Found   bool
	Content []string
}

// ExtractCalls scans raw model output for <tool_call>...</tool_call> blocks
// and returns their inner text segments in left-to-right order. The scan is
// best-effort and never fails: an unterminated open tag ends the scan and the
// remainder of the text is treated as not containing calls.
func ExtractCalls(text string) TagContent {
	var content []string
	for {
		start := strings.Index(text, callOpenTag)
		if start < 0 {
			break
		}
		rest := text[start+len(callOpenTag):]
		end := strings.Index(rest, callCloseTag)
		if end < 0 {
			break
		}
		content = append(content, strings.TrimSpace(rest[:end]))
		text = rest[end+len(callCloseTag):]
	}
	return TagContent{Found: len(content) > 0, Content: content}
}
