package model

import "shopmate/assistant"

// AssistantReplyMsg and AssistantErrorMsg carry the conversation generation
// their request was submitted under. A reset bumps the generation, so late
// results from the old conversation identify themselves and get dropped.
type AssistantReplyMsg struct {
	Reply      assistant.Reply
	Generation int
}

type AssistantErrorMsg struct {
	Err        error
	Generation int
}

type TranscriptMsg struct {
	Text string
}

type CaptureErrorMsg struct {
	Err error
}

type AudioReadyMsg struct {
	Path string
}

type AudioErrorMsg struct {
	Err error
}

type MarkdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}

type TranscriptExportedMsg struct {
	Path string
	Err  error
}

type CatalogLoadedMsg struct {
	Err error
}
