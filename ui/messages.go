package ui

import (
	"shopmate/model"
)

type Message = model.Message

type assistantReplyMsg = model.AssistantReplyMsg
type assistantErrorMsg = model.AssistantErrorMsg
type transcriptMsg = model.TranscriptMsg
type captureErrorMsg = model.CaptureErrorMsg
type audioReadyMsg = model.AudioReadyMsg
type audioErrorMsg = model.AudioErrorMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type transcriptExportedMsg = model.TranscriptExportedMsg
