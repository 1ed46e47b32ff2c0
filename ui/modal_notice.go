package ui

// renderNoticeModal shows a blocking acknowledgement over the current view.
// Used for capability warnings and export results.
func renderNoticeModal(title, message string, width, height int) string {
	return renderThreeSectionModal(title, message, "Press Enter to continue", warningColor, width, height)
}
