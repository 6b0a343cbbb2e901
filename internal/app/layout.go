package app

// paneSize returns the content size of the document pane. Its border takes two columns and two rows, the title one more
// row; footer and dock sit below the pane.
func paneSize(totalWidth, totalHeight, footerHeight, dockHeight int) (int, int) {
	width := totalWidth - 2
	if width < 1 {
		width = 1
	}
	height := totalHeight - footerHeight - dockHeight - 3
	if height < 1 {
		height = 1
	}
	return width, height
}

// clampOffset keeps a viewport offset inside [0, total-visible].
func clampOffset(offset, total, visible int) int {
	maxTop := max(0, total-visible)
	if offset > maxTop {
		offset = maxTop
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
