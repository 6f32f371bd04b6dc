package render

// Viewport maps level cells to screen cells, one column per cell.
type Viewport struct {
	CamX, CamY   int // top-left level coordinate
	ViewW, ViewH int // viewport size in cells
}

// NewViewport centers the camera on the cursor, clamped to the level edges.
// hudRows reserves space for the HUD at the bottom.
func NewViewport(cursorX, cursorY, termW, termH, levelW, levelH, hudRows int) Viewport {
	viewW := termW
	viewH := termH - hudRows
	if viewH < 0 {
		viewH = 0
	}

	camX := clampCamera(cursorX-viewW/2, viewW, levelW)
	camY := clampCamera(cursorY-viewH/2, viewH, levelH)

	return Viewport{
		CamX:  camX,
		CamY:  camY,
		ViewW: viewW,
		ViewH: viewH,
	}
}

func clampCamera(cam, view, size int) int {
	if cam+view > size {
		cam = size - view
	}
	if cam < 0 {
		cam = 0
	}
	return cam
}

// WorldToScreen converts level coordinates to screen coordinates (1-based).
// Returns -1,-1 if the position is outside the viewport.
func (v Viewport) WorldToScreen(wx, wy int) (int, int) {
	sx := wx - v.CamX + 1
	sy := wy - v.CamY + 1
	if sx < 1 || sx > v.ViewW || sy < 1 || sy > v.ViewH {
		return -1, -1
	}
	return sx, sy
}

// ScreenToWorld converts 0-based screen coordinates to level coordinates.
// ok is false outside the viewport.
func (v Viewport) ScreenToWorld(sx, sy int) (wx, wy int, ok bool) {
	if sx < 0 || sx >= v.ViewW || sy < 0 || sy >= v.ViewH {
		return 0, 0, false
	}
	return v.CamX + sx, v.CamY + sy, true
}
