package main

import "fyne.io/fyne/v2"

// computeContainRect fits an imgW x imgH image into a view the way
// canvas.ImageFillContain does: scaled to the smaller ratio and centred.
func computeContainRect(imgW, imgH, viewW, viewH float32) (drawX, drawY, drawW, drawH, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0, 0, 0
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	drawW = imgW * scale
	drawH = imgH * scale
	drawX = (viewW - drawW) / 2
	drawY = (viewH - drawH) / 2
	return drawX, drawY, drawW, drawH, scale
}

// viewToImage maps an overlay position to image pixels. ok is false when the
// position lies outside the drawn image.
func viewToImage(pos fyne.Position, imgW, imgH float32, view fyne.Size) (x, y float64, ok bool) {
	drawX, drawY, drawW, drawH, scale := computeContainRect(imgW, imgH, view.Width, view.Height)
	if scale == 0 {
		return 0, 0, false
	}
	if pos.X < drawX || pos.X > drawX+drawW || pos.Y < drawY || pos.Y > drawY+drawH {
		return 0, 0, false
	}
	return float64((pos.X - drawX) / scale), float64((pos.Y - drawY) / scale), true
}

// imageToViewX is the inverse of viewToImage on the x axis.
func imageToViewX(x float64, imgW, imgH float32, view fyne.Size) float32 {
	drawX, _, _, _, scale := computeContainRect(imgW, imgH, view.Width, view.Height)
	return drawX + float32(x)*scale
}

// tooltipPos places a box of size box below-right of the pointer, pushed
// back inside the view.
func tooltipPos(pointer fyne.Position, box, view fyne.Size) fyne.Position {
	tx, ty := pointer.X+8, pointer.Y+8
	if tx+box.Width > view.Width {
		tx = view.Width - box.Width
	}
	if ty+box.Height > view.Height {
		ty = view.Height - box.Height
	}
	if tx < 0 {
		tx = 0
	}
	if ty < 0 {
		ty = 0
	}
	return fyne.NewPos(tx, ty)
}
