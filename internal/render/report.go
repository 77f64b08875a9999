package render

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/fogleman/gg"

	"zvitbot/internal/errs"
)

// Print-resolution canvas for operation reports.
const (
	reportWidth  = 2970
	reportHeight = 2100

	reportJPEGQuality = 90

	frameColor = "#2c3e50"
)

type ReportRequest struct {
	ID          uint64
	FullName    string
	Static      string
	Operation   string
	Description string
	IssuedBy    string
	IssuedOn    time.Time
}

// OperationReport renders the fixed-layout report document as a JPEG. The
// background, signature and stamp assets are each optional; absence of any of
// them leaves the rest of the document intact.
func (r *Renderer) OperationReport(req ReportRequest) (*Artifact, error) {
	dc := gg.NewContext(reportWidth, reportHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	w := float64(reportWidth)
	h := float64(reportHeight)

	if bg, ok := r.overlay("zvit.jpg"); ok {
		drawImageScaled(dc, bg, 0, 0, reportWidth, reportHeight)
	}

	dc.SetHexColor(frameColor)
	dc.SetLineWidth(6)
	dc.DrawRectangle(30, 30, w-60, h-60)
	dc.Stroke()

	dc.SetHexColor(inkColor)

	dc.SetFontFace(r.face(56))
	dc.DrawStringAnchored("МІНІСТЕРСТВО ОХОРОНИ ЗДОРОВʼЯ ШТАТУ UKRAINE GTA5", w/2, 600, 0.5, 0)

	dc.SetFontFace(r.face(48))
	dc.DrawStringAnchored("Відділення ТЕРАПІЇ", w/2, 680, 0.5, 0)
	dc.DrawStringAnchored("ЗВІТ ПРО ОПЕРАТИВНЕ ВТРУЧАННЯ", w/2, 750, 0.5, 0)

	dc.SetFontFace(r.face(32))
	dc.DrawStringAnchored("Пацієнт:", w/2, 800, 0.5, 0)
	dc.SetFontFace(r.face(40))
	dc.DrawStringAnchored(req.FullName, w/2, 840, 0.5, 0)

	dc.SetFontFace(r.face(32))
	dc.DrawStringAnchored("Static ID:", w/2, 900, 0.5, 0)
	dc.SetFontFace(r.face(40))
	dc.DrawStringAnchored(req.Static, w/2, 940, 0.5, 0)

	dc.SetFontFace(r.face(32))
	dc.DrawStringAnchored("Вид оперативного втручання:", w/2, 1000, 0.5, 0)
	dc.SetFontFace(r.face(40))
	drawWrappedCenter(dc, req.Operation, w/2, 1040, w-160, 45)

	dc.SetFontFace(r.face(32))
	dc.DrawStringAnchored("Короткий опис:", w/2, 1100, 0.5, 0)
	drawWrappedCenter(dc, req.Description, w/2, 1140, w-300, 40)

	dc.SetFontFace(r.face(48))
	dc.DrawString(issuerName, 450, 1820)
	dc.DrawStringAnchored(req.IssuedBy, w/2-250, 1820, 0.5, 0)

	dc.SetFontFace(r.face(24))
	dc.DrawStringAnchored(
		fmt.Sprintf("Звіт №%d", req.ID),
		w-cornerPadding-60, h-cornerPadding-cornerLineSpacing-60, 1, 0,
	)
	dc.DrawStringAnchored(
		"Дата видачі: "+req.IssuedOn.Format("02.01.2006"),
		w-cornerPadding-60, h-cornerPadding-60, 1, 0,
	)

	if sig, ok := r.overlay("signature.png"); ok {
		const sigWidth, sigHeight = 240, 120
		drawImageScaled(dc, sig, reportWidth/2-sigWidth/2, reportHeight-820, sigWidth, sigHeight)

		dc.SetFontFace(r.face(16))
		dc.DrawStringAnchored("Підпис лікаря", w/2, h-680, 0.5, 0)
	}

	if stamp, ok := r.overlay("stamp.png"); ok {
		const stampSize = 220
		drawImageScaled(dc, stamp, reportWidth/2-stampSize/2, reportHeight-880, stampSize, stampSize)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: reportJPEGQuality}); err != nil {
		return nil, errs.Wrap(err, "encode report jpeg")
	}

	return &Artifact{Data: buf.Bytes(), Width: reportWidth, Height: reportHeight}, nil
}
