package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fogleman/gg"

	"zvitbot/internal/domain/diploma"
	"zvitbot/internal/errs"
)

const (
	inkColor   = "#300f54"
	issuerName = "Andrii Sage"

	cornerPadding     = 20
	cornerLineSpacing = 28

	// Blank canvas dimensions when a diploma template asset is absent.
	diplomaFallbackWidth  = 1754
	diplomaFallbackHeight = 1240

	// Gap between the centered name and the smaller static code.
	nameCodeSpacing = 80
)

type DiplomaRequest struct {
	Kind     diploma.Kind
	Surname  string
	Name     string
	Static   string // optional short code shown next to the name
	IssuedBy string
	Serial   int
	IssuedOn time.Time
}

// Diploma renders one diploma onto its family template. A missing template is
// tolerated: the overlays are drawn over a blank canvas of the fallback size.
func (r *Renderer) Diploma(req DiplomaRequest) (*Artifact, error) {
	width, height := diplomaFallbackWidth, diplomaFallbackHeight

	template, hasTemplate := r.overlay(req.Kind.TemplateFile())
	if hasTemplate {
		bounds := template.Bounds()
		width, height = bounds.Dx(), bounds.Dy()
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	if hasTemplate {
		dc.DrawImage(template, 0, 0)
	}

	w := float64(width)
	h := float64(height)
	dc.SetHexColor(inkColor)

	// Serial number and issuance date, anchored to the bottom-right corner.
	dc.SetFontFace(r.face(24))
	dc.DrawStringAnchored(
		fmt.Sprintf("Диплом №%d", req.Serial),
		w-cornerPadding, h-cornerPadding-cornerLineSpacing, 1, 0,
	)
	dc.DrawStringAnchored(
		"Дата видачі: "+req.IssuedOn.Format("02.01.2006"),
		w-cornerPadding, h-cornerPadding, 1, 0,
	)

	// Signature block: constant issuer plus the submitted issued-by value.
	dc.SetFontFace(r.face(48))
	dc.DrawString(issuerName, 270, h-180)
	dc.DrawStringAnchored(req.IssuedBy, w/2-160, h-180, 0.5, 0)

	r.drawDiplomaName(dc, req, w, h)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errs.Wrap(err, "encode diploma png")
	}

	return &Artifact{Data: buf.Bytes(), Width: width, Height: height}, nil
}

// drawDiplomaName centers the holder's name, with the optional static code
// rendered in a smaller face on the same baseline right after it.
func (r *Renderer) drawDiplomaName(dc *gg.Context, req DiplomaRequest, w, h float64) {
	fullName := req.Surname + " " + req.Name

	nameFace := r.face(56)
	if req.Static == "" {
		dc.SetFontFace(nameFace)
		dc.DrawStringAnchored(fullName, w/2, h/2, 0.5, 0)
		return
	}

	codeFace := r.face(24)

	dc.SetFontFace(nameFace)
	nameWidth, _ := dc.MeasureString(fullName)
	dc.SetFontFace(codeFace)
	codeWidth, _ := dc.MeasureString(req.Static)

	totalWidth := nameWidth + nameCodeSpacing + codeWidth
	startX := (w - totalWidth) / 2
	baseY := h / 2

	dc.SetFontFace(nameFace)
	dc.DrawStringAnchored(fullName, startX+nameWidth/2, baseY+90, 0.5, 0)
	dc.SetFontFace(codeFace)
	dc.DrawStringAnchored(req.Static, startX+nameWidth+nameCodeSpacing+codeWidth/2, baseY+80, 0.5, 0)
}
